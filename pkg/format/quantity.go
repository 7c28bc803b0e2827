package format

import (
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/constants"
	"github.com/bennyhartnett/centrus-enrichment-calculator/pkg/mathutil"
)

// Mass renders a mass in kilograms of uranium, e.g. "1,588.638145 kgU".
func Mass(kg float64) string {
	return Number(kg, constants.MassDisplayDecimals) + " kgU"
}

// SWU renders separative work, e.g. "71.983 SWU".
func SWU(swu float64) string {
	return Number(swu, constants.SWUDisplayDecimals) + " SWU"
}

// Assay renders an assay fraction as a percentage, e.g. "0.7110%".
func Assay(fraction float64) string {
	return Number(mathutil.ToPercent(fraction), constants.AssayDisplayDecimals) + "%"
}

// Ratio renders a dimensionless per-product ratio at mass precision.
func Ratio(value float64) string {
	return Number(value, constants.MassDisplayDecimals)
}
