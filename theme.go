package profile

import (
	"gonum.org/v1/plot/vg"
)

// AesMapping maps style aesthetics like "color", "shape" or "linetype"
// to their string values. The zero value is an empty style.
type AesMapping map[string]string

// MergeAes combines ams; later mappings win. Empty values are dropped
// so they never mask a default.
func MergeAes(ams ...AesMapping) AesMapping {
	merged := AesMapping{}
	for _, am := range ams {
		for aes, value := range am {
			if value == "" {
				continue
			}
			merged[aes] = value
		}
	}
	return merged
}

// Theme holds the defaults used when a series style leaves an aesthetic
// unset, and the size of the produced figures.
type Theme struct {
	PointStyle, LineStyle AesMapping

	// Width and Height of the figure.
	Width, Height vg.Length

	// DPI of raster output.
	DPI int
}

// DefaultTheme draws thin dark lines and small dark dots on a 5 by 6
// inch figure.
var DefaultTheme = Theme{
	PointStyle: AesMapping{
		"size":  "3",
		"shape": "solid-circle",
		"color": "#222222",
		"alpha": "1",
		"every": "1",
	},
	LineStyle: AesMapping{
		"size":     "1",
		"linetype": "solid",
		"color":    "#222222",
		"alpha":    "1",
	},
	Width:  5 * vg.Inch,
	Height: 6 * vg.Inch,
	DPI:    100,
}
