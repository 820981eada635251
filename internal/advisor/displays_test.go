package advisor

import (
	"testing"

	"github.com/cropsage/cropsage/internal/location"
	"github.com/stretchr/testify/assert"
)

func TestFormatWeatherDisplay_errorRecord(t *testing.T) {
	weather := location.Weather{Zipcode: "00000", Err: "Could not find location for zip code 00000"}

	assert.Equal(t, "⚠️ Weather data unavailable", formatWeatherDisplay(weather))
}

func TestFormatWeatherDisplay_missingCurrentConditions(t *testing.T) {
	display := formatWeatherDisplay(location.Weather{Zipcode: "92336"})

	assert.Contains(t, display, "- 📍 Location: Unknown, Unknown")
	assert.Contains(t, display, "- 🌡️ Temperature: N/A°F")
	assert.Contains(t, display, "- 💨 Wind: N/A N/A")
	assert.Contains(t, display, "**3-Day Forecast:**")
}

func TestFormatSoilDisplay_errorRecord(t *testing.T) {
	soil := location.Soil{Zipcode: "00000", Err: "Failed to fetch soil data: timeout"}

	assert.Equal(t, "⚠️ Soil data unavailable", formatSoilDisplay(soil))
}

func TestFormatSoilDisplay_skipsMissingMeasures(t *testing.T) {
	soil := location.Soil{
		Zipcode: "92336",
		Properties: &location.SoilProperties{
			SoilName:      "Ramona sandy loam",
			SoilTexture:   "Sandy Loam",
			DrainageClass: "Well drained",
			SandPercent:   clayPercent(63.2),
			PH:            clayPercent(6.8),
		},
	}

	display := formatSoilDisplay(soil)

	assert.Contains(t, display, "- 🏖️ Sand: 63.2%")
	assert.Contains(t, display, "- 🧪 pH: 6.8")
	assert.NotContains(t, display, "Clay:")
	assert.NotContains(t, display, "Silt:")
	assert.NotContains(t, display, "Organic Matter:")
}

func TestFormatSoilDisplay_noCoverageRecord(t *testing.T) {
	soil := location.Soil{
		Zipcode:    "99999",
		Properties: &location.SoilProperties{SoilName: "No detailed soil data available for this location"},
		Note:       "This location may not have detailed SSURGO coverage",
	}

	display := formatSoilDisplay(soil)

	assert.Contains(t, display, "- 🪨 Name: No detailed soil data available for this location")
	assert.Contains(t, display, "- 📊 Texture: Unknown")
}
