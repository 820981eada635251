package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cropsage/cropsage/internal/location"
)

// formatWeatherDisplay renders the fixed weather block shown above the
// model's timing analysis.
func formatWeatherDisplay(weather location.Weather) string {
	if weather.Err != "" {
		return "⚠️ Weather data unavailable"
	}

	city, state := "Unknown", "Unknown"
	if weather.Location != nil {
		city = orUnknown(weather.Location.City)
		state = orUnknown(weather.Location.State)
	}
	temperature, unit, conditions, wind := "N/A", "F", "N/A", "N/A N/A"
	if weather.Current != nil {
		temperature = strconv.Itoa(weather.Current.Temperature)
		unit = weather.Current.TemperatureUnit
		conditions = weather.Current.ShortForecast
		wind = weather.Current.WindSpeed + " " + weather.Current.WindDirection
	}

	var b strings.Builder
	fmt.Fprintf(&b, `**Current Weather:**
- 📍 Location: %s, %s
- 🌡️ Temperature: %s°%s
- ☁️ Conditions: %s
- 💨 Wind: %s

**3-Day Forecast:**
`, city, state, temperature, unit, conditions, wind)
	for _, period := range weather.Forecast {
		fmt.Fprintf(&b, "• %s: %d° - %s\n", period.Name, period.Temperature, period.ShortForecast)
	}
	return b.String()
}

// formatSoilDisplay renders the fixed soil block shown above the model's soil
// analysis. Percentage lines appear only when the survey reported a value.
func formatSoilDisplay(soil location.Soil) string {
	if soil.Err != "" {
		return "⚠️ Soil data unavailable"
	}

	properties := soil.Properties
	if properties == nil {
		properties = &location.SoilProperties{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `**Your Soil Type:**
- 🪨 Name: %s
- 📊 Texture: %s
- 💧 Drainage: %s
`, orUnknown(properties.SoilName), orUnknown(properties.SoilTexture), orUnknown(properties.DrainageClass))

	appendMeasure(&b, "🏖️ Sand", properties.SandPercent, "%")
	appendMeasure(&b, "🧱 Clay", properties.ClayPercent, "%")
	appendMeasure(&b, "🌾 Silt", properties.SiltPercent, "%")
	appendMeasure(&b, "🧪 pH", properties.PH, "")
	appendMeasure(&b, "🌿 Organic Matter", properties.OrganicMatterPercent, "%")
	return b.String()
}

func appendMeasure(b *strings.Builder, label string, value *float64, suffix string) {
	if value == nil {
		return
	}
	fmt.Fprintf(b, "- %s: %s%s\n", label, strconv.FormatFloat(*value, 'f', -1, 64), suffix)
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}
