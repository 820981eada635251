package agri

import (
	"fmt"
	"strconv"

	"github.com/cropsage/cropsage/internal/location"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var Location = &cobra.Command{
	Use:     "location [zipcode]",
	GroupID: "agri",
	Short:   "Show weather and soil for a US zip code",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := location.NewService(newLogger(), location.BaseURLs{})
		record := service.Context(cmd.Context(), args[0])

		fmt.Println(color.New(color.Bold).Sprintf("🌤️  Weather for %s", record.PostalCode))
		printWeather(record.Weather)
		fmt.Println()
		fmt.Println(color.New(color.Bold).Sprintf("🪨 Soil for %s", record.PostalCode))
		printSoil(record.Soil)
	},
}

func printWeather(weather location.Weather) {
	if weather.Err != "" {
		fmt.Println(color.RedString(weather.Err))
		return
	}
	if place := weather.Location; place != nil {
		fmt.Printf("Location: %s, %s (%v, %v)\n", place.City, place.State, place.Latitude, place.Longitude)
	}
	if now := weather.Current; now != nil {
		fmt.Printf("Now: %d°%s, %s, wind %s %s\n",
			now.Temperature, now.TemperatureUnit, now.ShortForecast, now.WindSpeed, now.WindDirection)
	}
	for _, period := range weather.Forecast {
		fmt.Printf("  %s: %d° - %s\n", period.Name, period.Temperature, period.ShortForecast)
	}
}

func printSoil(soil location.Soil) {
	if soil.Err != "" {
		fmt.Println(color.RedString(soil.Err))
		return
	}
	properties := soil.Properties
	if properties == nil {
		return
	}
	fmt.Printf("Name: %s\n", properties.SoilName)
	fmt.Printf("Texture: %s\n", properties.SoilTexture)
	fmt.Printf("Drainage: %s\n", properties.DrainageClass)
	printMeasure("Sand", properties.SandPercent, "%")
	printMeasure("Clay", properties.ClayPercent, "%")
	printMeasure("Silt", properties.SiltPercent, "%")
	printMeasure("pH", properties.PH, "")
	printMeasure("Organic matter", properties.OrganicMatterPercent, "%")
	if soil.Note != "" {
		fmt.Println(color.YellowString(soil.Note))
	}
	fmt.Println(color.HiBlackString("Source: %s", soil.DataSource))
}

func printMeasure(label string, value *float64, suffix string) {
	if value == nil {
		return
	}
	fmt.Printf("%s: %s%s\n", label, strconv.FormatFloat(*value, 'f', -1, 64), suffix)
}
