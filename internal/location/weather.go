package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cropsage/cropsage/internal/errors"
)

const forecastWindow = 6

type pointsResponse struct {
	Properties struct {
		Forecast         string `json:"forecast"`
		RelativeLocation struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []struct {
			Name             string `json:"name"`
			Temperature      int    `json:"temperature"`
			TemperatureUnit  string `json:"temperatureUnit"`
			WindSpeed        string `json:"windSpeed"`
			WindDirection    string `json:"windDirection"`
			ShortForecast    string `json:"shortForecast"`
			DetailedForecast string `json:"detailedForecast"`
		} `json:"periods"`
	} `json:"properties"`
}

// Weather fetches current conditions and a bounded forecast window for the
// postal code. Failures degrade to an error-marked record.
func (s *Service) Weather(ctx context.Context, zipcode string) Weather {
	lat, lon, err := s.zipToCoordinates(ctx, zipcode)
	if err != nil {
		return Weather{
			Zipcode: zipcode,
			Err:     fmt.Sprintf("Could not find location for zip code %s", zipcode),
		}
	}

	var points pointsResponse
	if err = s.getJSON(ctx, fmt.Sprintf("%s/points/%v,%v", s.weatherURL, lat, lon), &points); err != nil {
		return Weather{
			Zipcode: zipcode,
			Err:     fmt.Sprintf("Failed to fetch weather data: %s", err),
		}
	}

	var forecast forecastResponse
	if err = s.getJSON(ctx, points.Properties.Forecast, &forecast); err != nil {
		return Weather{
			Zipcode: zipcode,
			Err:     fmt.Sprintf("Failed to fetch weather data: %s", err),
		}
	}

	weather := Weather{
		Zipcode: zipcode,
		Location: &Place{
			Latitude:  lat,
			Longitude: lon,
			City:      points.Properties.RelativeLocation.Properties.City,
			State:     points.Properties.RelativeLocation.Properties.State,
		},
	}

	periods := forecast.Properties.Periods
	if len(periods) > 0 {
		current := periods[0]
		weather.Current = &Conditions{
			Temperature:      current.Temperature,
			TemperatureUnit:  current.TemperatureUnit,
			WindSpeed:        current.WindSpeed,
			WindDirection:    current.WindDirection,
			ShortForecast:    current.ShortForecast,
			DetailedForecast: current.DetailedForecast,
		}
	}
	for _, period := range periods {
		if len(weather.Forecast) == forecastWindow {
			break
		}
		weather.Forecast = append(weather.Forecast, Period{
			Name:          period.Name,
			Temperature:   period.Temperature,
			ShortForecast: period.ShortForecast,
		})
	}

	return weather
}

// getJSON fetches a URL and decodes the JSON response into out.
func (s *Service) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status code",
			slog.String("url", url), slog.Int("status", resp.StatusCode))
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
