// Package location resolves US postal codes to weather and soil conditions
// using the National Weather Service and USDA Soil Data Access APIs.
//
// The fetch operations return records instead of errors: a failed lookup fills
// the record's Err field and leaves its content empty, so partial failures
// (weather without soil, or the other way around) stay independent. Nothing is
// cached and nothing is retried; every call performs the network round-trips
// again.
package location

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultGeocodeURL = "https://graphical.weather.gov/xml/SOAP_server/ndfdXMLclient.php"
	defaultWeatherURL = "https://api.weather.gov"
	defaultSoilURL    = "https://sdmdataaccess.nrcs.usda.gov/Tabular/post.rest"

	// The NWS API requires an identifying user agent.
	userAgent = "AgriTech-Plant-Detector"

	requestTimeout = 15 * time.Second
)

// BaseURLs overrides the external endpoints, e.g., to point tests at stub
// servers. Zero values mean the production defaults.
type BaseURLs struct {
	Geocode string
	Weather string
	Soil    string
}

// Service fetches location context for 5-digit US postal codes.
type Service struct {
	client     *http.Client
	logger     *slog.Logger
	geocodeURL string
	weatherURL string
	soilURL    string
}

func NewService(logger *slog.Logger, urls BaseURLs) *Service {
	if urls.Geocode == "" {
		urls.Geocode = defaultGeocodeURL
	}
	if urls.Weather == "" {
		urls.Weather = defaultWeatherURL
	}
	if urls.Soil == "" {
		urls.Soil = defaultSoilURL
	}
	return &Service{
		client:     &http.Client{Timeout: requestTimeout},
		logger:     logger,
		geocodeURL: urls.Geocode,
		weatherURL: urls.Weather,
		soilURL:    urls.Soil,
	}
}

// Context holds everything we know about a postal code. Either sub-record may
// carry an error marker independent of the other.
type Context struct {
	PostalCode string
	Weather    Weather
	Soil       Soil
}

// Context fetches weather and soil for the postal code. Each fetch resolves the
// postal code on its own; there is no shared geocoding result.
func (s *Service) Context(ctx context.Context, zipcode string) Context {
	return Context{
		PostalCode: zipcode,
		Weather:    s.Weather(ctx, zipcode),
		Soil:       s.Soil(ctx, zipcode),
	}
}

// Place is a resolved coordinate pair with the nearest named location.
type Place struct {
	Latitude  float64
	Longitude float64
	City      string
	State     string
}

// Conditions describes the current forecast period.
type Conditions struct {
	Temperature      int
	TemperatureUnit  string
	WindSpeed        string
	WindDirection    string
	ShortForecast    string
	DetailedForecast string
}

// Period is one entry of the forecast window.
type Period struct {
	Name          string
	Temperature   int
	ShortForecast string
}

// Weather is the weather record for a postal code. When Err is set the other
// fields carry no content.
type Weather struct {
	Zipcode  string
	Location *Place
	Current  *Conditions
	Forecast []Period
	Err      string
}

// SoilProperties are the dominant component's properties at the surface
// horizon. Numeric fields are nil when the survey has no value for them.
type SoilProperties struct {
	SoilName             string
	SoilSymbol           string
	ComponentName        string
	SoilOrder            string
	SoilSubgroup         string
	DrainageClass        string
	SandPercent          *float64
	SiltPercent          *float64
	ClayPercent          *float64
	SoilTexture          string
	PH                   *float64
	OrganicMatterPercent *float64
}

// Soil is the soil record for a postal code. When Err is set the other fields
// carry no content.
type Soil struct {
	Zipcode    string
	Location   *Place
	Properties *SoilProperties
	DataSource string
	Note       string
	Err        string
}
