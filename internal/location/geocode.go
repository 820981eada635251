package location

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
)

// zipToCoordinates resolves a US postal code to a coordinate pair using the NWS
// geocoding endpoint, which answers with an XML document containing a
// "lat,lon" list.
func (s *Service) zipToCoordinates(ctx context.Context, zipcode string) (float64, float64, error) {
	query := url.Values{}
	query.Set("listZipCodeList", zipcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.geocodeURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, 0, errors.Wrap(err, "create geocode request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, 0, errors.Wrap(err, "do geocode request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, errors.New("unexpected geocode status code", slog.Int("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, errors.Wrap(err, "read geocode response")
	}

	var parsed struct {
		LatLonList string `xml:"latLonList"`
	}
	if err = xml.Unmarshal(body, &parsed); err != nil {
		return 0, 0, errors.Wrap(err, "parse geocode response")
	}

	coords := strings.Split(strings.TrimSpace(parsed.LatLonList), ",")
	if len(coords) != 2 {
		return 0, 0, errors.New("no coordinates for postal code", slog.String("zipcode", zipcode))
	}
	lat, err := strconv.ParseFloat(coords[0], 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse latitude")
	}
	lon, err := strconv.ParseFloat(coords[1], 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse longitude")
	}
	return lat, lon, nil
}
