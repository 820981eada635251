package location

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/cropsage/cropsage/internal/errors"
)

// soilQueryTemplate selects the dominant component's surface horizon at the
// given point. Column order matters: parseSoilRow indexes into it.
const soilQueryTemplate = `
SELECT TOP 1
    mu.muname AS soil_name,
    mu.musym AS soil_symbol,
    c.compname AS component_name,
    c.taxorder AS soil_order,
    c.taxsubgrp AS soil_subgroup,
    c.drainagecl AS drainage_class,
    ch.sandtotal_r AS sand_percent,
    ch.silttotal_r AS silt_percent,
    ch.claytotal_r AS clay_percent,
    ch.ph1to1h2o_r AS ph,
    ch.om_r AS organic_matter_percent
FROM mapunit AS mu
INNER JOIN component AS c ON mu.mukey = c.mukey
INNER JOIN chorizon AS ch ON c.cokey = ch.cokey
WHERE mu.mukey IN (
    SELECT * FROM SDA_Get_Mukey_from_intersection_with_WktWgs84(
        'point(%v %v)'
    )
)
AND c.comppct_r = (
    SELECT MAX(c2.comppct_r)
    FROM component AS c2
    WHERE c2.mukey = mu.mukey
)
AND ch.hzdept_r = 0
ORDER BY c.comppct_r DESC
`

const soilDataSource = "USDA SSURGO via Soil Data Access"

// Soil fetches the dominant soil properties for the postal code from USDA Soil
// Data Access. Failures degrade to an error-marked record; a location without
// detailed survey coverage yields a note instead of an error.
func (s *Service) Soil(ctx context.Context, zipcode string) Soil {
	lat, lon, err := s.zipToCoordinates(ctx, zipcode)
	if err != nil {
		return Soil{
			Zipcode: zipcode,
			Err:     fmt.Sprintf("Could not find location for zip code %s", zipcode),
		}
	}

	table, err := s.tabularQuery(ctx, fmt.Sprintf(soilQueryTemplate, lon, lat))
	if err != nil {
		return Soil{
			Zipcode: zipcode,
			Err:     fmt.Sprintf("Failed to fetch soil data: %s", err),
		}
	}
	if len(table) == 0 {
		return Soil{
			Zipcode:    zipcode,
			Properties: &SoilProperties{SoilName: "No detailed soil data available for this location"},
			DataSource: soilDataSource,
			Note:       "This location may not have detailed SSURGO coverage",
		}
	}

	properties := parseSoilRow(table[0])
	return Soil{
		Zipcode: zipcode,
		Location: &Place{
			Latitude:  lat,
			Longitude: lon,
		},
		Properties: &properties,
		DataSource: soilDataSource,
	}
}

// tabularQuery posts a SQL query to SDA and returns the result rows. SDA
// answers with a JSON object whose "Table" member is a list of rows.
func (s *Service) tabularQuery(ctx context.Context, query string) ([][]any, error) {
	body, err := json.Marshal(map[string]string{
		"query":  query,
		"format": "JSON",
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.soilURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create query request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do query request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected query status code", slog.Int("status", resp.StatusCode))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read query response")
	}
	var parsed struct {
		Table [][]any `json:"Table"`
	}
	if err = json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.Wrap(err, "parse query response")
	}
	return parsed.Table, nil
}

// parseSoilRow maps one SDA result row to soil properties, column order
// matching soilQueryTemplate.
func parseSoilRow(row []any) SoilProperties {
	properties := SoilProperties{
		SoilName:             stringCell(row, 0),
		SoilSymbol:           stringCell(row, 1),
		ComponentName:        stringCell(row, 2),
		SoilOrder:            stringCell(row, 3),
		SoilSubgroup:         stringCell(row, 4),
		DrainageClass:        stringCell(row, 5),
		SandPercent:          floatCell(row, 6),
		SiltPercent:          floatCell(row, 7),
		ClayPercent:          floatCell(row, 8),
		PH:                   floatCell(row, 9),
		OrganicMatterPercent: floatCell(row, 10),
	}
	properties.SoilTexture = ClassifyTexture(properties.ClayPercent, properties.SandPercent, properties.SiltPercent)
	return properties
}

// stringCell returns the cell as a string or "Unknown" when it is missing.
func stringCell(row []any, index int) string {
	if index >= len(row) || row[index] == nil {
		return "Unknown"
	}
	value, ok := row[index].(string)
	if !ok || value == "" {
		return "Unknown"
	}
	return value
}

// floatCell returns the cell rounded to one decimal, or nil when it cannot be
// read as a number. SDA serializes numbers inconsistently as JSON numbers or
// strings.
func floatCell(row []any, index int) *float64 {
	if index >= len(row) || row[index] == nil {
		return nil
	}
	var value float64
	switch cell := row[index].(type) {
	case float64:
		value = cell
	case string:
		if cell == "" || cell == "None" {
			return nil
		}
		parsed, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil
		}
		value = parsed
	default:
		return nil
	}
	value = math.Round(value*10) / 10
	return &value
}
