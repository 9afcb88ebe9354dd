package fredmaps

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/TomasKoutek/stlouisfed"
)

// ShapeFile is a map boundary file: a GeoJSON feature collection plus the
// cartographic metadata the service attaches to it.
type ShapeFile struct {
	Title          string
	Version        string
	Copyright      string
	CopyrightShort string
	CopyrightURL   string
	// CRS is the coordinate reference system of the geometries. The
	// service mislabels its projection as "urn:ogc:def:crs:EPSG:54003"
	// (54003 is an ESRI code, not EPSG), so when the Highcharts transform
	// block is present its PROJ4 string is used instead.
	CRS      string
	Features []*geojson.Feature
}

func decodeShapeFile(doc map[string]json.RawMessage) (ShapeFile, error) {
	var file ShapeFile

	stringField := func(key string) string {
		var s string
		if raw, ok := doc[key]; ok {
			_ = json.Unmarshal(raw, &s)
		}
		return s
	}
	file.Title = stringField("title")
	file.Version = stringField("version")
	file.Copyright = stringField("copyright")
	file.CopyrightShort = stringField("copyrightShort")
	file.CopyrightURL = stringField("copyrightUrl")

	if raw, ok := doc["hc-transform"]; ok {
		var transform struct {
			Default struct {
				CRS string `json:"crs"`
			} `json:"default"`
		}
		if err := json.Unmarshal(raw, &transform); err == nil {
			file.CRS = transform.Default.CRS
		}
	}
	if file.CRS == "" {
		if raw, ok := doc["crs"]; ok {
			var crs struct {
				Properties struct {
					Name string `json:"name"`
				} `json:"properties"`
			}
			if err := json.Unmarshal(raw, &crs); err == nil {
				file.CRS = crs.Properties.Name
			}
		}
	}

	raw, ok := doc["features"]
	if !ok {
		return file, fmt.Errorf("shape file has no features")
	}
	if err := json.Unmarshal(raw, &file.Features); err != nil {
		return file, fmt.Errorf("failed to decode features: %w", err)
	}
	return file, nil
}

// SeriesGroup is the meta information of a group of regional series.
type SeriesGroup struct {
	Title       string          `json:"title"`
	RegionType  string          `json:"region_type"`
	SeriesGroup string          `json:"series_group"`
	Season      string          `json:"season"`
	Units       string          `json:"units"`
	Frequency   string          `json:"frequency"`
	MinDate     stlouisfed.Date `json:"min_date"`
	MaxDate     stlouisfed.Date `json:"max_date"`
}

// RegionalObservation is one region's value in a cross section. Year is
// the release date the cross section belongs to; Code is the region code
// as published (FIPS codes keep their leading zeros).
type RegionalObservation struct {
	Region   string           `json:"region"`
	Code     string           `json:"code"`
	Value    stlouisfed.Value `json:"value"`
	SeriesID string           `json:"series_id"`
	Year     stlouisfed.Date  `json:"-"`
}

// flattenYears turns the year-keyed cross section object into a flat list
// of observations tagged with their year.
func flattenYears(items []json.RawMessage) ([]RegionalObservation, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var years map[string][]json.RawMessage
	if err := json.Unmarshal(items[0], &years); err != nil {
		return nil, fmt.Errorf("failed to decode cross section: %w", err)
	}

	var result []RegionalObservation
	for year, rows := range years {
		var date stlouisfed.Date
		if err := json.Unmarshal([]byte(`"`+year+`"`), &date); err != nil {
			return nil, err
		}
		for _, raw := range rows {
			var obs RegionalObservation
			if err := json.Unmarshal(raw, &obs); err != nil {
				return nil, fmt.Errorf("failed to decode observation: %w", err)
			}
			obs.Year = date
			result = append(result, obs)
		}
	}
	return result, nil
}
