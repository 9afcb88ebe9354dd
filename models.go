package stlouisfed

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date in a JSON payload, formatted YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// Time is a timestamp in a JSON payload, formatted
// "2006-01-02 15:04:05-07". The zone offset carries hours only, so the
// minutes are supplied before parsing.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse("2006-01-02 15:04:05-0700", s+"00")
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// Value is an observation value. The service encodes values as strings and
// uses "." for missing data, which decodes to NaN.
type Value float64

// MissingValue is the upstream marker for a missing observation.
const MissingValue = "."

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == MissingValue {
		*v = Value(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", s, err)
	}
	*v = Value(f)
	return nil
}

// IsMissing reports whether the observation had no value.
func (v Value) IsMissing() bool {
	return math.IsNaN(float64(v))
}

// flexInt decodes an integer that the service sometimes quotes.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// Category is a node of the category tree.
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID int    `json:"parent_id"`
}

// Series describes an economic data series.
type Series struct {
	ID                      string `json:"id"`
	RealtimeStart           Date   `json:"realtime_start"`
	RealtimeEnd             Date   `json:"realtime_end"`
	Title                   string `json:"title"`
	ObservationStart        Date   `json:"observation_start"`
	ObservationEnd          Date   `json:"observation_end"`
	Frequency               string `json:"frequency"`
	FrequencyShort          string `json:"frequency_short"`
	Units                   string `json:"units"`
	UnitsShort              string `json:"units_short"`
	SeasonalAdjustment      string `json:"seasonal_adjustment"`
	SeasonalAdjustmentShort string `json:"seasonal_adjustment_short"`
	LastUpdated             Time   `json:"last_updated"`
	Popularity              int    `json:"popularity"`
	GroupPopularity         int    `json:"group_popularity,omitempty"`
	Notes                   string `json:"notes,omitempty"`
}

// Tag is a series tag.
type Tag struct {
	Name        string `json:"name"`
	GroupID     string `json:"group_id"`
	Notes       string `json:"notes"`
	Created     Time   `json:"created"`
	Popularity  int    `json:"popularity"`
	SeriesCount int    `json:"series_count"`
}

// Release is a release of economic data.
type Release struct {
	ID            int    `json:"id"`
	RealtimeStart Date   `json:"realtime_start"`
	RealtimeEnd   Date   `json:"realtime_end"`
	Name          string `json:"name"`
	PressRelease  bool   `json:"press_release"`
	Link          string `json:"link,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// ReleaseDate is one published date of a release. ReleaseName is only
// populated by the all-releases listing.
type ReleaseDate struct {
	ReleaseID   int    `json:"release_id"`
	ReleaseName string `json:"release_name,omitempty"`
	Date        Date   `json:"date"`
}

// Source of economic data.
type Source struct {
	ID            int    `json:"id"`
	RealtimeStart Date   `json:"realtime_start"`
	RealtimeEnd   Date   `json:"realtime_end"`
	Name          string `json:"name"`
	Link          string `json:"link,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Observation is one data value of a series.
type Observation struct {
	RealtimeStart Date  `json:"realtime_start"`
	RealtimeEnd   Date  `json:"realtime_end"`
	Date          Date  `json:"date"`
	Value         Value `json:"value"`
}

// VintageObservationRow is one observation date of a vintage cross
// tabulation: the value of the series as it existed on each vintage date.
// Keys of Values are column names like "GNPCA_20200704"; absent revisions
// decode as NaN.
type VintageObservationRow struct {
	Date   Date
	Values map[string]Value
}

func (r *VintageObservationRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Values = make(map[string]Value, len(raw))
	for k, v := range raw {
		if k == "date" {
			if err := json.Unmarshal(v, &r.Date); err != nil {
				return err
			}
			continue
		}
		var val Value
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		r.Values[k] = val
	}
	return nil
}

// VintageDate is a date on which a series was revised or first released.
type VintageDate = Date

// ReleaseTableElement is a node of a release table tree. Series-type nodes
// carry a SeriesID; header nodes do not. Several numeric fields arrive
// quoted and are decoded leniently.
type ReleaseTableElement struct {
	ElementID        int                   `json:"element_id"`
	ReleaseID        flexInt               `json:"release_id"`
	SeriesID         string                `json:"series_id,omitempty"`
	ParentID         flexInt               `json:"parent_id"`
	Line             flexInt               `json:"line"`
	Type             string                `json:"type"`
	Name             string                `json:"name"`
	Level            flexInt               `json:"level"`
	ObservationDate  *Date                 `json:"observation_date,omitempty"`
	ObservationValue string                `json:"observation_value,omitempty"`
	Children         []ReleaseTableElement `json:"children"`
}

// ReleaseTable is a release table tree rooted at the requested element.
type ReleaseTable struct {
	Name      string                         `json:"name"`
	ElementID int                            `json:"element_id"`
	ReleaseID flexInt                        `json:"release_id"`
	Elements  map[string]ReleaseTableElement `json:"elements"`
}
