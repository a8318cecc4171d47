package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is a statement number on the wire. Undefined values (NaN, ±Inf)
// are encoded as null and decoded back to NaN.
type Value float64

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// Defined reports whether v holds a number.
func (v Value) Defined() bool {
	return !math.IsNaN(float64(v))
}

// Values converts a float series to wire values.
func Values(series []float64) []Value {
	out := make([]Value, len(series))
	for i, f := range series {
		out[i] = Value(f)
	}
	return out
}

// PeriodsResponse lists the statement months
type PeriodsResponse struct {
	Periods        []string `json:"periods"`
	DefaultPeriods []string `json:"default_periods"`
}

// CategoryResponse describes one registered category
type CategoryResponse struct {
	Name             string   `json:"name"`
	Title            string   `json:"title,omitempty"`
	Total            string   `json:"total"`
	Members          []string `json:"members"`
	Headline         string   `json:"headline"`
	RatioToBase      bool     `json:"ratio_to_base"`
	DropEmptyPeriods bool     `json:"drop_empty_periods"`
}

// CategoriesResponse lists the registered categories in display order
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Count      int                `json:"count"`
}

// TableResponse is a period x column table. Rows[i] holds the values of
// Periods[i] in Columns order.
type TableResponse struct {
	Periods []string  `json:"periods"`
	Columns []string  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

// StatisticsResponse summarises the headline column
type StatisticsResponse struct {
	Metric string `json:"metric"`
	Count  int    `json:"count"`
	Best   Value  `json:"best"`
	Worst  Value  `json:"worst"`
	Mean   Value  `json:"mean"`
	Spread Value  `json:"spread"`
}

// DerivedViewResponse is the derived view of one category
type DerivedViewResponse struct {
	Category   string             `json:"category"`
	Title      string             `json:"title,omitempty"`
	Table      TableResponse      `json:"table"`
	Magnitudes *TableResponse     `json:"magnitudes,omitempty"`
	Pruned     []string           `json:"pruned"`
	Statistics StatisticsResponse `json:"statistics"`
}

// BatchDeriveResponse holds views in request order
type BatchDeriveResponse struct {
	Views []DerivedViewResponse `json:"views"`
	Count int                   `json:"count"`
}

// MeasureResponse is one consolidated column total
type MeasureResponse struct {
	Column      string `json:"column"`
	Total       Value  `json:"total"`
	ShareOfBase Value  `json:"share_of_base"`
}

// OverviewResponse holds consolidated totals over the selected periods
type OverviewResponse struct {
	Periods  []string          `json:"periods"`
	Base     string            `json:"base"`
	Measures []MeasureResponse `json:"measures"`
}
