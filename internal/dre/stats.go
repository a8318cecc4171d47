package dre

import "math"

// StatisticsRecord summarises one metric over the selected periods.
// Undefined fields are NaN.
type StatisticsRecord struct {
	Metric string  `json:"metric"`
	Count  int     `json:"count"`
	Best   float64 `json:"best"`
	Worst  float64 `json:"worst"`
	Mean   float64 `json:"mean"`
	Spread float64 `json:"spread"`
}

// Summarize computes best (max), worst (min), mean and spread (sample
// standard deviation, N-1) of values. Empty input leaves every field
// undefined and a single value leaves the spread undefined.
func Summarize(metric string, values []float64) StatisticsRecord {
	rec := StatisticsRecord{
		Metric: metric,
		Count:  len(values),
		Best:   math.NaN(),
		Worst:  math.NaN(),
		Mean:   math.NaN(),
		Spread: math.NaN(),
	}
	if len(values) == 0 {
		return rec
	}

	best, worst := values[0], values[0]
	total := 0.0
	for _, v := range values {
		best = math.Max(best, v)
		worst = math.Min(worst, v)
		total += v
	}
	rec.Best, rec.Worst = best, worst

	n := float64(len(values))
	// constant series: avoid accumulated rounding in mean and spread
	if best == worst {
		rec.Mean = best
		if len(values) > 1 {
			rec.Spread = 0
		}
		return rec
	}

	mean := total / n
	rec.Mean = mean
	if len(values) < 2 {
		return rec
	}

	squares := 0.0
	for _, v := range values {
		d := v - mean
		squares += d * d
	}
	rec.Spread = math.Sqrt(squares / (n - 1))
	return rec
}
