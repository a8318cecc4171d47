package http

import (
	"drecli/internal/dre"
	"drecli/internal/services"
	api "drecli/pkg/contracts/api/v1"
)

func categoryResponse(c dre.Category) api.CategoryResponse {
	return api.CategoryResponse{
		Name:             c.Name,
		Title:            c.Title,
		Total:            c.Total(),
		Members:          orEmpty(c.Members),
		Headline:         c.HeadlineColumn(),
		RatioToBase:      c.RatioToBase,
		DropEmptyPeriods: c.DropEmptyPeriods,
	}
}

func tableResponse(t *dre.Table) api.TableResponse {
	rows := t.Rows()
	out := make([][]api.Value, len(rows))
	for i, row := range rows {
		out[i] = api.Values(row)
	}
	return api.TableResponse{
		Periods: orEmpty(t.Periods()),
		Columns: orEmpty(t.Columns()),
		Rows:    out,
	}
}

func statisticsResponse(s dre.StatisticsRecord) api.StatisticsResponse {
	return api.StatisticsResponse{
		Metric: s.Metric,
		Count:  s.Count,
		Best:   api.Value(s.Best),
		Worst:  api.Value(s.Worst),
		Mean:   api.Value(s.Mean),
		Spread: api.Value(s.Spread),
	}
}

func derivedViewResponse(v *dre.DerivedView) api.DerivedViewResponse {
	resp := api.DerivedViewResponse{
		Category:   v.Category.Name,
		Title:      v.Category.Title,
		Table:      tableResponse(v.Table),
		Pruned:     orEmpty(v.Pruned),
		Statistics: statisticsResponse(v.Statistics),
	}
	if v.Magnitudes != nil {
		m := tableResponse(v.Magnitudes)
		resp.Magnitudes = &m
	}
	return resp
}

func overviewResponse(o *services.Overview) api.OverviewResponse {
	measures := make([]api.MeasureResponse, len(o.Measures))
	for i, m := range o.Measures {
		measures[i] = api.MeasureResponse{
			Column:      m.Column,
			Total:       api.Value(m.Total),
			ShareOfBase: api.Value(m.ShareOfBase),
		}
	}
	return api.OverviewResponse{
		Periods:  orEmpty(o.Periods),
		Base:     o.Base,
		Measures: measures,
	}
}

// orEmpty keeps empty lists as [] rather than null on the wire.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
