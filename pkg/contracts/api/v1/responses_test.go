package api

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal(StatisticsResponse{
		Metric: "ebitda",
		Count:  1,
		Best:   1234.5,
		Worst:  -0.25,
		Mean:   Value(math.Inf(1)),
		Spread: Value(math.NaN()),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"metric":"ebitda","count":1,"best":1234.5,"worst":-0.25,"mean":null,"spread":null}`, string(data))

	var back StatisticsResponse
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Value(1234.5), back.Best)
	assert.False(t, back.Spread.Defined())
	assert.True(t, back.Worst.Defined())
}

func TestValues(t *testing.T) {
	row := Values([]float64{1, math.NaN()})
	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `[1,null]`, string(data))

	var bad Value
	assert.Error(t, json.Unmarshal([]byte(`"x"`), &bad))
}
