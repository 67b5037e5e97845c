package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "defined", v: Some(1.5), want: "1.5"},
		{name: "undefined", v: None(), want: "null"},
		{name: "positive infinity", v: Some(math.Inf(1)), want: "null"},
		{name: "negative infinity", v: Some(math.Inf(-1)), want: "null"},
		{name: "nan", v: Some(math.NaN()), want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestSeries_MarshalJSONWithOverflow(t *testing.T) {
	b, err := json.Marshal(Series{Some(1e308), Some(math.Inf(1)), None()})
	require.NoError(t, err)
	assert.Equal(t, "[1e+308,null,null]", string(b))
}
