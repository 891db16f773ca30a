package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{`49`, 49, false},
		{`"49.5"`, 49.5, false},
		{`" 10 "`, 10, false},
		{`"cheap"`, 0, true},
		{`"Infinity"`, 0, true},
		{`"-Inf"`, 0, true},
		{`"NaN"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.raw), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, float64(a))
		})
	}
}
