package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGrowth(t *testing.T) {
	tests := []struct {
		name      string
		today     float64
		yesterday float64
		want      float64
	}{
		{"no activity either day", 0, 0, 0},
		{"new activity from zero", 500, 0, 100},
		{"doubled", 200, 100, 100},
		{"halved", 50, 100, -50},
		{"flat", 120, 120, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateGrowth(tt.today, tt.yesterday))
		})
	}
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))

	p := StringPtr("x")
	assert.NotNil(t, p)
	assert.Equal(t, "x", *p)
}
