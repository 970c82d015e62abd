package Stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		value interface{}
		want  bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"maybe", false},
		{1, true},
		{0, false},
		{float64(1), true},
		{float64(0), false},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToBool(tt.value), "value %#v", tt.value)
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		value interface{}
		want  float64
	}{
		{10.5, 10.5},
		{7, 7},
		{int64(3), 3},
		{"10.5", 10.5},
		{" 10.5 ", 10.5},
		{"10.5 RM", 10.5},
		{"-2.25", -2.25},
		{"", 0},
		{"abc", 0},
		{nil, 0},
		{true, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToNumber(tt.value), "value %#v", tt.value)
	}
}
