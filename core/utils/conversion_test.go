package utils_test

import (
	"testing"

	"destination-sync/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	var nilStr *string
	s := "x"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"NilPointer", nilStr, ""},
		{"Pointer", &s, "x"},
		{"String", "abc", "abc"},
		{"Bytes", []byte("abc"), "abc"},
		{"Bool", true, "true"},
		{"Float", 12.5, "12.5"},
		{"WholeFloat", float64(18774466722), "18774466722"},
		{"Int", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ToString(tt.in))
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "18774466722", utils.DigitsOnly("+1 (877) 446-6722"))
	assert.Equal(t, "", utils.DigitsOnly("n/a"))
}

func TestBoolValue(t *testing.T) {
	assert.False(t, utils.BoolValue(nil))
	assert.True(t, utils.BoolValue(utils.BoolPtr(true)))
	assert.False(t, utils.BoolValue(utils.BoolPtr(false)))
}
