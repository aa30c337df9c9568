package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseServiceTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["Plumbing","HVAC"]`, []string{"Plumbing", "HVAC"}},
		{"comma delimited", "Plumbing, HVAC", []string{"Plumbing", "HVAC"}},
		{"semicolon delimited", "Plumbing;HVAC", []string{"Plumbing", "HVAC"}},
		{"pipe delimited", "Plumbing|Electrical", []string{"Plumbing", "Electrical"}},
		{"json string", `"Plumbing, HVAC"`, []string{"Plumbing", "HVAC"}},
		{"malformed json degrades", `["Plumbing","HVAC`, []string{"Plumbing", "HVAC"}},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"stray quotes", `'Roofing', "Siding"`, []string{"Roofing", "Siding"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseServiceTypes(tt.raw))
		})
	}
}

func TestFormatServiceTypes(t *testing.T) {
	assert.Equal(t, "Plumbing, HVAC", FormatServiceTypes([]string{"Plumbing", "HVAC"}))
	assert.Equal(t, "Any", FormatServiceTypes(nil))
	assert.Equal(t, "Any", FormatServiceTypes([]string{}))
}

func TestHasServiceType(t *testing.T) {
	tags := []string{"Plumbing", "HVAC"}
	assert.True(t, HasServiceType(tags, "plumbing"))
	assert.True(t, HasServiceType(tags, " HVAC "))
	assert.False(t, HasServiceType(tags, "Electrical"))

	// An empty tag set means "any service".
	assert.True(t, HasServiceType(nil, "Electrical"))
}
