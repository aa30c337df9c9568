package models

import (
	"encoding/json"
	"strings"
)

// ParseServiceTypes normalizes a legacy service-type field into a tag
// set. Older exports stored the tags either as a JSON string array
// (`["Plumbing","HVAC"]`) or as a plain delimited string; this parser
// lives at the import boundary only — once stored, tags are a real
// text[] column.
func ParseServiceTypes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err == nil {
		return cleanTags(tags)
	}

	// A bare JSON string ("Plumbing, HVAC") unmarshals to a string.
	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		raw = single
	}

	// Fall back to stripping bracket/quote characters and splitting on
	// the delimiters seen in the wild.
	raw = strings.Trim(raw, "[]")
	raw = strings.ReplaceAll(raw, `"`, "")
	raw = strings.ReplaceAll(raw, "'", "")
	raw = strings.ReplaceAll(raw, ";", ",")
	raw = strings.ReplaceAll(raw, "|", ",")
	return cleanTags(strings.Split(raw, ","))
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FormatServiceTypes renders a tag set as a comma-joined display
// string. An empty set means "any service".
func FormatServiceTypes(tags []string) string {
	if len(tags) == 0 {
		return "Any"
	}
	return strings.Join(tags, ", ")
}

// HasServiceType reports whether tags contains a case-insensitive
// match for serviceType. An empty tag set matches everything.
func HasServiceType(tags []string, serviceType string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(serviceType)) {
			return true
		}
	}
	return false
}
