package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrProjectNotFound is returned by the persistence collaborator when a
// project is missing or not visible to the requesting identity. It is
// terminal: the pipeline does not fall back on it.
var ErrProjectNotFound = errors.New("project not found")

// ValidationError rejects a request before the pipeline starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseCityData decodes a stored city document. Malformed or empty JSON
// yields an empty city, never an error.
func ParseCityData(raw string) CityData {
	var city CityData
	if raw == "" {
		return city
	}
	if err := json.Unmarshal([]byte(raw), &city); err != nil {
		return CityData{}
	}
	return city
}
