// Package openapi embeds the OpenAPI document for the HTTP API. The YAML file
// is the source; the JSON form is derived from it once at startup.
package openapi

import (
	_ "embed"
	"sync"

	"github.com/goccy/go-yaml"
)

// SpecYAML is the OpenAPI document. Served at GET /api/v1/openapi.yaml.
//
//go:embed openapi.yaml
var SpecYAML []byte

var (
	jsonOnce sync.Once
	specJSON []byte
	jsonErr  error
)

// SpecJSON returns the document converted to JSON. Served at
// GET /api/v1/openapi.json.
func SpecJSON() ([]byte, error) {
	jsonOnce.Do(func() {
		specJSON, jsonErr = yaml.YAMLToJSON(SpecYAML)
	})
	return specJSON, jsonErr
}
