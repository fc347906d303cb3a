// Package api embeds the HTTP contract served and enforced by the server.
package api

import _ "embed"

// OpenAPI is the OpenAPI 3 document of the HTTP API in YAML.
//
//go:embed openapi.yml
var OpenAPI []byte
