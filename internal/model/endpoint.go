package model

import (
	"encoding/json"
	"net/http"
)

// Endpoint identifies one backend resource polled by a session.
// URL may be absolute or a path relative to the configured backend URL.
type Endpoint struct {
	Label  string          `json:"label" yaml:"label" validate:"required"`
	URL    string          `json:"url" yaml:"url" validate:"required"`
	Method string          `json:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,oneof=GET POST"`
	Body   json.RawMessage `json:"body,omitempty" yaml:"-"`
}

// HTTPMethod returns the request method, defaulting to GET.
func (e Endpoint) HTTPMethod() string {
	if e.Method == "" {
		return http.MethodGet
	}
	return e.Method
}
