// Package cors builds the fixed CORS header set shared by every API route.
package cors

import (
	"net/http"
	"strings"
)

const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderMaxAge           = "Access-Control-Max-Age"

	allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowedHeaders = "Content-Type, Authorization, X-JWT, X-XSRF-TOKEN"
	maxAge         = "86400" // 24 hours
	wildcardOrigin = "*"
)

// Policy is the immutable CORS header set. It is built once at startup and
// safe for concurrent use.
type Policy struct {
	headers map[string]string
}

// NewPolicy builds the header set for the given origin. An empty origin means
// any origin. Credentials are only advertised for an explicit origin because
// browsers reject them alongside a wildcard.
func NewPolicy(allowedOrigin string) *Policy {
	origin := strings.TrimSpace(allowedOrigin)
	if origin == "" {
		origin = wildcardOrigin
	}

	headers := map[string]string{
		HeaderAllowOrigin:  origin,
		HeaderAllowMethods: allowedMethods,
		HeaderAllowHeaders: allowedHeaders,
		HeaderMaxAge:       maxAge,
	}
	if origin != wildcardOrigin {
		headers[HeaderAllowCredentials] = "true"
	}

	return &Policy{headers: headers}
}

// Headers returns a copy of the header set
func (p *Policy) Headers() map[string]string {
	out := make(map[string]string, len(p.headers))
	for k, v := range p.headers {
		out[k] = v
	}
	return out
}

// Apply writes every header of the set into h, replacing existing values
func (p *Policy) Apply(h http.Header) {
	for k, v := range p.headers {
		h.Set(k, v)
	}
}

// Preflight answers an OPTIONS request: 204, header set, no body
func (p *Policy) Preflight(w http.ResponseWriter) {
	p.Apply(w.Header())
	w.WriteHeader(http.StatusNoContent)
}
