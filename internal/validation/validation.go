package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ValidateOrigin validates a CORS origin: "*" or scheme://host[:port] with no
// path, query or trailing slash, as browsers send it in the Origin header
func ValidateOrigin(origin string) error {
	if origin == "" {
		return errors.New("origin cannot be empty")
	}
	if origin == "*" {
		return nil
	}
	if strings.Contains(origin, ",") || strings.Contains(origin, " ") {
		return errors.New("origin must be a single value")
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("origin scheme must be http or https")
	}
	if u.Host == "" {
		return errors.New("origin must include a host")
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return errors.New("origin must not include a path, query, fragment or credentials")
	}

	return nil
}

// ValidateHTTPURL validates an absolute http(s) base URL such as the Supabase
// project URL or the public base URL used for OAuth callbacks
func ValidateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("URL scheme must be http or https")
	}
	if u.Host == "" {
		return errors.New("URL must include a host")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return errors.New("URL must not include a query or fragment")
	}

	return nil
}
