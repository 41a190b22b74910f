package apipaths

import "net/url"

// API surface paths. Used by routes and by tests.

const (
	Health      = "/api/health"
	AuthMount   = "/api/auth"
	AuthCheck   = "/api/auth/check"
	Me          = "/api/me"
	Circles     = "/api/recharge/circles"
	SystemStats = "/api/system/stats"
)

func CircleByCode(code string) string { return Circles + "/" + url.PathEscape(code) }
func AuthLogin(provider string) string { return AuthMount + "/" + provider + "/login" }
