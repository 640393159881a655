package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex         = "/{$}"
	RouteHealth        = "/health"
	RouteLogin         = "/login"
	RouteOAuthCallback = "/oauth/callback"
	RouteStatus        = "/status"
	RoutePublish       = "/publish"
	RouteMetrics       = "/metrics"
)
