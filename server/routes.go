package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// OAuth flow
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteOAuthCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.APIMiddleware()...))

	// Session introspection and publishing
	s.RegisterRouteFunc("GET "+RouteStatus, ChainMiddleware(s.StatusHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RoutePublish, ChainMiddleware(s.PublishHandler(), s.APIMiddleware()...))

	// CORS preflight for any route
	s.RegisterRouteFunc("OPTIONS /", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteMetrics, s.MetricsHandler())
}
