package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"igpublisher/authflow"
	"igpublisher/graph"
	"igpublisher/internal/config"
	"igpublisher/internal/metrics"
	"igpublisher/publisher"
	"igpublisher/session"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	graph     *graph.Client
	flow      *authflow.Flow
	sessions  *session.Store
	publisher *publisher.Service
	metrics   *metrics.Metrics
	registry  *prometheus.Registry
}

func New(cfg config.Config) (*Server, error) {
	graphClient := graph.NewClient(cfg.GetGraphBaseURL())

	flow, err := authflow.New(cfg, graphClient.HTTPClient())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth flow: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	sessions := session.NewStore()

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		graph:     graphClient,
		flow:      flow,
		sessions:  sessions,
		publisher: publisher.NewService(graphClient, sessions, m),
		metrics:   m,
		registry:  registry,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
