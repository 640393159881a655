// Package publisher orchestrates the publish pipeline: create a media
// container, wait for remote transcoding, commit the container.
package publisher

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"igpublisher/graph"
	"igpublisher/internal/metrics"
	"igpublisher/session"
)

// Request is the body of POST /publish. ShareToFeed and Wait are
// pointers so absence is distinguishable from an explicit false; both
// default to true.
type Request struct {
	MediaType   string `json:"media_type"`
	VideoURL    string `json:"video_url"`
	Caption     string `json:"caption"`
	ShareToFeed *bool  `json:"share_to_feed"`
	Wait        *bool  `json:"wait"`
}

// Result carries the identifiers of a completed publish.
type Result struct {
	MediaType   string
	ContainerID string
	MediaID     string
}

type Service struct {
	graph    *graph.Client
	sessions *session.Store
	metrics  *metrics.Metrics
}

func NewService(graphClient *graph.Client, sessions *session.Store, m *metrics.Metrics) *Service {
	return &Service{graph: graphClient, sessions: sessions, metrics: m}
}

// Run executes the full pipeline. The session and the request are
// validated before the first upstream call; after that the first
// failure aborts the remainder, leaving no partial-success state to
// report.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	rec, _ := s.sessions.Snapshot()
	if !rec.Publishable() {
		return nil, session.ErrNoSession
	}

	mediaType := strings.ToUpper(strings.TrimSpace(req.MediaType))
	if mediaType == "" {
		mediaType = graph.MediaTypeReels
	}
	if !validMediaTypes[mediaType] {
		return nil, &ValidationError{Field: "media_type", Reason: "use REELS, VIDEO or STORIES"}
	}

	videoURL := strings.TrimSpace(req.VideoURL)
	if !strings.HasPrefix(videoURL, "https://") {
		return nil, &ValidationError{Field: "video_url", Reason: "must be a public https URL the platform can fetch"}
	}

	shareToFeed := true
	if req.ShareToFeed != nil {
		shareToFeed = *req.ShareToFeed
	}
	wait := true
	if req.Wait != nil {
		wait = *req.Wait
	}

	containerID, err := s.graph.CreateContainer(ctx, rec.IGUserID, rec.PageAccessToken, graph.ContainerParams{
		MediaType:   mediaType,
		VideoURL:    videoURL,
		Caption:     strings.TrimSpace(req.Caption),
		ShareToFeed: shareToFeed,
	})
	if err != nil {
		s.metrics.PublishOutcome(mediaType, "create_failed")
		return nil, err
	}
	log.Info().
		Str("container_id", containerID).
		Str("media_type", mediaType).
		Msg("media container created")

	if wait {
		start := time.Now()
		if err := s.graph.AwaitProcessing(ctx, containerID, rec.PageAccessToken); err != nil {
			s.metrics.PublishOutcome(mediaType, "processing_failed")
			return nil, err
		}
		s.metrics.ObserveProcessing(time.Since(start))
	}

	mediaID, err := s.graph.Publish(ctx, rec.IGUserID, rec.PageAccessToken, containerID)
	if err != nil {
		s.metrics.PublishOutcome(mediaType, "publish_failed")
		return nil, err
	}

	s.metrics.PublishOutcome(mediaType, "published")
	log.Info().
		Str("container_id", containerID).
		Str("media_id", mediaID).
		Msg("media published")

	return &Result{MediaType: mediaType, ContainerID: containerID, MediaID: mediaID}, nil
}
