package graph

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Media types accepted by the container-create call.
const (
	MediaTypeVideo   = "VIDEO"
	MediaTypeReels   = "REELS"
	MediaTypeStories = "STORIES"
)

// Container processing states reported by the Graph API.
const (
	statusFinished = "FINISHED"
	statusError    = "ERROR"
	statusExpired  = "EXPIRED"
)

// ContainerParams describes one media container. Caption is sent only
// when non-empty; ShareToFeed only applies to REELS.
type ContainerParams struct {
	MediaType   string
	VideoURL    string
	Caption     string
	ShareToFeed bool
}

type idResponse struct {
	ID string `json:"id"`
}

// CreateContainer registers a processing container for a remotely
// hosted video and returns its id. The platform fetches and transcodes
// the video asynchronously; poll with AwaitProcessing before
// publishing.
func (c *Client) CreateContainer(ctx context.Context, igUserID, pageToken string, p ContainerParams) (string, error) {
	form := url.Values{}
	form.Set("media_type", p.MediaType)
	form.Set("video_url", p.VideoURL)
	form.Set("access_token", pageToken)
	if p.Caption != "" {
		form.Set("caption", p.Caption)
	}
	if p.MediaType == MediaTypeReels {
		form.Set("share_to_feed", strconv.FormatBool(p.ShareToFeed))
	}

	var resp idResponse
	if err := c.call(ctx, http.MethodPost, "/"+igUserID+"/media", nil, form, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", ErrNoContainerID
	}
	return resp.ID, nil
}

type containerStatus struct {
	StatusCode string `json:"status_code"`
	Status     string `json:"status"`
}

// AwaitProcessing polls the container status at a fixed interval until
// the platform reports FINISHED. ERROR and EXPIRED are terminal and
// never retried. The wait is bounded by the client's processing
// timeout and aborts early when ctx is cancelled.
func (c *Client) AwaitProcessing(ctx context.Context, containerID, pageToken string) error {
	query := url.Values{}
	query.Set("fields", "status_code,status")
	query.Set("access_token", pageToken)

	deadline := time.Now().Add(c.processingTimeout)
	for {
		var st containerStatus
		if err := c.call(ctx, http.MethodGet, "/"+containerID, query, nil, &st); err != nil {
			return err
		}

		switch st.StatusCode {
		case statusFinished:
			return nil
		case statusError, statusExpired:
			return &ProcessingError{ContainerID: containerID, StatusCode: st.StatusCode, Status: st.Status}
		}

		if time.Now().After(deadline) {
			return ErrProcessingTimeout
		}

		log.Debug().
			Str("container_id", containerID).
			Str("status_code", st.StatusCode).
			Msg("container still processing")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// Publish commits a finished container as a published media item and
// returns the media id.
func (c *Client) Publish(ctx context.Context, igUserID, pageToken, containerID string) (string, error) {
	form := url.Values{}
	form.Set("creation_id", containerID)
	form.Set("access_token", pageToken)

	var resp idResponse
	if err := c.call(ctx, http.MethodPost, "/"+igUserID+"/media_publish", nil, form, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", ErrNoMediaID
	}
	return resp.ID, nil
}
