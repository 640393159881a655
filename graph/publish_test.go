package graph_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"igpublisher/graph"
)

func TestCreateContainer(t *testing.T) {
	newCaptureServer := func(t *testing.T, reply map[string]any) (*httptest.Server, *url.Values) {
		t.Helper()
		var form url.Values
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			form = r.PostForm
			_ = json.NewEncoder(w).Encode(reply)
		}))
		t.Cleanup(ts.Close)
		return ts, &form
	}

	t.Run("reels carry share_to_feed", func(t *testing.T) {
		ts, form := newCaptureServer(t, map[string]any{"id": "c1"})

		id, err := graph.NewClient(ts.URL).CreateContainer(context.Background(), "ig1", "P1", graph.ContainerParams{
			MediaType:   graph.MediaTypeReels,
			VideoURL:    "https://cdn.example.com/v.mp4",
			Caption:     "hello",
			ShareToFeed: true,
		})
		require.NoError(t, err)
		require.Equal(t, "c1", id)

		require.Equal(t, "REELS", form.Get("media_type"))
		require.Equal(t, "https://cdn.example.com/v.mp4", form.Get("video_url"))
		require.Equal(t, "P1", form.Get("access_token"))
		require.Equal(t, "hello", form.Get("caption"))
		require.Equal(t, "true", form.Get("share_to_feed"))
	})

	t.Run("share_to_feed false is sent for reels", func(t *testing.T) {
		ts, form := newCaptureServer(t, map[string]any{"id": "c1"})

		_, err := graph.NewClient(ts.URL).CreateContainer(context.Background(), "ig1", "P1", graph.ContainerParams{
			MediaType: graph.MediaTypeReels,
			VideoURL:  "https://cdn.example.com/v.mp4",
		})
		require.NoError(t, err)
		require.Equal(t, "false", form.Get("share_to_feed"))
	})

	t.Run("plain video omits share_to_feed and empty caption", func(t *testing.T) {
		ts, form := newCaptureServer(t, map[string]any{"id": "c2"})

		_, err := graph.NewClient(ts.URL).CreateContainer(context.Background(), "ig1", "P1", graph.ContainerParams{
			MediaType: graph.MediaTypeVideo,
			VideoURL:  "https://cdn.example.com/v.mp4",
		})
		require.NoError(t, err)
		require.False(t, form.Has("share_to_feed"))
		require.False(t, form.Has("caption"))
	})

	t.Run("missing container id", func(t *testing.T) {
		ts, _ := newCaptureServer(t, map[string]any{})

		_, err := graph.NewClient(ts.URL).CreateContainer(context.Background(), "ig1", "P1", graph.ContainerParams{
			MediaType: graph.MediaTypeStories,
			VideoURL:  "https://cdn.example.com/v.mp4",
		})
		require.ErrorIs(t, err, graph.ErrNoContainerID)
	})
}

func TestAwaitProcessing(t *testing.T) {
	statusServer := func(t *testing.T, statuses ...string) *httptest.Server {
		t.Helper()
		calls := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/c1", r.URL.Path)
			require.Equal(t, "status_code,status", r.URL.Query().Get("fields"))
			status := statuses[len(statuses)-1]
			if calls < len(statuses) {
				status = statuses[calls]
			}
			calls++
			_ = json.NewEncoder(w).Encode(map[string]any{"status_code": status, "status": "detail"})
		}))
		t.Cleanup(ts.Close)
		return ts
	}

	t.Run("finishes after a few polls", func(t *testing.T) {
		ts := statusServer(t, "IN_PROGRESS", "IN_PROGRESS", "FINISHED")
		client := graph.NewClient(ts.URL)
		client.SetPollTiming(time.Millisecond, time.Second)

		require.NoError(t, client.AwaitProcessing(context.Background(), "c1", "P1"))
	})

	t.Run("error status is terminal", func(t *testing.T) {
		ts := statusServer(t, "ERROR")
		client := graph.NewClient(ts.URL)
		client.SetPollTiming(time.Millisecond, time.Second)

		err := client.AwaitProcessing(context.Background(), "c1", "P1")

		var procErr *graph.ProcessingError
		require.ErrorAs(t, err, &procErr)
		require.Equal(t, "c1", procErr.ContainerID)
		require.Equal(t, "ERROR", procErr.StatusCode)
	})

	t.Run("expired status is terminal", func(t *testing.T) {
		ts := statusServer(t, "EXPIRED")
		client := graph.NewClient(ts.URL)
		client.SetPollTiming(time.Millisecond, time.Second)

		var procErr *graph.ProcessingError
		require.ErrorAs(t, client.AwaitProcessing(context.Background(), "c1", "P1"), &procErr)
		require.Equal(t, "EXPIRED", procErr.StatusCode)
	})

	t.Run("times out when never terminal", func(t *testing.T) {
		ts := statusServer(t, "IN_PROGRESS")
		client := graph.NewClient(ts.URL)
		client.SetPollTiming(time.Millisecond, 20*time.Millisecond)

		err := client.AwaitProcessing(context.Background(), "c1", "P1")
		require.ErrorIs(t, err, graph.ErrProcessingTimeout)
	})

	t.Run("context cancellation aborts the wait", func(t *testing.T) {
		ts := statusServer(t, "IN_PROGRESS")
		client := graph.NewClient(ts.URL)
		client.SetPollTiming(time.Minute, time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := client.AwaitProcessing(ctx, "c1", "P1")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestPublish(t *testing.T) {
	t.Run("commits the container", func(t *testing.T) {
		var form url.Values
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/ig1/media_publish", r.URL.Path)
			require.NoError(t, r.ParseForm())
			form = r.PostForm
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "m1"})
		}))
		defer ts.Close()

		id, err := graph.NewClient(ts.URL).Publish(context.Background(), "ig1", "P1", "c1")
		require.NoError(t, err)
		require.Equal(t, "m1", id)
		require.Equal(t, "c1", form.Get("creation_id"))
		require.Equal(t, "P1", form.Get("access_token"))
	})

	t.Run("missing media id", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{})
		}))
		defer ts.Close()

		_, err := graph.NewClient(ts.URL).Publish(context.Background(), "ig1", "P1", "c1")
		require.ErrorIs(t, err, graph.ErrNoMediaID)
	})
}
