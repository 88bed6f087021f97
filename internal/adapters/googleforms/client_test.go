package googleforms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quinceinvitation/internal/domain"
)

func testSubmission(name string) *domain.RSVPSubmission {
	return domain.NewRSVPSubmission(name, time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC))
}

// capturedRequest is what the fake form service saw.
type capturedRequest struct {
	method      string
	contentType string
	userAgent   string
	form        url.Values
}

func captureServer(t *testing.T, status int) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	seen := make(chan capturedRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		seen <- capturedRequest{
			method:      r.Method,
			contentType: r.Header.Get("Content-Type"),
			userAgent:   r.UserAgent(),
			form:        r.PostForm,
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<html>gracias</html>"))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestFormForwarder_Forward_Delivered(t *testing.T) {
	srv, seen := captureServer(t, http.StatusOK)

	fwd := NewFormForwarder(srv.Client(), Config{FormURL: srv.URL})
	result := fwd.Forward(context.Background(), testSubmission("Ana Pérez"))

	require.True(t, result.Delivered())
	require.Equal(t, domain.DeliveryDelivered, result.Status)
	require.Equal(t, http.StatusOK, result.StatusCode)
	require.NoError(t, result.Err)
	require.Empty(t, result.Body)

	got := <-seen
	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "application/x-www-form-urlencoded", got.contentType)
	require.Equal(t, DefaultUserAgent, got.userAgent)
	require.Equal(t, url.Values{DefaultFieldID: {"Ana Pérez"}}, got.form)
}

func TestFormForwarder_Forward_CustomField(t *testing.T) {
	srv, seen := captureServer(t, http.StatusNoContent)

	fwd := NewFormForwarder(srv.Client(), Config{FormURL: srv.URL, FieldID: "entry.42", UserAgent: "xv-test"})
	result := fwd.Forward(context.Background(), testSubmission("Luis & Sofía"))

	require.True(t, result.Delivered())
	got := <-seen
	require.Equal(t, "Luis & Sofía", got.form.Get("entry.42"))
	require.Equal(t, "xv-test", got.userAgent)
}

func TestFormForwarder_Forward_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", maxBodyBytes+100)))
	}))
	defer srv.Close()

	fwd := NewFormForwarder(srv.Client(), Config{FormURL: srv.URL})
	result := fwd.Forward(context.Background(), testSubmission("Ana Pérez"))

	require.False(t, result.Delivered())
	require.Equal(t, domain.DeliveryFailed, result.Status)
	require.Equal(t, http.StatusInternalServerError, result.StatusCode)
	require.ErrorIs(t, result.Err, domain.ErrDeliveryFailed)
	require.Len(t, result.Body, maxBodyBytes)
}

func TestFormForwarder_Forward_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	fwd := NewFormForwarder(&http.Client{Timeout: time.Second}, Config{FormURL: addr})
	result := fwd.Forward(context.Background(), testSubmission("Ana Pérez"))

	require.Equal(t, domain.DeliveryFailed, result.Status)
	require.Zero(t, result.StatusCode)
	require.Error(t, result.Err)
}

func TestFormForwarder_Forward_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	fwd := NewFormForwarder(&http.Client{Timeout: 50 * time.Millisecond}, Config{FormURL: srv.URL})
	result := fwd.Forward(context.Background(), testSubmission("Ana Pérez"))

	require.Equal(t, domain.DeliveryFailed, result.Status)
	require.Error(t, result.Err)
}

func TestFormForwarder_Forward_PostsAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	fwd := NewFormForwarder(srv.Client(), Config{FormURL: srv.URL})
	for i := 0; i < 10; i++ {
		result := fwd.Forward(context.Background(), testSubmission("Luis García"))
		require.ErrorIs(t, result.Err, domain.ErrDeliveryFailed)
		require.Equal(t, http.StatusBadGateway, result.StatusCode)
	}

	healthy.Store(true)
	result := fwd.Forward(context.Background(), testSubmission("Ana Pérez"))

	require.True(t, result.Delivered())
	require.Equal(t, int32(11), calls.Load())
}

func TestFormForwarder_Forward_ConcurrentSubmissionsAllPost(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1)%2 == 0 {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	fwd := NewFormForwarder(srv.Client(), Config{FormURL: srv.URL})
	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fwd.Forward(context.Background(), testSubmission("Invitado"))
		}()
	}
	wg.Wait()

	require.Equal(t, int32(n), calls.Load())
}

func TestNewFormForwarder_Defaults(t *testing.T) {
	fwd := NewFormForwarder(nil, Config{}).(*formForwarder)
	require.Equal(t, http.DefaultClient, fwd.client)
	require.Equal(t, DefaultFormURL, fwd.config.FormURL)
	require.Equal(t, DefaultFieldID, fwd.config.FieldID)
	require.Equal(t, DefaultUserAgent, fwd.config.UserAgent)
}
