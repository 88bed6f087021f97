package googleforms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quinceinvitation/internal/domain"
)

// Defaults for the invitation's Google Form.
const (
	DefaultFormURL   = "https://docs.google.com/forms/d/e/1FAIpQLSe5mP1wG85sYKnYfC18WBGtV-JkHxk6uN60ZB7L-GyFHDJPdA/formResponse"
	DefaultFieldID   = "entry.403482560"
	DefaultUserAgent = "Mozilla/5.0 (compatible; RSVP-Bot/1.0)"
)

// maxBodyBytes bounds how much of the downstream response is kept for logs.
const maxBodyBytes = 4 << 10

// Config holds the form endpoint and field mapping.
type Config struct {
	FormURL   string
	FieldID   string
	UserAgent string
}

type formForwarder struct {
	client *http.Client
	config Config
}

// NewFormForwarder returns a FormForwarder that posts submissions to a Google Form.
// Every call posts; requests never share state. Empty config fields fall back to the
// defaults and a nil client uses http.DefaultClient.
func NewFormForwarder(client *http.Client, config Config) domain.FormForwarder {
	if client == nil {
		client = http.DefaultClient
	}
	if config.FormURL == "" {
		config.FormURL = DefaultFormURL
	}
	if config.FieldID == "" {
		config.FieldID = DefaultFieldID
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	return &formForwarder{client: client, config: config}
}

func (f *formForwarder) Forward(ctx context.Context, sub *domain.RSVPSubmission) domain.DeliveryResult {
	start := time.Now()
	code, body, err := f.post(ctx, sub.FullName)
	result := domain.DeliveryResult{
		StatusCode: code,
		Body:       body,
		Duration:   time.Since(start),
	}
	if err != nil {
		result.Status = domain.DeliveryFailed
		result.Err = err
		return result
	}
	result.Status = domain.DeliveryDelivered
	return result
}

func (f *formForwarder) post(ctx context.Context, fullName string) (int, string, error) {
	form := url.Values{}
	form.Set(f.config.FieldID, fullName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.FormURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("failed to post to form service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return resp.StatusCode, string(raw), fmt.Errorf("%w: status %d", domain.ErrDeliveryFailed, resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return resp.StatusCode, "", nil
}
