package domain

import (
	"context"
	"errors"
	"time"
)

// TimestampLayout is the ISO-8601 layout, with milliseconds, used for submission timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrInvalidInput is returned when a submission fails validation (e.g. an empty full name).
var ErrInvalidInput = errors.New("invalid input")

// RSVPSubmission is a guest's confirmation of attendance. It only lives for the
// duration of a request; the form-collection service is the system of record.
// swagger:model RSVPSubmission
type RSVPSubmission struct {
	FullName  string    `json:"fullName"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRSVPSubmission returns a submission for fullName received at receivedAt.
func NewRSVPSubmission(fullName string, receivedAt time.Time) *RSVPSubmission {
	return &RSVPSubmission{FullName: fullName, Timestamp: receivedAt.UTC()}
}

// Validate reports ErrInvalidInput when the full name is empty. Any other name,
// including one made of spaces, is accepted as given.
func (s *RSVPSubmission) Validate() error {
	if s.FullName == "" {
		return ErrInvalidInput
	}
	return nil
}

// RSVPService accepts submissions. Submit returns ErrInvalidInput for a bad submission;
// any other error is unexpected. Downstream delivery problems are never returned.
type RSVPService interface {
	Submit(ctx context.Context, fullName string) (*RSVPSubmission, error)
}
