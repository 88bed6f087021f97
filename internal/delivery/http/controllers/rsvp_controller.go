package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"quinceinvitation/internal/delivery/http/helpers"
	"quinceinvitation/internal/domain"
)

// Response messages shown on the invitation page.
const (
	MsgFullNameRequired = "Nombre completo es requerido"
	MsgRSVPConfirmed    = "RSVP confirmado exitosamente"
	MsgProcessingFailed = "Error al procesar la confirmación"
)

// Submission outcomes passed to a SubmissionRecorder.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// SubmissionRecorder counts intake outcomes (accepted, rejected, error).
type SubmissionRecorder interface {
	CountSubmission(outcome string)
}

type RSVPController struct {
	Logger   *slog.Logger
	Service  domain.RSVPService
	Recorder SubmissionRecorder
}

// NewRSVPController returns a controller for the RSVP intake endpoint. recorder may be nil.
func NewRSVPController(logger *slog.Logger, svc domain.RSVPService, recorder SubmissionRecorder) *RSVPController {
	return &RSVPController{
		Logger:   logger,
		Service:  svc,
		Recorder: recorder,
	}
}

// SubmitRSVPRequest is the request body for POST /api/submit-rsvp.
// FullName is normally a string; numbers and true are accepted and sent as text.
type SubmitRSVPRequest struct {
	FullName json.RawMessage `json:"fullName" swaggertype:"string"`

	name string
}

// Validate implements helpers.Validator. Missing, null, false, 0 and "" are rejected,
// as are objects and arrays.
func (r *SubmitRSVPRequest) Validate() []string {
	name, ok := fullNameText(r.FullName)
	if !ok {
		return []string{MsgFullNameRequired}
	}
	r.name = name
	return nil
}

// fullNameText converts a JSON fullName to the text forwarded downstream.
// ok is false for values that do not name anyone.
func fullNameText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, s != ""
	case 't':
		return "true", true
	case 'f', 'n', '{', '[':
		return "", false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f == 0 {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// RSVPData is the confirmed submission echoed back to the guest.
type RSVPData struct {
	FullName  string `json:"fullName"`
	Timestamp string `json:"timestamp"`
}

// SubmitRSVPResponse is the success body for POST /api/submit-rsvp (200).
type SubmitRSVPResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    RSVPData `json:"data"`
}

// SubmitRSVP godoc
// @Summary Confirm attendance
// @Description Accepts a guest's full name and forwards it to the guest-list form. The confirmation does not depend on whether the form service accepted it.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param body body controllers.SubmitRSVPRequest true "Guest full name"
// @Success 200 {object} controllers.SubmitRSVPResponse
// @Failure 400 {object} helpers.ErrorResponse "fullName missing or empty"
// @Failure 500 {object} helpers.ErrorResponse "unparseable body or unexpected error"
// @Router /api/submit-rsvp [post]
func (c *RSVPController) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req SubmitRSVPRequest
	if err := helpers.DecodeAndValidate(w, r, &req, MsgProcessingFailed); err != nil {
		if errors.Is(err, helpers.ErrValidation) {
			c.count(outcomeRejected)
			return
		}
		c.count(outcomeError)
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		return
	}

	sub, err := c.Service.Submit(r.Context(), req.name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.count(outcomeRejected)
			helpers.WriteJSONError(w, http.StatusBadRequest, MsgFullNameRequired)
			return
		}
		c.count(outcomeError)
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, MsgProcessingFailed)
		return
	}

	c.count(outcomeAccepted)
	helpers.WriteJSON(w, http.StatusOK, SubmitRSVPResponse{
		Success: true,
		Message: MsgRSVPConfirmed,
		Data: RSVPData{
			FullName:  sub.FullName,
			Timestamp: sub.Timestamp.Format(domain.TimestampLayout),
		},
	})
}

func (c *RSVPController) count(outcome string) {
	if c.Recorder != nil {
		c.Recorder.CountSubmission(outcome)
	}
}
