// Package server exposes the two boundary endpoints: send-invite and submit.
// Every request body is validated against an embedded OpenAPI document;
// errors surface in exactly two tiers, a generic validation message (400) or
// a generic processing message (500), with internal detail logged server-side
// only.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	credlink "github.com/goliatone/go-credlink"
	"github.com/goliatone/go-credlink/pkg/model"
)

const maxBodyBytes = 1 << 20

// Option customises the server.
type Option func(*Server)

// WithLogger overrides the logger used for internal error detail.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// Server wires the boundary handlers onto a chi router.
type Server struct {
	service   *credlink.Service
	validator *requestValidator
	log       *logrus.Logger
	router    chi.Router
}

// New constructs a Server around a credlink Service.
func New(ctx context.Context, service *credlink.Service, options ...Option) (*Server, error) {
	if service == nil {
		return nil, errors.New("server: service is required")
	}
	validator, err := newRequestValidator(ctx)
	if err != nil {
		return nil, err
	}

	s := &Server{
		service:   service,
		validator: validator,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/send-link", s.handleSendLink)
	r.Post("/api/submit", s.handleSubmit)
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler for the boundary.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type sendLinkRequest struct {
	ClientName   string `json:"clientName"`
	BusinessName string `json:"businessName"`
	ClientEmail  string `json:"clientEmail"`
	Link         string `json:"link"`
}

func (s *Server) handleSendLink(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readAndValidate(w, r, "Invalid request data")
	if !ok {
		return
	}

	var req sendLinkRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if !validEmail(req.ClientEmail) || !validHTTPURL(req.Link) {
		s.writeError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := s.service.SendInvite(r.Context(), req.ClientEmail, req.ClientName, req.BusinessName, req.Link); err != nil {
		s.log.WithError(err).Error("send link failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	s.writeSuccess(w)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readAndValidate(w, r, "Invalid submission data")
	if !ok {
		return
	}

	var payload model.SubmissionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid submission data")
		return
	}
	if !validEmail(payload.ReturnEmail) {
		s.writeError(w, http.StatusBadRequest, "Invalid submission data")
		return
	}
	if cc := payload.ClientCopy; cc != nil && !validEmail(cc.Email) {
		s.writeError(w, http.StatusBadRequest, "Invalid submission data")
		return
	}

	if err := s.service.ProcessSubmission(r.Context(), payload); err != nil {
		s.log.WithError(err).Error("submit failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to process submission")
		return
	}
	s.writeSuccess(w)
}

// readAndValidate slurps the body and runs OpenAPI validation. On failure it
// writes the generic validation response and reports false. The detailed
// validation error is logged, never echoed to the caller.
func (s *Server) readAndValidate(w http.ResponseWriter, r *http.Request, clientMsg string) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, clientMsg)
		return nil, false
	}
	if err := s.validator.validate(r, body); err != nil {
		s.log.WithError(err).Info("request rejected")
		s.writeError(w, http.StatusBadRequest, clientMsg)
		return nil, false
	}
	return body, true
}

func (s *Server) writeSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"success": true}); err != nil {
		s.log.WithError(err).Error("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		s.log.WithError(err).Error("encode response")
	}
}
