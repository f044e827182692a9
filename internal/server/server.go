package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"edufair/internal/domain"
	"edufair/internal/ussd"
)

// SystemErrorText is sent to the gateway when a hop cannot be processed.
const SystemErrorText = "END System error. Please try again later."

// Handler is the subset of ussd.Service the webhooks need.
type Handler interface {
	Handle(ctx context.Context, req ussd.Request) ussd.Response
}

// Server routes webhook and reporting requests.
type Server struct {
	ussd  Handler
	store domain.RegistrationStore
	log   *zap.Logger
	mux   *http.ServeMux
}

// New builds the routes. log may be nil.
func New(h Handler, st domain.RegistrationStore, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{ussd: h, store: st, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /ussd/africastalking", s.handleAfricasTalking)
	s.mux.HandleFunc("POST /ussd/generic", s.handleGeneric)
	s.mux.HandleFunc("GET /registrations/stats", s.handleStats)
	s.mux.HandleFunc("GET /registrations/export", s.handleExport)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return s
}

// ServeHTTP wraps the routes in the access log.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	accessLog(s.log, s.mux).ServeHTTP(w, r)
}

func (s *Server) hop(r *http.Request, sessionID, phone, text string) (resp ussd.Response, err error) {
	if sessionID == "" || phone == "" {
		return resp, errors.New("missing session id or phone number")
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("ussd handler panic: %v", p)
		}
	}()
	return s.ussd.Handle(r.Context(), ussd.Request{SessionID: sessionID, Phone: phone, Text: text}), nil
}

func (s *Server) handleAfricasTalking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := r.ParseForm(); err != nil {
		s.webhookError(r, err)
		_, _ = w.Write([]byte(SystemErrorText))
		return
	}
	resp, err := s.hop(r, r.PostForm.Get("sessionId"), r.PostForm.Get("phoneNumber"), r.PostForm.Get("text"))
	if err != nil {
		s.webhookError(r, err)
		_, _ = w.Write([]byte(SystemErrorText))
		return
	}
	_, _ = w.Write([]byte(resp.String()))
}

type genericRequest struct {
	SessionID   string `json:"session_id"`
	PhoneNumber string `json:"phone_number"`
	Text        string `json:"text"`
}

type genericResponse struct {
	Response        string `json:"response"`
	ContinueSession bool   `json:"continue_session"`
}

func (s *Server) handleGeneric(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req genericRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.webhookError(r, err)
		writeJSON(w, http.StatusOK, genericResponse{Response: SystemErrorText})
		return
	}
	resp, err := s.hop(r, req.SessionID, req.PhoneNumber, req.Text)
	if err != nil {
		s.webhookError(r, err)
		writeJSON(w, http.StatusOK, genericResponse{Response: SystemErrorText})
		return
	}
	writeJSON(w, http.StatusOK, genericResponse{Response: resp.String(), ContinueSession: !resp.End})
}

func (s *Server) webhookError(r *http.Request, err error) {
	s.log.Error("ussd webhook error",
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestID(r.Context())),
		zap.Error(err),
	)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	regs, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list registrations", zap.Error(err))
		http.Error(w, "failed to list registrations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ussd.ComputeStats(regs))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = ussd.FormatJSON
	}
	if format != ussd.FormatJSON && format != ussd.FormatCSV {
		http.Error(w, ussd.ErrUnsupportedFormat.Error()+": "+format, http.StatusBadRequest)
		return
	}
	regs, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list registrations", zap.Error(err))
		http.Error(w, "failed to list registrations", http.StatusInternalServerError)
		return
	}

	if format == ussd.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="registrations.%s"`, format))
	if err := ussd.Export(w, regs, format); err != nil {
		s.log.Error("export registrations", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
