package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yegors/flightqa/internal/bot"
	"github.com/yegors/flightqa/internal/config"
	"github.com/yegors/flightqa/pkg/logger"
)

// Handler contains the HTTP handlers
type Handler struct {
	bot    *bot.Service
	config *config.Config
	logger *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(botService *bot.Service, config *config.Config, logger *logger.Logger) *Handler {
	return &Handler{
		bot:    botService,
		config: config,
		logger: logger.Named("api-handler"),
	}
}

// AskRequest is the body of an ask call
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the reply to an ask call
type AskResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse carries an error message
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the reply to a health check
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// Ask answers a natural-language flight question. The display timezone
// may be overridden with the tz query parameter.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "question is required"})
		return
	}

	tz := r.URL.Query().Get("tz")
	if tz == "" {
		tz = h.config.Answers.DefaultTimezone
	}

	answer, err := h.bot.Answer(r.Context(), req.Question, tz)
	if err != nil {
		h.logger.Error("Failed to answer question",
			logger.String("question", req.Question),
			logger.Error(err),
		)
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.respondJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// GetHealth handles health check requests
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
	})
}

// Home serves the built-in chat page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(homePage)); err != nil {
		h.logger.Debug("Failed to write home page", logger.Error(err))
	}
}

// respondJSON writes a JSON response
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}
