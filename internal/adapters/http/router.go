package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/nutrition-assistant/internal/citation"
	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
	"github.com/kirillkom/nutrition-assistant/internal/core/ports"
	"github.com/kirillkom/nutrition-assistant/internal/observability/metrics"
)

type Router struct {
	chat    ports.ChatService
	metrics *metrics.HTTPServerMetrics
}

func NewRouter(chat ports.ChatService, m *metrics.HTTPServerMetrics) *Router {
	return &Router{
		chat:    chat,
		metrics: m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/chat", rt.handleChat)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	handler := corsMiddleware(mux)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Answer     string          `json:"answer"`
	AnswerHTML string          `json:"answer_html,omitempty"`
	Sources    []domain.Source `json:"sources"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (rt *Router) handleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		// Preflight no-op; the CORS middleware already set the headers.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	case http.MethodPost:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}

	start := time.Now()
	answer, err := rt.chat.Answer(r.Context(), req.Message)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("chat_request_failed",
				"request_id", requestIDFromContext(r.Context()),
				"error", err,
			)
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordChatObservation(len(answer.Sources), time.Since(start))
	}

	resp := chatResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
	}
	if resp.Sources == nil {
		resp.Sources = []domain.Source{}
	}

	// The HTML rendering is additive; a render failure degrades to the plain
	// answer instead of failing the response.
	if htmlText, err := citation.RenderHTML(answer.Text, answer.Sources); err == nil {
		resp.AnswerHTML = htmlText
	} else {
		slog.Warn("render_answer_html_failed",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
