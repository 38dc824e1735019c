package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps the size of a chat request body.
const maxBodyBytes = 1 << 20

// Handler is the HTTP front door: it serves the chat page and forwards messages to the gateway.
type Handler struct {
	gateway Gateway
	page    *Page
	logger  *slog.Logger
}

// NewHandler creates a new handler injecting the gateway and the rendered page.
func NewHandler(g Gateway, page *Page, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		gateway: g,
		page:    page,
		logger:  logger,
	}
}

// RegisterRoutes attaches the page and chat endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page.ServeHTTP)
	r.Post("/chat", h.handleChat)
}

// --- DTOs ---

// chatRequest is what the chat page sends. A missing message decodes to "".
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the success payload. Failures use writeError instead.
type chatResponse struct {
	Response string `json:"response"`
}

// --- Handlers ---

// handleChat forwards one message to the gateway and returns the reply.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reply, err := h.gateway.Reply(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("chat completion failed",
			"request_id", GetRequestID(r.Context()),
			"message_len", len(req.Message),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Could not process chat")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

// writeJSON is a helper function for sending json responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for sending a standardized json error.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
