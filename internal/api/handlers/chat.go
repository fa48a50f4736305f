package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lifo-app/lifo-server/internal/domain"
	"github.com/lifo-app/lifo-server/internal/service"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	CurrentMessage        string                    `json:"currentMessage"`
	PreviousConversations []domain.ConversationTurn `json:"previousConversations"`
	PromptType            string                    `json:"promptType"`
	UserID                string                    `json:"userId"`
}

type chatResponse struct {
	AIResponse string `json:"aiResponse"`
}

func (h *ChatHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.svc.Respond(r.Context(), service.ChatInput{
		UserID:         req.UserID,
		CurrentMessage: req.CurrentMessage,
		History:        req.PreviousConversations,
		Mode:           domain.Mode(req.PromptType),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserIDMissing),
			errors.Is(err, service.ErrCurrentMessageEmpty),
			errors.Is(err, service.ErrHistoryEmpty),
			errors.Is(err, service.ErrInvalidPromptType):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to generate response")
		}
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{AIResponse: answer})
}

type conversationsResponse struct {
	Conversations []domain.ConversationRecord `json:"conversations"`
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	records, err := h.svc.ListConversations(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserIDMissing) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}
	if records == nil {
		records = []domain.ConversationRecord{}
	}

	writeJSON(w, http.StatusOK, conversationsResponse{Conversations: records})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
