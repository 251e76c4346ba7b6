package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"farmstead/internal/providers/chat"
)

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
}

// ChatSend proxies one conversation turn to the chat provider. The provider
// key stays on the server; failures degrade to the static responder inside
// the provider rather than erroring here.
func (a *App) ChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.Messages) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "messages required")
		return
	}
	for _, m := range req.Messages {
		if strings.TrimSpace(m.Content) == "" {
			a.error(w, http.StatusBadRequest, "bad_request", "message content must not be empty")
			return
		}
	}

	reply, err := a.Chat.Respond(r.Context(), req.Messages)
	if err != nil {
		a.Logger.Error().Err(err).Msg("chat provider failed")
		a.error(w, http.StatusBadGateway, "bad_gateway", "chat provider unavailable")
		return
	}
	a.json(w, http.StatusOK, chatResponse{Reply: reply.Text, Provider: reply.Provider})
}
