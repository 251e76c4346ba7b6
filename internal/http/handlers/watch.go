package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"farmstead/internal/livefeed"
)

// stream implements the live-subscription contract shared by the three
// watch endpoints: deliver the full current result set on connect, then
// redeliver it wholesale after every change to the owner's collection.
// The stream ends when the client disconnects; there is no replay, a
// reconnect simply gets a fresh snapshot.
func (a *App) stream(w http.ResponseWriter, r *http.Request, collection livefeed.Collection, snapshot func(ownerID string) (any, error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}
	ownerID := a.currentUserID(r)

	changes, cancel := a.Feed.Subscribe(ownerID, collection)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func() bool {
		data, err := snapshot(ownerID)
		if err != nil {
			a.Logger.Error().Err(err).Str("collection", string(collection)).Msg("snapshot failed, ending stream")
			return false
		}
		payload, err := json.Marshal(data)
		if err != nil {
			a.Logger.Error().Err(err).Msg("snapshot encode failed")
			return false
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			if !send() {
				return
			}
		}
	}
}
