package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/pubsub"
	"github.com/mauv0809/mexicano/internal/tournament"
)

// PubSubPushHandler receives tournament snapshots from a Pub/Sub push
// subscription and hands them to the announcer.
func (s *Server) PubSubPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.pubsub == nil {
			http.Error(w, "Pub/Sub is not configured", http.StatusServiceUnavailable)
			return
		}
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received push message", "body", string(bodyBytes))

		// Data is base64 in the JSON body and decoded by encoding/json into raw MessagePack bytes.
		var push pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		var snapshot tournament.Snapshot
		if err := s.pubsub.ProcessMessage(push.Message.Data, &snapshot); err != nil {
			http.Error(w, "Invalid message data", http.StatusBadRequest)
			return
		}
		log.Info("Processing pushed snapshot", "event", snapshot.Event, "round", snapshot.Round, "messageId", push.Message.MessageID)
		s.announcer.OnSnapshot(snapshot)
		w.Write([]byte("OK"))
	}
}
