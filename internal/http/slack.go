package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/tournament"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func respondWithSlackText(w http.ResponseWriter, text string) {
	respondWithSlackMsg(w, slack.Message{Msg: slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: text}})
}

func writeSlackResponse(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.Tournament.Snapshot()
		msg, err := s.Notifier.FormatLeaderboardResponse(snap.Leaderboard, snap.Round)
		writeSlackResponse(w, msg, err)
	}
}

// RoundCommandHandler returns a handler for the /round Slack command.
func (s *Server) RoundCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.Tournament.Snapshot()
		msg, err := s.Notifier.FormatRoundResponse(snap.Round, snap.Matches)
		writeSlackResponse(w, msg, err)
	}
}

// JoinCommandHandler returns a handler for the /join Slack command. The player
// is registered under the command text, or the caller's user name without text.
func (s *Server) JoinCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(cmd.Text)
		if name == "" {
			name = cmd.UserName
		}
		log.Info("Received join command", "player", name, "user", cmd.UserID)

		player, err := s.Tournament.AddPlayer(name)
		switch {
		case err == nil:
			respondWithSlackText(w, fmt.Sprintf("%s joined the tournament.", player.Name))
		case errors.Is(err, tournament.ErrDuplicateName):
			respondWithSlackText(w, fmt.Sprintf("%s is already registered.", strings.TrimSpace(name)))
		case errors.Is(err, tournament.ErrInvalidName):
			http.Error(w, "Player name is required.", http.StatusBadRequest)
		default:
			writeError(w, err)
		}
	}
}
