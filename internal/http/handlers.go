package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/playtomic"
	"github.com/mauv0809/mexicano/internal/tournament"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps tournament errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tournament.ErrInvalidName),
		errors.Is(err, tournament.ErrInvalidSettings),
		errors.Is(err, tournament.ErrUnknownPlayer),
		errors.Is(err, tournament.ErrInvalidMatch):
		status = http.StatusBadRequest
	case errors.Is(err, tournament.ErrDuplicateName),
		errors.Is(err, tournament.ErrNoRoundInProgress):
		status = http.StatusConflict
	case errors.Is(err, tournament.ErrMatchNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Tournament.Players())
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if err := decodeBody(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		player, err := s.Tournament.AddPlayer(req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

// ImportPlayersHandler registers the players of a Playtomic booking (?match_id=)
// or of every booking at a club on a day (?tenant_id=&date=YYYY-MM-DD).
func (s *Server) ImportPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		query := r.URL.Query()

		var players []playtomic.Player
		switch {
		case query.Get("match_id") != "":
			matchID := query.Get("match_id")
			match, err := s.PlaytomicClient.GetSpecificMatch(matchID)
			if err != nil {
				log.Error("Error fetching specific match", "matchID", matchID, "error", err)
				http.Error(w, "Failed to fetch match", http.StatusBadGateway)
				return
			}
			players = match.Players()
		case query.Get("tenant_id") != "":
			day := time.Now()
			if d := query.Get("date"); d != "" {
				parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
				if err != nil {
					http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
					return
				}
				day = parsed
			}
			var err error
			players, err = playtomic.CollectPlayers(s.PlaytomicClient, query.Get("tenant_id"), day)
			if err != nil {
				log.Error("Error fetching Playtomic bookings", "error", err)
				http.Error(w, "Failed to fetch matches", http.StatusBadGateway)
				return
			}
		default:
			http.Error(w, "match_id or tenant_id is required", http.StatusBadRequest)
			return
		}

		resp := importResponse{Added: []string{}, Duplicates: []string{}, Invalid: []string{}, DryRun: isDryRun}
		known := make(map[string]struct{})
		for _, p := range s.Tournament.Players() {
			known[p.Name] = struct{}{}
		}
		for _, p := range players {
			if isDryRun {
				if _, ok := known[p.Name]; ok {
					resp.Duplicates = append(resp.Duplicates, p.Name)
				} else {
					resp.Added = append(resp.Added, p.Name)
					known[p.Name] = struct{}{}
				}
				continue
			}
			added, err := s.Tournament.AddPlayer(p.Name)
			switch {
			case err == nil:
				resp.Added = append(resp.Added, added.Name)
			case errors.Is(err, tournament.ErrDuplicateName):
				resp.Duplicates = append(resp.Duplicates, p.Name)
			case errors.Is(err, tournament.ErrInvalidName):
				resp.Invalid = append(resp.Invalid, p.Name)
			default:
				writeError(w, err)
				return
			}
		}
		log.Info("Imported players from Playtomic", "added", len(resp.Added), "duplicates", len(resp.Duplicates), "dry_run", isDryRun)
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to reset the tournament")
		s.Tournament.ResetAll()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Tournament reset!")
	}
}

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Tournament.Settings())
	}
}

func (s *Server) UpdateSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings tournament.Settings
		if err := decodeBody(r, &settings); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.Tournament.UpdateSettings(settings); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

func (s *Server) CurrentRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.Tournament.Snapshot()
		writeJSON(w, http.StatusOK, roundResponse{Round: snap.Round, Matches: snap.Matches, Settings: snap.Settings})
	}
}

// GenerateRoundHandler pairs the next round. ?courts= overrides the configured court count.
func (s *Server) GenerateRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings := s.Tournament.Settings()
		courts := settings.Courts
		if c := r.URL.Query().Get("courts"); c != "" {
			parsed, err := strconv.Atoi(c)
			if err != nil || parsed < 1 || parsed > tournament.MaxCourts {
				http.Error(w, fmt.Sprintf("courts must be between 1 and %d", tournament.MaxCourts), http.StatusBadRequest)
				return
			}
			courts = parsed
		}
		matches := s.Tournament.GenerateMatches(courts)
		writeJSON(w, http.StatusOK, roundResponse{Round: s.Tournament.Round(), Matches: matches, Settings: settings})
	}
}

func (s *Server) RecordScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordScoreRequest
		if err := decodeBody(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.Tournament.RecordScore(r.PathValue("id"), req.ScoreA, req.ScoreB); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) SubmitRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		// An empty body submits the recorded scores.
		if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var (
			sub tournament.Submission
			err error
		)
		if req.Matches != nil {
			sub, err = s.Tournament.SubmitScores(req.Matches)
		} else {
			sub, err = s.Tournament.SubmitRound(req.Scores)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Tournament.Leaderboard())
	}
}

func (s *Server) AnnounceLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r) || s.Cfg.DryRun
		snap := s.Tournament.Snapshot()
		if err := s.Notifier.SendLeaderboard(snap.Leaderboard, snap.Round, isDryRun); err != nil {
			log.Error("Failed to announce leaderboard", "error", err)
			http.Error(w, "Failed to announce leaderboard", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Leaderboard announced!")
	}
}

// HistoryHandler lists the journaled results, optionally for one ?round=.
func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			results []tournament.Result
			err     error
		)
		if rs := r.URL.Query().Get("round"); rs != "" {
			round, convErr := strconv.Atoi(rs)
			if convErr != nil || round < 1 {
				http.Error(w, "round must be a positive integer", http.StatusBadRequest)
				return
			}
			results, err = s.Journal.GetRoundResults(round)
		} else {
			results, err = s.Journal.GetResults()
		}
		if err != nil {
			log.Error("Failed to get results from journal", "error", err)
			http.Error(w, "Failed to get history", http.StatusInternalServerError)
			return
		}
		if results == nil {
			results = []tournament.Result{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func (s *Server) VerifyHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := s.Journal.GetResults()
		if err != nil {
			log.Error("Failed to get results from journal", "error", err)
			http.Error(w, "Failed to get history", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, s.Tournament.Audit(results))
	}
}
