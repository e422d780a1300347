package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/tournament"
)

// store persists the journal in the round_results table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new Journal backed by db.
func New(db *sql.DB) Journal {
	return &store{
		db: db,
	}
}

// RecordResults appends the results of one submission in a single transaction.
func (s *store) RecordResults(results []tournament.Result) error {
	if len(results) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO round_results (round, court, team_a_json, team_b_json, score_a, score_b, outcome, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, res := range results {
		teamA, err := json.Marshal(res.TeamA)
		if err != nil {
			return fmt.Errorf("failed to marshal team A: %w", err)
		}
		teamB, err := json.Marshal(res.TeamB)
		if err != nil {
			return fmt.Errorf("failed to marshal team B: %w", err)
		}
		if _, err := stmt.Exec(res.Round, res.Court, string(teamA), string(teamB), res.ScoreA, res.ScoreB, string(res.Outcome), now); err != nil {
			return fmt.Errorf("failed to insert result for round %d court %d: %w", res.Round, res.Court, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	log.Debug("Recorded round results", "round", results[0].Round, "count", len(results))
	return nil
}

// GetResults returns every recorded result in submission order.
func (s *store) GetResults() ([]tournament.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT round, court, team_a_json, team_b_json, score_a, score_b, outcome
		FROM round_results
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// GetRoundResults returns the results recorded for one round.
func (s *store) GetRoundResults(round int) ([]tournament.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT round, court, team_a_json, team_b_json, score_a, score_b, outcome
		FROM round_results
		WHERE round = ?
		ORDER BY id ASC
	`, round)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for round %d: %w", round, err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// Clear removes every recorded result.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM round_results"); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	log.Info("Round journal cleared")
	return nil
}

func scanResults(rows *sql.Rows) ([]tournament.Result, error) {
	results := []tournament.Result{}
	for rows.Next() {
		var (
			res          tournament.Result
			teamA, teamB string
			outcome      string
		)
		if err := rows.Scan(&res.Round, &res.Court, &teamA, &teamB, &res.ScoreA, &res.ScoreB, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		if err := json.Unmarshal([]byte(teamA), &res.TeamA); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team A: %w", err)
		}
		if err := json.Unmarshal([]byte(teamB), &res.TeamB); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team B: %w", err)
		}
		res.Outcome = tournament.Outcome(outcome)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate result rows: %w", err)
	}
	return results, nil
}
