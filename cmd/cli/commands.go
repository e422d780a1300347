package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	courts       int
	targetPoints int
	dryRun       bool
	matchID      string
	tenantID     string
	importDate   string
	historyRound int
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(metricsCmd)

	importCmd.Flags().StringVar(&matchID, "match-id", "", "Import the players of one Playtomic booking")
	importCmd.Flags().StringVar(&tenantID, "tenant-id", "", "Import the players of every booking at this club")
	importCmd.Flags().StringVar(&importDate, "date", "", "Day of the bookings (YYYY-MM-DD), defaults to today")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be imported without registering anyone")
	importCmd.MarkFlagsOneRequired("match-id", "tenant-id")
	importCmd.MarkFlagsMutuallyExclusive("match-id", "tenant-id")

	settingsCmd.Flags().IntVar(&courts, "courts", 0, "Number of courts (1 or 2)")
	settingsCmd.Flags().IntVar(&targetPoints, "target", 0, "Points each match is played to (21 or 24)")

	generateCmd.Flags().IntVar(&courts, "courts", 0, "Override the configured number of courts")

	announceCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the message instead of posting it")

	historyCmd.Flags().IntVar(&historyRound, "round", 0, "Only show this round")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/health")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player NAME...",
	Short: "Register one or more players",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			if err := performRequest(cmd.OutOrStdout(), http.MethodPost, "/players", nil, map[string]string{"name": name}); err != nil {
				return err
			}
		}
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players in registration order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/players")
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Register the players booked on Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if matchID != "" {
			query.Set("match_id", matchID)
		}
		if tenantID != "" {
			query.Set("tenant_id", tenantID)
		}
		if importDate != "" {
			query.Set("date", importDate)
		}
		if dryRun {
			query.Set("dry_run", "true")
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/players/import", query, nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all players, matches and the round counter",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/reset", nil, nil)
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the settings, or change them with --courts and --target",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("courts") && !cmd.Flags().Changed("target") {
			return performGetRequest(cmd.OutOrStdout(), "/settings")
		}
		current, err := fetchSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("courts") {
			current.Courts = courts
		}
		if cmd.Flags().Changed("target") {
			current.TargetPoints = targetPoints
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPut, "/settings", nil, current)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Pair the next round from the current ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if cmd.Flags().Changed("courts") {
			query.Set("courts", strconv.Itoa(courts))
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/round/generate", query, nil)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score MATCH_ID SCORE_A SCORE_B",
	Short: "Record the score of a match in the current round",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"score_a": args[1], "score_b": args[2]}
		return performRequest(cmd.OutOrStdout(), http.MethodPut, "/round/matches/"+url.PathEscape(args[0])+"/score", nil, body)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit [MATCH_ID=A:B]...",
	Short: "Submit the current round, with the recorded scores and any given here",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := make([]scoreEntry, 0, len(args))
		for _, arg := range args {
			e, err := parseScoreEntry(arg)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/round/submit", nil, map[string]any{"scores": entries})
	},
}

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Show the current round and its matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/round")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the players sorted by points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/leaderboard")
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post the leaderboard to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if dryRun {
			query.Set("dry_run", "true")
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/leaderboard/announce", query, nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the results applied so far",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		if historyRound > 0 {
			query.Set("round", strconv.Itoa(historyRound))
		}
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/history", query, nil)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Replay the history and compare it with the live stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/history/verify")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/metrics")
	},
}

type scoreEntry struct {
	MatchID string `json:"match_id"`
	ScoreA  string `json:"score_a"`
	ScoreB  string `json:"score_b"`
}

// parseScoreEntry parses MATCH_ID=A:B. Scores are passed through as typed;
// the server decides whether they are valid.
func parseScoreEntry(arg string) (scoreEntry, error) {
	id, scores, ok := strings.Cut(arg, "=")
	if !ok || id == "" {
		return scoreEntry{}, fmt.Errorf("invalid score %q, expected MATCH_ID=A:B", arg)
	}
	a, b, ok := strings.Cut(scores, ":")
	if !ok {
		return scoreEntry{}, fmt.Errorf("invalid score %q, expected MATCH_ID=A:B", arg)
	}
	return scoreEntry{MatchID: id, ScoreA: a, ScoreB: b}, nil
}

type settings struct {
	Courts       int `json:"courts"`
	TargetPoints int `json:"target_points"`
}

func fetchSettings() (settings, error) {
	resp, err := http.Get(host + "/settings")
	if err != nil {
		return settings{}, fmt.Errorf("failed to fetch settings: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return settings{}, fmt.Errorf("failed to fetch settings: %s", resp.Status)
	}
	var s settings
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}
