package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/metrics"
	"github.com/mauv0809/mexicano/internal/notifier"
	"github.com/mauv0809/mexicano/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier. Without a token or channel, messages are
// formatted but not posted.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	var api slackClient
	if token != "" {
		api = slack.New(token)
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}
	if s.api == nil || s.channelID == "" {
		log.Warn("Slack client or channel ID is not configured. Skipping notification.")
		return "", "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendRoundAnnouncement(round int, matches []tournament.Match, settings tournament.Settings, dryRun bool) error {
	msg := s.formatRoundAnnouncement(round, matches, settings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendRoundResults(round int, results []tournament.Result, leaderboard []tournament.Player, dryRun bool) error {
	msg := s.formatRoundResults(round, results, leaderboard)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(leaderboard []tournament.Player, round int, dryRun bool) error {
	msg := s.formatLeaderboard(leaderboard, round)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(leaderboard []tournament.Player, round int) (any, error) {
	return s.formatLeaderboard(leaderboard, round), nil
}

// FormatRoundResponse formats the current round's pairings for a slash command response.
func (s *Notifier) FormatRoundResponse(round int, matches []tournament.Match) (any, error) {
	if len(matches) == 0 {
		blocks := []slack.Block{
			slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 Round %d 🎾", round), true, false)),
			slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No matches yet. Generate the round to see the pairings.", true, false), nil, nil),
		}
		return slack.NewBlockMessage(blocks...), nil
	}
	return s.formatRoundAnnouncement(round, matches, tournament.Settings{}), nil
}

func teamName(team tournament.Team) string {
	return strings.Join(team[:], " & ")
}

// formatRoundAnnouncement creates the Slack message with the pairings of a round using Block Kit.
func (s *Notifier) formatRoundAnnouncement(round int, matches []tournament.Match, settings tournament.Settings) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 Round %d 🎾", round), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if settings.TargetPoints > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("Playing to %d points", settings.TargetPoints), true, false), nil, nil))
	}

	for _, m := range matches {
		text := fmt.Sprintf("Court %d\n%s  vs  %s", m.Court, teamName(m.TeamA), teamName(m.TeamB))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Submit both scores when your match is done.", true, false)))
	return slack.NewBlockMessage(blocks...)
}

// formatRoundResults creates the Slack message for a submitted round followed by the standings.
func (s *Notifier) formatRoundResults(round int, results []tournament.Result, leaderboard []tournament.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 Round %d finished! 🎾", round), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(results) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No valid scores were submitted this round.", true, false), nil, nil))
	}

	for _, res := range results {
		var summary string
		switch res.Outcome {
		case tournament.OutcomeTeamA:
			summary = fmt.Sprintf("%s won! 🏆", teamName(res.TeamA))
		case tournament.OutcomeTeamB:
			summary = fmt.Sprintf("%s won! 🏆", teamName(res.TeamB))
		default:
			summary = "It's a draw!"
		}
		text := fmt.Sprintf("Court %d: %s %d - %d %s\n%s", res.Court, teamName(res.TeamA), res.ScoreA, res.ScoreB, teamName(res.TeamB), summary)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}

	blocks = append(blocks, slack.NewDividerBlock())
	blocks = append(blocks, s.leaderboardBlocks(leaderboard)...)
	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the standings.
func (s *Notifier) formatLeaderboard(leaderboard []tournament.Player, round int) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Mexicano Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("Current round: %d", round), true, false)))

	blocks = append(blocks, s.leaderboardBlocks(leaderboard)...)
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) leaderboardBlocks(leaderboard []tournament.Player) []slack.Block {
	if len(leaderboard) == 0 {
		return []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil),
		}
	}

	blocks := make([]slack.Block, 0, len(leaderboard))
	for i, p := range leaderboard {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Points: %d | W-D-L: %d-%d-%d | Played: %d",
			rank,
			medal,
			p.Name,
			p.Points,
			p.Wins,
			p.Draws,
			p.Losses,
			p.Played,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}
	return blocks
}
