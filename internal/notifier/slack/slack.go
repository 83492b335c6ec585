package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/mauv0809/elo-ladder/internal/metrics"
	"github.com/mauv0809/elo-ladder/internal/notifier"
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

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
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

func (s *Notifier) SendMatchResult(result leaderboard.MatchResult, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchResult(result), dryRun)
	return err
}

func (s *Notifier) SendStandings(label string, standings []leaderboard.Player, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatStandings(label, standings), dryRun)
	return err
}

// FormatStandingsResponse formats the standings for a slash command response.
func (s *Notifier) FormatStandingsResponse(label string, standings []leaderboard.Player) (any, error) {
	return s.formatStandings(label, standings), nil
}

// FormatPlayerResponse formats a single player's record for a slash command response.
func (s *Notifier) FormatPlayerResponse(player leaderboard.Player, rank int) (any, error) {
	return s.formatPlayer(player, rank), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("plain_text", text, true, false)
}

// formatMatchResult creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatMatchResult(result leaderboard.MatchResult) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(plainText("🏓 Match recorded! 🏓")))

	summary := fmt.Sprintf("%s beat %s 🏆", result.Winner.Name, result.Loser.Name)
	blocks = append(blocks, slack.NewSectionBlock(plainText(summary), nil, nil))

	fields := []*slack.TextBlockObject{
		plainText(fmt.Sprintf("%s\n%.2f (%+.2f)\n%d-%d", result.Winner.Name, result.Winner.Rating, result.WinnerDelta, result.Winner.Wins, result.Winner.Losses)),
		plainText(fmt.Sprintf("%s\n%.2f (%+.2f)\n%d-%d", result.Loser.Name, result.Loser.Rating, result.LoserDelta, result.Loser.Wins, result.Loser.Losses)),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the standings.
func (s *Notifier) formatStandings(label string, standings []leaderboard.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(plainText(fmt.Sprintf("🏆 %s Leaderboard 🏆", label))))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(plainText("No players yet. Register someone and go play!"), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, p := range standings {
		rank := i + 1
		playerText := fmt.Sprintf("%d. %s %s\n> Rating: %.2f | Win %%: %.1f%% (%d/%d)",
			rank,
			medal(rank),
			p.Name,
			p.Rating,
			p.WinRate()*100,
			p.Wins,
			p.TotalGames(),
		)
		blocks = append(blocks, slack.NewSectionBlock(plainText(playerText), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayer creates a Slack message with one player's record.
func (s *Notifier) formatPlayer(p leaderboard.Player, rank int) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(plainText(fmt.Sprintf("📊 %s", p.Name))))

	fields := []*slack.TextBlockObject{
		plainText(fmt.Sprintf("Rank\n%d %s", rank, medal(rank))),
		plainText(fmt.Sprintf("Rating\n%.2f", p.Rating)),
		plainText(fmt.Sprintf("Record\n%d W / %d L", p.Wins, p.Losses)),
		plainText(fmt.Sprintf("Win %%\n%.1f%%", p.WinRate()*100)),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("🤷 No player named '%s' on the ladder.", query)
	return slack.NewBlockMessage(slack.NewSectionBlock(plainText(text), nil, nil))
}
