package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/mauv0809/elo-ladder/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sectionText(t *testing.T, block slackapi.Block) string {
	t.Helper()
	section, ok := block.(*slackapi.SectionBlock)
	require.True(t, ok, "expected a section block, got %T", block)
	require.NotNil(t, section.Text)
	return section.Text.Text
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendMatchResult(leaderboard.MatchResult{}, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatMatchResult(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	msg := notifier.formatMatchResult(leaderboard.MatchResult{
		Winner:      leaderboard.Player{Name: "alice", Wins: 1, Rating: 1516},
		Loser:       leaderboard.Player{Name: "bob", Losses: 1, Rating: 1484},
		WinnerDelta: 16,
		LoserDelta:  -16,
	})

	blocks := msg.Blocks.BlockSet
	require.Len(t, blocks, 3)
	assert.IsType(t, &slackapi.HeaderBlock{}, blocks[0])
	assert.Contains(t, sectionText(t, blocks[1]), "alice beat bob")

	fields := blocks[2].(*slackapi.SectionBlock).Fields
	require.Len(t, fields, 2)
	assert.Contains(t, fields[0].Text, "1516.00 (+16.00)")
	assert.Contains(t, fields[1].Text, "1484.00 (-16.00)")
}

func TestFormatStandings(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	t.Run("empty", func(t *testing.T) {
		msg := notifier.formatStandings("Main", nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
		assert.Contains(t, sectionText(t, msg.Blocks.BlockSet[1]), "No players yet")
	})

	t.Run("ranked with medals", func(t *testing.T) {
		standings := []leaderboard.Player{
			{Name: "alice", Wins: 3, Losses: 1, Rating: 1540.5},
			{Name: "bob", Wins: 1, Losses: 1, Rating: 1500},
			{Name: "carol", Losses: 2, Rating: 1470},
			{Name: "dave", Rating: 1460},
		}
		msg := notifier.formatStandings("Main", standings)
		blocks := msg.Blocks.BlockSet
		require.Len(t, blocks, 5)

		assert.Contains(t, sectionText(t, blocks[1]), "1. 🥇 alice")
		assert.Contains(t, sectionText(t, blocks[1]), "Rating: 1540.50 | Win %: 75.0% (3/4)")
		assert.Contains(t, sectionText(t, blocks[3]), "3. 🥉 carol")
		assert.Contains(t, sectionText(t, blocks[4]), "4.  dave")
	})
}

func TestFormatResponses(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	resp, err := notifier.FormatPlayerResponse(leaderboard.Player{Name: "alice", Wins: 1, Rating: 1516}, 1)
	require.NoError(t, err)
	msg, ok := resp.(slackapi.Message)
	require.True(t, ok)
	require.Len(t, msg.Blocks.BlockSet, 2)

	resp, err = notifier.FormatPlayerNotFoundResponse("ghost")
	require.NoError(t, err)
	msg, ok = resp.(slackapi.Message)
	require.True(t, ok)
	assert.Contains(t, sectionText(t, msg.Blocks.BlockSet[0]), "'ghost'")
}
