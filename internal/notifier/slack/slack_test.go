package slack_test

import (
	"context"
	"testing"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/metrics"
	slacknotifier "github.com/TheLitis/Inter-Knot-Arena-sub000/internal/notifier/slack"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSlackClient records PostMessageContext calls instead of hitting the API.
type fakeSlackClient struct {
	calls int
	err   error
}

func (f *fakeSlackClient) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "123.456", nil
}

func testMatch() *match.Match {
	return &match.Match{
		ID:    "m1",
		State: match.StateResolved,
		Players: []match.Player{
			{UserID: "u-a", Side: draft.SideA},
			{UserID: "u-b", Side: draft.SideB},
		},
	}
}

func TestSendMatchFoundNotification(t *testing.T) {
	api := &fakeSlackClient{}
	metr := metrics.NewMock()
	n := slacknotifier.NewNotifierWithAPI(api, "C123", metr)

	require.NoError(t, n.SendMatchFoundNotification(testMatch(), false))
	assert.Equal(t, 1, api.calls)
}

func TestDryRunSkipsAPI(t *testing.T) {
	api := &fakeSlackClient{}
	metr := metrics.NewMock()
	n := slacknotifier.NewNotifierWithAPI(api, "C123", metr)

	require.NoError(t, n.SendMatchResolvedNotification(testMatch(), true))
	assert.Equal(t, 0, api.calls, "dry run must not post to Slack")
}
