package pubsub_test

import (
	"errors"
	"testing"

	"github.com/mauv0809/mexicano/internal/metrics"
	"github.com/mauv0809/mexicano/internal/pubsub"
	"github.com/mauv0809/mexicano/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestPublisher_PublishesEverySnapshotToItsTopic(t *testing.T) {
	client := pubsub.NewMock("test-project")
	m := metrics.NewMock()

	tr, err := tournament.New(tournament.DefaultSettings, nil, pubsub.NewPublisher(client, m))
	require.NoError(t, err)
	for _, name := range []string{"P1", "P2", "P3", "P4"} {
		_, err := tr.AddPlayer(name)
		require.NoError(t, err)
	}
	matches := tr.GenerateMatches(1)
	_, err = tr.SubmitScores([]tournament.Match{{
		ID: matches[0].ID, Court: 1, TeamA: matches[0].TeamA, TeamB: matches[0].TeamB,
		ScoreA: "21", ScoreB: "11",
	}})
	require.NoError(t, err)

	require.Len(t, client.SendMessageCalls, 6)
	assert.Equal(t, pubsub.EventPlayerAdded, client.SendMessageCalls[0].Topic)
	assert.Equal(t, pubsub.EventRoundGenerated, client.SendMessageCalls[4].Topic)
	assert.Equal(t, pubsub.EventScoresSubmitted, client.SendMessageCalls[5].Topic)

	snap, ok := client.SendMessageCalls[5].Data.(tournament.Snapshot)
	require.True(t, ok)
	assert.Equal(t, 2, snap.Round)
	require.Len(t, snap.Results, 1)
	assert.Equal(t, 6, m.EventsPublished())
	assert.Equal(t, 0, m.EventsPublishFailed())
}

func TestPublisher_FailureIsCountedNotPropagated(t *testing.T) {
	client := pubsub.NewMock("test-project")
	client.SendMessageFunc = func(topic pubsub.EventType, data any) error {
		return errors.New("topic not found")
	}
	m := metrics.NewMock()

	tr, err := tournament.New(tournament.DefaultSettings, nil, pubsub.NewPublisher(client, m))
	require.NoError(t, err)
	_, err = tr.AddPlayer("P1")
	require.NoError(t, err)

	assert.Equal(t, 0, m.EventsPublished())
	assert.Equal(t, 1, m.EventsPublishFailed())
	assert.Len(t, tr.Players(), 1)
}

func TestTopicName(t *testing.T) {
	assert.Equal(t, "mexicano-round-generated", pubsub.TopicName("mexicano", pubsub.EventRoundGenerated))
	assert.Equal(t, "tournament-reset", pubsub.TopicName("", pubsub.EventReset))
}

func TestDecode_Snapshot(t *testing.T) {
	want := tournament.Snapshot{
		Event: tournament.EventScoresSubmitted,
		Round: 3,
		Players: []tournament.Player{
			{Name: "P1", Points: 21, Wins: 1, Played: 1},
			{Name: "P2", Points: 11, Losses: 1, Played: 1},
		},
		Matches: []tournament.Match{
			{ID: "m1", Court: 1, TeamA: tournament.Team{"P1", "P4"}, TeamB: tournament.Team{"P2", "P3"}, ScoreA: "21", ScoreB: ""},
		},
		Results: []tournament.Result{
			{Round: 2, Court: 1, TeamA: tournament.Team{"P1", "P4"}, TeamB: tournament.Team{"P2", "P3"}, ScoreA: 21, ScoreB: 11, Outcome: tournament.OutcomeTeamA},
		},
		Settings: tournament.Settings{Courts: 2, TargetPoints: 24},
	}
	data, err := msgpack.Marshal(want)
	require.NoError(t, err)

	var got tournament.Snapshot
	require.NoError(t, pubsub.Decode(data, &got))
	assert.Equal(t, want, got)

	assert.Error(t, pubsub.Decode([]byte{0xc1}, &got))
}
