package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/teenpatti/internal/deck"
)

func TestSnapshotVisibility(t *testing.T) {
	table := NewTestTable(
		WithPlayers("A", "B", "C"),
		WithHands("Ks Kh 7c", "2c 2d 2h", "Qs Js 9s"),
	)
	require.NoError(t, table.StartRound())

	snap := table.Snapshot(0)
	for _, s := range snap.Seats {
		assert.Nil(t, s.Cards, "all hands hidden while blind")
		assert.Equal(t, 3, s.CardCount)
		assert.Empty(t, s.HandName)
	}
	assert.Empty(t, snap.LegalActions, "not seat 0's turn")
	assert.Equal(t, 5, snap.CallAmount)
	assert.Equal(t, 10, snap.RaiseAmount)
	assert.True(t, snap.Seats[1].IsDealer)
	assert.True(t, snap.Seats[2].IsActive)

	require.True(t, table.Apply(2, Call).Applied)
	require.True(t, table.Apply(0, SeeCards).Applied)

	snap = table.Snapshot(0)
	assert.Equal(t, "K♠ K♥ 7♣", cardsString(snap.Seats[0].Cards))
	assert.Equal(t, "Pair", snap.Seats[0].HandName)
	assert.Nil(t, snap.Seats[1].Cards)
	assert.Nil(t, snap.Seats[2].Cards)
	assert.Equal(t, []Action{Fold, Call, Raise}, snap.LegalActions)
	assert.Equal(t, 10, snap.CallAmount)
	assert.Equal(t, 20, snap.RaiseAmount)

	assert.Nil(t, table.Snapshot(1).Seats[0].Cards, "other viewers still see nothing")
	assert.Nil(t, table.Snapshot(-1).Seats[0].Cards)

	require.True(t, table.Apply(0, Fold).Applied)
	require.True(t, table.Apply(1, RequestShow).Applied)

	snap = table.Snapshot(-1)
	for _, s := range snap.Seats {
		assert.Len(t, s.Cards, 3, "finished rounds reveal every hand")
	}
	assert.Equal(t, "Trail", snap.Seats[1].HandName)
	assert.True(t, snap.Seats[1].IsWinner)
	assert.False(t, snap.Seats[2].IsWinner)
	require.NotNil(t, snap.Outcome)
	assert.Equal(t, Showdown, snap.Outcome.Kind)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	table := NewTestTable(WithHands("Ks Kh 7c", "2c 2d 2h", "Qs Js 9s"))
	require.NoError(t, table.StartRound())
	require.True(t, table.Apply(2, Fold).Applied)
	require.True(t, table.Apply(0, Fold).Applied)

	snap := table.Snapshot(0)
	snap.Seats[0].Cards[0] = snap.Seats[1].Cards[0]
	snap.Log[0] = "tampered"
	snap.Outcome.Winners[0] = 2
	snap.Seats[0].Chips = 1

	fresh := table.Snapshot(0)
	assert.NotEqual(t, fresh.Seats[0].Cards[0], fresh.Seats[1].Cards[0])
	assert.Equal(t, "Bot 1 wins pot by default", fresh.Log[0])
	assert.Equal(t, []int{1}, fresh.Outcome.Winners)
	assert.Equal(t, 995, fresh.Seats[0].Chips)
}

func TestSnapshotJSON(t *testing.T) {
	table := NewTestTable()
	require.NoError(t, table.StartRound())

	data, err := json.Marshal(table.Snapshot(2))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "betting", decoded["phase"])
	assert.Equal(t, []any{"see", "fold", "call", "raise"}, decoded["legal_actions"])
	assert.InDelta(t, 15, decoded["pot"], 0)
}

func cardsString(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	table := NewTestTable(WithHands("Ks Kh 7c", "2c 2d 2h", "Qs Js 9s"))
	require.NoError(t, table.StartRound())
	require.True(t, table.Apply(2, Fold).Applied)
	require.True(t, table.Apply(0, RequestShow).Applied)

	want := table.Snapshot(0)
	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got Snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}
