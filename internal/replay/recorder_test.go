package replay

import (
	"testing"

	"github.com/bangfree/bang-client-go/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedGame(t *testing.T) *Recorder {
	t.Helper()
	r := NewRecorder("test-game")
	r.Record(&protocol.AddCardsUpdate{
		CardIDs: []protocol.CardIDPair{{ID: 1, Deck: protocol.DeckMain}},
		Pocket:  protocol.PocketMainDeck,
	})
	r.Record(&protocol.MoveCardUpdate{Card: 1, Pocket: protocol.PocketDiscardPile, Duration: 200})
	r.Record(&protocol.SwitchTurnUpdate{Player: 1})
	return r
}

func TestNavigation(t *testing.T) {
	r := recordedGame(t)
	require.Equal(t, 3, r.Size())

	r.Start()
	u, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, protocol.UpdateAddCards, u.Kind())

	u, err = r.Next()
	require.NoError(t, err)
	move := u.(*protocol.MoveCardUpdate)
	assert.Equal(t, protocol.CardID(1), move.Card)
	assert.Equal(t, protocol.Milliseconds(200), move.Duration)

	// Step back, then forward again over the same update.
	u, err = r.Previous()
	require.NoError(t, err)
	assert.Equal(t, protocol.UpdateMoveCard, u.Kind())
	u, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, protocol.UpdateMoveCard, u.Kind())

	u, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, protocol.UpdateSwitchTurn, u.Kind())

	u, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, u, "past the end returns nil")
}

func TestPreviousAtStart(t *testing.T) {
	r := recordedGame(t)
	r.Start()
	u, err := r.Previous()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := recordedGame(t)
	dir := t.TempDir()

	path, err := r.SaveToFile(dir)
	require.NoError(t, err)
	assert.Contains(t, path, "test-game.replay")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test-game", loaded.GameID())
	require.Equal(t, r.Size(), loaded.Size())

	loaded.Start()
	kinds := []protocol.UpdateKind{}
	for {
		u, err := loaded.Next()
		require.NoError(t, err)
		if u == nil {
			break
		}
		kinds = append(kinds, u.Kind())
	}
	assert.Equal(t, []protocol.UpdateKind{
		protocol.UpdateAddCards,
		protocol.UpdateMoveCard,
		protocol.UpdateSwitchTurn,
	}, kinds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/replay/file.replay")
	assert.Error(t, err)
}
