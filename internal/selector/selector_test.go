package selector

import (
	"testing"

	"github.com/bangfree/bang-client-go/internal/protocol"
	"github.com/bangfree/bang-client-go/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type senderSpy struct {
	actions []protocol.GameAction
}

func (s *senderSpy) SendAction(a protocol.GameAction) {
	s.actions = append(s.actions, a)
}

// buildTable reduces updates into a fresh table, failing on rejection.
func buildTable(t *testing.T, updates ...protocol.GameUpdate) *table.GameTable {
	t.Helper()
	tbl := table.New(100)
	for _, u := range updates {
		next, err := tbl.Apply(u)
		require.NoError(t, err, "applying %s", u.Kind())
		tbl = next
	}
	return tbl
}

// gameInProgress is two seated players with cards 1..4 in the self player's
// hand and cards 5..6 in the opponent's.
func gameInProgress(t *testing.T) *table.GameTable {
	t.Helper()
	return buildTable(t,
		&protocol.PlayerAddUpdate{Players: []protocol.PlayerAddEntry{
			{PlayerID: 1, UserID: 100},
			{PlayerID: 2, UserID: 200},
		}},
		&protocol.AddCardsUpdate{
			CardIDs: []protocol.CardIDPair{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}},
			Pocket:  protocol.PocketPlayerHand,
			Player:  1,
		},
		&protocol.AddCardsUpdate{
			CardIDs: []protocol.CardIDPair{{ID: 5}, {ID: 6}},
			Pocket:  protocol.PocketPlayerHand,
			Player:  2,
		},
	)
}

// reveal marks a card known with the given target shape.
func reveal(t *testing.T, tbl *table.GameTable, id protocol.CardID, targets ...protocol.TargetType) *table.GameTable {
	t.Helper()
	next, err := tbl.Apply(&protocol.ShowCardUpdate{
		Card: id,
		Info: protocol.CardData{Name: "card", Targets: targets},
	})
	require.NoError(t, err)
	return next
}

func TestPickCardTransmitsImmediately(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText: protocol.GameString{Format: "status_general_store"},
		PickCards:  []protocol.CardID{2, 3},
	})
	require.Equal(t, ModeResponding, sel.Mode())
	assert.True(t, sel.IsCardPickable(2))
	assert.False(t, sel.IsCardPickable(1))

	// A card outside the pick set is a no-op.
	sel.ClickCard(1)
	assert.Empty(t, spy.actions)

	sel.ClickCard(2)
	require.Len(t, spy.actions, 1)
	assert.Equal(t, protocol.GameAction{Card: 2}, spy.actions[0])
	assert.Equal(t, ModeFinished, sel.Mode())

	// Finished: further clicks are swallowed until the next update.
	sel.ClickCard(3)
	assert.Len(t, spy.actions, 1)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	assert.Equal(t, ModeResponding, sel.Mode())
}

func TestBuildPlayWithPlayerTarget(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetPlayer)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)
	require.Equal(t, ModeBuilding, sel.Mode())
	assert.Equal(t, protocol.CardID(1), sel.AnchorCard())
	assert.True(t, sel.IsCardSelected(1))

	sel.ClickPlayer(2)
	require.Equal(t, ModeConfirmable, sel.Mode())
	assert.True(t, sel.IsPlayerSelected(2))

	sel.Confirm()
	require.Len(t, spy.actions, 1)
	assert.Equal(t, protocol.GameAction{
		Card:    1,
		Targets: []protocol.CardTarget{{Type: protocol.TargetPlayer, Player: 2}},
	}, spy.actions[0])
}

func TestOpenCardSlotAccumulatesUntilConfirm(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetCards)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)
	require.Equal(t, ModeBuilding, sel.Mode())

	sel.ClickCard(2)
	sel.ClickCard(4)
	sel.ClickCard(3)
	// Duplicates are rejected without error.
	sel.ClickCard(2)
	assert.Equal(t, ModeBuilding, sel.Mode())
	assert.True(t, sel.CanConfirm())

	sel.Confirm()
	require.Len(t, spy.actions, 1)
	require.Len(t, spy.actions[0].Targets, 1)
	// Click order is preserved.
	assert.Equal(t, []protocol.CardID{2, 4, 3}, spy.actions[0].Targets[0].Cards)
}

func TestOpenSlotBeforeAnotherSlotClosesOnConfirm(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetCards, protocol.TargetPlayer)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)
	sel.ClickCard(2)
	sel.ClickCard(3)
	require.Equal(t, ModeBuilding, sel.Mode())
	require.True(t, sel.CanConfirm())

	// Confirm closes the open cards slot; the player slot still needs input.
	sel.Confirm()
	require.Equal(t, ModeBuilding, sel.Mode())
	assert.Empty(t, spy.actions)

	// The closed slot no longer takes card clicks.
	sel.ClickCard(4)
	assert.False(t, sel.IsCardSelected(4))

	sel.ClickPlayer(2)
	require.Equal(t, ModeConfirmable, sel.Mode())
	sel.Confirm()

	require.Len(t, spy.actions, 1)
	assert.Equal(t, []protocol.CardTarget{
		{Type: protocol.TargetCards, Cards: []protocol.CardID{2, 3}},
		{Type: protocol.TargetPlayer, Player: 2},
	}, spy.actions[0].Targets)
}

func TestConfirmRequiresAtLeastOneSelection(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetCards)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)
	assert.False(t, sel.CanConfirm())
	sel.Confirm()
	assert.Empty(t, spy.actions)
}

func TestUndoPopsMostRecentSelection(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetCards)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)
	sel.ClickCard(2)
	sel.ClickCard(3)
	require.True(t, sel.IsCardSelected(3))

	sel.Undo()
	assert.False(t, sel.IsCardSelected(3))
	assert.True(t, sel.IsCardSelected(2))

	sel.Undo()
	assert.False(t, sel.IsCardSelected(2))
	assert.Equal(t, ModeBuilding, sel.Mode())

	// Nothing selected: the anchor itself is undone.
	sel.Undo()
	assert.Equal(t, ModeResponding, sel.Mode())
	assert.Zero(t, sel.AnchorCard())
	assert.Empty(t, spy.actions)
}

func TestUndoRejectedAfterSend(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText: protocol.GameString{Format: "status_discard"},
		PickCards:  []protocol.CardID{2},
	})
	sel.ClickCard(2)
	require.Equal(t, ModeFinished, sel.Mode())
	assert.False(t, sel.CanUndo())
	sel.Undo()
	assert.Equal(t, ModeFinished, sel.Mode())
	assert.Len(t, spy.actions, 1)
}

func TestAutoSelectSinglePick(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText: protocol.GameString{Format: "status_draw"},
		AutoSelect: true,
		PickCards:  []protocol.CardID{3},
	})

	require.Len(t, spy.actions, 1)
	assert.Equal(t, protocol.GameAction{Card: 3}, spy.actions[0])
	assert.Equal(t, ModeFinished, sel.Mode())
}

func TestAutoSelectSingleRespondWithoutTargets(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1)

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText:   protocol.GameString{Format: "status_bang"},
		AutoSelect:   true,
		RespondCards: []protocol.CardID{1},
	})

	require.Len(t, spy.actions, 1)
	assert.Equal(t, protocol.CardID(1), spy.actions[0].Card)
	assert.Empty(t, spy.actions[0].Targets)
}

func TestAutoSelectFillsForcedPlayerTarget(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetPlayer)

	// Only player 2 is still alive, so the target is forced.
	next, err := tbl.Apply(&protocol.PlayerOrderEndUpdate{Players: []protocol.PlayerID{2}})
	require.NoError(t, err)
	tbl = next

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText:   protocol.GameString{Format: "status_duel"},
		AutoSelect:   true,
		RespondCards: []protocol.CardID{1},
	})

	require.Len(t, spy.actions, 1)
	assert.Equal(t, protocol.GameAction{
		Card:    1,
		Targets: []protocol.CardTarget{{Type: protocol.TargetPlayer, Player: 2}},
	}, spy.actions[0])
}

func TestAutoSelectStopsWhereTargetIsAChoice(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetPlayer)

	// Two alive players: the target is a genuine choice.
	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText:   protocol.GameString{Format: "status_bang"},
		AutoSelect:   true,
		RespondCards: []protocol.CardID{1},
	})

	assert.Empty(t, spy.actions)
	require.Equal(t, ModeBuilding, sel.Mode())
	sel.ClickPlayer(2)
	sel.Confirm()
	require.Len(t, spy.actions, 1)
}

func TestAutoSelectWaitsWhenMultipleCandidates(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText: protocol.GameString{Format: "status_draw"},
		AutoSelect: true,
		PickCards:  []protocol.CardID{2, 3},
	})
	assert.Empty(t, spy.actions)
	assert.Equal(t, ModeResponding, sel.Mode())
}

func TestNewRequestSupersedesSelectionInProgress(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetCards)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)
	sel.ClickCard(2)
	require.Equal(t, ModeBuilding, sel.Mode())

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText:   protocol.GameString{Format: "status_indians"},
		RespondCards: []protocol.CardID{3},
	})
	assert.Equal(t, ModeResponding, sel.Mode())
	assert.Zero(t, sel.AnchorCard())
	assert.False(t, sel.IsCardSelected(2))
	assert.Empty(t, spy.actions)
}

func TestStatusClearReturnsToIdle(t *testing.T) {
	sel := New(&senderSpy{}, nil)
	tbl := gameInProgress(t)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	require.Equal(t, ModeResponding, sel.Mode())

	sel.HandleUpdate(tbl, &protocol.StatusClearUpdate{})
	assert.Equal(t, ModeIdle, sel.Mode())

	// Idle swallows clicks entirely.
	sel.ClickCard(1)
	assert.Equal(t, ModeIdle, sel.Mode())
}

func TestCardsOtherPlayersRejectsOwnCards(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetCardsOtherPlayers)

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)

	sel.ClickCard(2) // own hand
	assert.False(t, sel.IsCardSelected(2))

	sel.ClickCard(5) // opponent's hand
	assert.True(t, sel.IsCardSelected(5))

	sel.Confirm()
	require.Len(t, spy.actions, 1)
	assert.Equal(t, []protocol.CardID{5}, spy.actions[0].Targets[0].Cards)
}

func TestSelectCubesAllowsRepeatedClicks(t *testing.T) {
	spy := &senderSpy{}
	sel := New(spy, nil)
	tbl := gameInProgress(t)
	tbl = reveal(t, tbl, 1, protocol.TargetSelectCubes)

	var err error
	next, err := tbl.Apply(&protocol.AddCubesUpdate{NumCubes: 2, TargetCard: 2})
	require.NoError(t, err)
	tbl = next

	sel.HandleUpdate(tbl, &protocol.StatusReadyUpdate{PlayCards: []protocol.CardID{1}})
	sel.ClickCard(1)

	sel.ClickCard(2)
	sel.ClickCard(2)
	// Third click exceeds the card's cube count.
	sel.ClickCard(2)

	sel.Confirm()
	require.Len(t, spy.actions, 1)
	assert.Equal(t, []protocol.CardID{2, 2}, spy.actions[0].Targets[0].Cards)
}

func TestSpectatorSelectorStaysSilent(t *testing.T) {
	// A nil sender drops finished actions instead of panicking.
	sel := New(nil, nil)
	tbl := gameInProgress(t)

	sel.HandleUpdate(tbl, &protocol.RequestStatusUpdate{
		StatusText: protocol.GameString{Format: "status_draw"},
		PickCards:  []protocol.CardID{2},
	})
	sel.ClickCard(2)
	assert.Equal(t, ModeFinished, sel.Mode())
}
