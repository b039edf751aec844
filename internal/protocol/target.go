package protocol

import (
	"encoding/json"
	"fmt"
)

// TargetType names one slot of a card's declared target shape.
type TargetType string

const (
	TargetNone              TargetType = "none"
	TargetPlayer            TargetType = "player"
	TargetConditionalPlayer TargetType = "conditional_player"
	TargetAdjacentPlayers   TargetType = "adjacent_players"
	TargetPlayerPerCube     TargetType = "player_per_cube"
	TargetCard              TargetType = "card"
	TargetExtraCard         TargetType = "extra_card"
	TargetPlayers           TargetType = "players"
	TargetCards             TargetType = "cards"
	TargetMaxCards          TargetType = "max_cards"
	TargetCardsOtherPlayers TargetType = "cards_other_players"
	TargetMoveCubeSlot      TargetType = "move_cube_slot"
	TargetSelectCubes       TargetType = "select_cubes"
	TargetSelectCubesRepeat TargetType = "select_cubes_repeat"
	TargetSelfCubes         TargetType = "self_cubes"
)

// Arity classifies how a target slot is filled by player input.
type Arity int

const (
	// ArityNone slots are satisfied with no input at all.
	ArityNone Arity = iota
	// ArityFixedPlayers slots take a fixed number of player clicks.
	ArityFixedPlayers
	// ArityFixedCards slots take a fixed number of card clicks.
	ArityFixedCards
	// ArityOpenPlayers slots accumulate player clicks until confirmed.
	ArityOpenPlayers
	// ArityOpenCards slots accumulate card clicks until confirmed.
	ArityOpenCards
)

// Arity returns the input classification for the target type.
func (t TargetType) Arity() Arity {
	switch t {
	case TargetNone, TargetSelfCubes:
		return ArityNone
	case TargetPlayer, TargetConditionalPlayer, TargetAdjacentPlayers:
		return ArityFixedPlayers
	case TargetCard, TargetExtraCard:
		return ArityFixedCards
	case TargetPlayers, TargetPlayerPerCube:
		return ArityOpenPlayers
	default:
		return ArityOpenCards
	}
}

// FixedCount returns how many clicks a fixed-arity slot requires. Open-arity
// slots return 0.
func (t TargetType) FixedCount() int {
	switch t {
	case TargetNone, TargetSelfCubes:
		return 0
	case TargetAdjacentPlayers:
		return 2
	case TargetPlayer, TargetConditionalPlayer, TargetCard, TargetExtraCard:
		return 1
	}
	return 0
}

// IsOpen reports whether the slot keeps accepting clicks until an explicit
// confirm.
func (t TargetType) IsOpen() bool {
	switch t.Arity() {
	case ArityOpenPlayers, ArityOpenCards:
		return true
	}
	return false
}

// SelectsCubes reports whether clicks on the slot pick resource cubes off
// cards, which permits repeated clicks on the same card.
func (t TargetType) SelectsCubes() bool {
	switch t {
	case TargetSelectCubes, TargetSelectCubesRepeat, TargetSelfCubes:
		return true
	}
	return false
}

// CardTarget is one accumulated target of an outbound game action, shaped by
// its TargetType. Wire form is a single-key object keyed by the type name.
type CardTarget struct {
	Type    TargetType
	Player  PlayerID
	Players []PlayerID
	Card    CardID
	Cards   []CardID
}

// MarshalJSON encodes the target as the server expects: {"player": 2},
// {"cards": [5, 9]}, {"none": {}} and so on.
func (t CardTarget) MarshalJSON() ([]byte, error) {
	var payload any
	switch t.Type {
	case TargetNone, TargetSelfCubes:
		payload = struct{}{}
	case TargetPlayer:
		payload = t.Player
	case TargetConditionalPlayer:
		if t.Player == 0 {
			payload = nil
		} else {
			payload = t.Player
		}
	case TargetAdjacentPlayers, TargetPlayerPerCube, TargetPlayers:
		players := t.Players
		if players == nil {
			players = []PlayerID{}
		}
		payload = players
	case TargetCard:
		payload = t.Card
	case TargetExtraCard:
		if t.Card == 0 {
			payload = nil
		} else {
			payload = t.Card
		}
	case TargetCards, TargetMaxCards, TargetCardsOtherPlayers,
		TargetMoveCubeSlot, TargetSelectCubes, TargetSelectCubesRepeat:
		cards := t.Cards
		if cards == nil {
			cards = []CardID{}
		}
		payload = cards
	default:
		return nil, fmt.Errorf("unknown target type %q", t.Type)
	}
	return json.Marshal(map[string]any{string(t.Type): payload})
}
