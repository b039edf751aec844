package table

import (
	"fmt"

	"github.com/bangfree/bang-client-go/internal/protocol"
)

// PocketRef addresses one pocket: a table-level pocket when Player is zero,
// otherwise a player-scoped one.
type PocketRef struct {
	Name   protocol.PocketType
	Player protocol.PlayerID
}

func (r PocketRef) String() string {
	if r.Player != 0 {
		return fmt.Sprintf("%s[player %d]", r.Name, r.Player)
	}
	return string(r.Name)
}

// CardAnimationKind discriminates the mutually exclusive card animations.
type CardAnimationKind string

const (
	// CardAnimFlip is the reveal/conceal flip started by show_card and
	// hide_card.
	CardAnimFlip CardAnimationKind = "flip"
	// CardAnimTurn is the tap/untap rotation.
	CardAnimTurn CardAnimationKind = "turn"
	CardAnimFlash CardAnimationKind = "flash"
	CardAnimPause CardAnimationKind = "pause"
	// CardAnimMove marks a card in flight between pockets. The card stays in
	// its source pocket until move_card_end lands.
	CardAnimMove CardAnimationKind = "move"
)

// CardAnimation is the in-flight animation tag of a card. At most one exists
// per card at a time.
type CardAnimation struct {
	Kind     CardAnimationKind
	Duration protocol.Milliseconds
	// MoveTo is the destination pocket, CardAnimMove only.
	MoveTo *PocketRef
}

// Card is one card record. All fields are owned by the table; external code
// holds only the id.
type Card struct {
	ID        protocol.CardID
	Pocket    PocketRef
	Deck      protocol.DeckType
	Known     *protocol.CardData // nil while the face is unknown
	Inactive  bool
	NumCubes  int
	Animation *CardAnimation
}

// InFlight reports whether the card is mid-move: still in its source pocket
// but already bound for another one.
func (c *Card) InFlight() bool {
	return c.Animation != nil && c.Animation.Kind == CardAnimMove
}

func (c *Card) clone() *Card {
	out := *c
	if c.Known != nil {
		known := *c.Known
		out.Known = &known
	}
	if c.Animation != nil {
		anim := *c.Animation
		if c.Animation.MoveTo != nil {
			dest := *c.Animation.MoveTo
			anim.MoveTo = &dest
		}
		out.Animation = &anim
	}
	return &out
}
