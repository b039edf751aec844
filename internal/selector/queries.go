package selector

import "github.com/bangfree/bang-client-go/internal/protocol"

// Read-only predicates for the renderer. The renderer polls these every tick
// alongside the table snapshot; the core never calls into the renderer.

// IsCardSelected reports whether the card is the anchor or one of the
// accumulated targets of the play being built.
func (s *Selector) IsCardSelected(id protocol.CardID) bool {
	if s.anchor == id && s.anchor != 0 {
		return true
	}
	for i := range s.slots {
		if containsCard(s.slots[i].cards, id) {
			return true
		}
	}
	return false
}

// IsPlayerSelected reports whether the player is among the accumulated
// targets.
func (s *Selector) IsPlayerSelected(id protocol.PlayerID) bool {
	for i := range s.slots {
		if containsPlayer(s.slots[i].players, id) {
			return true
		}
	}
	return false
}

// IsCardPickable reports whether clicking the card would resolve a pick
// prompt.
func (s *Selector) IsCardPickable(id protocol.CardID) bool {
	return s.mode == ModeResponding && s.request != nil && containsCard(s.request.PickCards, id)
}

// IsCardPlayable reports whether clicking the card would start a play.
func (s *Selector) IsCardPlayable(id protocol.CardID) bool {
	return s.mode == ModeResponding && containsCard(s.candidates(), id)
}

// IsCardHighlighted reports whether the active request highlights the card.
func (s *Selector) IsCardHighlighted(id protocol.CardID) bool {
	return s.request != nil && containsCard(s.request.HighlightCards, id)
}

// OriginCard returns the card the active request originates from, zero when
// none.
func (s *Selector) OriginCard() protocol.CardID {
	if s.request == nil {
		return 0
	}
	return s.request.OriginCard
}

// StatusText returns the active request's prompt message and whether one is
// present.
func (s *Selector) StatusText() (protocol.GameString, bool) {
	if s.request == nil {
		return protocol.GameString{}, false
	}
	return s.request.StatusText, true
}
