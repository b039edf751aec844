package table

import (
	"fmt"

	"github.com/bangfree/bang-client-go/internal/protocol"
)

// Apply reduces one update into a new table snapshot. The receiver is never
// mutated. An error means the update references state that does not exist or
// would break a table invariant; since the server is the sole producer, that
// is an unrecoverable protocol violation, not a game-logic error.
func (t *GameTable) Apply(u protocol.GameUpdate) (*GameTable, error) {
	switch u.(type) {
	case *protocol.GameErrorUpdate, *protocol.GameLogUpdate, *protocol.GamePromptUpdate, *protocol.PlaySoundUpdate:
		// Log and sound updates carry no table mutation.
		return t, nil
	}
	next := t.clone()
	if err := next.apply(u); err != nil {
		return nil, err
	}
	return next, nil
}

func (t *GameTable) apply(u protocol.GameUpdate) error {
	switch v := u.(type) {
	case *protocol.AddCardsUpdate:
		return t.applyAddCards(v)
	case *protocol.RemoveCardsUpdate:
		return t.applyRemoveCards(v)
	case *protocol.MoveCardUpdate:
		return t.applyMoveCard(v)
	case *protocol.MoveCardEndUpdate:
		return t.applyMoveCardEnd(v)
	case *protocol.AddCubesUpdate:
		return t.applyAddCubes(v)
	case *protocol.MoveCubesUpdate:
		return t.applyMoveCubes(v)
	case *protocol.MoveCubesEndUpdate:
		return t.applyMoveCubesEnd(v)
	case *protocol.MoveScenarioDeckUpdate:
		t.animation = &TableAnimation{Kind: TableAnimScenario, Duration: v.Duration, Pocket: v.Pocket}
		return nil
	case *protocol.MoveScenarioDeckEndUpdate:
		if _, ok := t.players[v.Player]; !ok && v.Player != 0 {
			return fmt.Errorf("move_scenario_deck_end: unknown player %d", v.Player)
		}
		t.scenarioHolders[v.Pocket] = v.Player
		t.animation = nil
		return nil
	case *protocol.MoveTrainUpdate:
		t.animation = &TableAnimation{Kind: TableAnimMoveTrain, Duration: v.Duration}
		return nil
	case *protocol.MoveTrainEndUpdate:
		t.status.TrainPos = v.Position
		t.animation = nil
		return nil
	case *protocol.DeckShuffledUpdate:
		if err := t.checkPermutation(v.Pocket, v.Cards); err != nil {
			return err
		}
		t.animation = &TableAnimation{Kind: TableAnimDeckShuffle, Duration: v.Duration, Pocket: v.Pocket}
		return nil
	case *protocol.DeckShuffledEndUpdate:
		if err := t.checkPermutation(v.Pocket, v.Cards); err != nil {
			return err
		}
		t.pockets[v.Pocket] = cloneIDs(v.Cards)
		t.animation = nil
		return nil
	case *protocol.ShowCardUpdate:
		return t.applyShowCard(v)
	case *protocol.HideCardUpdate:
		return t.cardAnimation(v.Card, CardAnimFlip, v.Duration, func(c *Card) { c.Known = nil })
	case *protocol.TapCardUpdate:
		return t.cardAnimation(v.Card, CardAnimTurn, v.Duration, func(c *Card) { c.Inactive = v.Inactive })
	case *protocol.FlashCardUpdate:
		return t.cardAnimation(v.Card, CardAnimFlash, v.Duration, nil)
	case *protocol.ShortPauseUpdate:
		if v.Card == 0 {
			return nil
		}
		return t.cardAnimation(v.Card, CardAnimPause, v.Duration, nil)
	case *protocol.CardAnimationEndUpdate:
		if v.Card == 0 {
			return nil
		}
		c, ok := t.cards[v.Card]
		if !ok {
			return fmt.Errorf("card_animation_end: unknown card %d", v.Card)
		}
		c.Animation = nil
		return nil
	case *protocol.PlayerAddUpdate:
		return t.applyPlayerAdd(v)
	case *protocol.PlayerOrderUpdate:
		if err := t.checkPlayersExist(v.Players); err != nil {
			return fmt.Errorf("player_order: %w", err)
		}
		t.animation = &TableAnimation{Kind: TableAnimMovePlayers, Duration: v.Duration, Players: clonePlayerIDs(v.Players)}
		return nil
	case *protocol.PlayerOrderEndUpdate:
		if err := t.checkPlayersExist(v.Players); err != nil {
			return fmt.Errorf("player_order_end: %w", err)
		}
		t.alive = clonePlayerIDs(v.Players)
		t.animation = nil
		return nil
	case *protocol.PlayerHpUpdate:
		p, err := t.player(v.Player, "player_hp")
		if err != nil {
			return err
		}
		p.Animation = &PlayerAnimation{Kind: PlayerAnimHpChange, Duration: v.Duration, PrevHP: p.HP}
		p.HP = v.HP
		return nil
	case *protocol.PlayerGoldUpdate:
		p, err := t.player(v.Player, "player_gold")
		if err != nil {
			return err
		}
		p.Gold = v.Gold
		return nil
	case *protocol.PlayerShowRoleUpdate:
		p, err := t.player(v.Player, "player_show_role")
		if err != nil {
			return err
		}
		p.Animation = &PlayerAnimation{Kind: PlayerAnimRoleFlip, Duration: v.Duration, PrevRole: p.Role}
		p.Role = v.Role
		return nil
	case *protocol.PlayerAnimationEndUpdate:
		p, err := t.player(v.Player, "player_animation_end")
		if err != nil {
			return err
		}
		p.Animation = nil
		return nil
	case *protocol.PlayerStatusUpdate:
		p, err := t.player(v.Player, "player_status")
		if err != nil {
			return err
		}
		p.Flags = cloneStrings(v.Flags)
		p.RangeMod = v.RangeMod
		p.WeaponRange = v.WeaponRange
		p.DistanceMod = v.DistanceMod
		return nil
	case *protocol.SwitchTurnUpdate:
		if v.Player != 0 {
			if _, ok := t.players[v.Player]; !ok {
				return fmt.Errorf("switch_turn: unknown player %d", v.Player)
			}
		}
		t.status.CurrentTurn = v.Player
		return nil
	case *protocol.GameFlagsUpdate:
		t.status.Flags = cloneStrings(v.Flags)
		return nil
	case *protocol.RequestStatusUpdate:
		t.status.Request = v
		t.status.PlayCards = nil
		return nil
	case *protocol.StatusReadyUpdate:
		t.status.Request = nil
		t.status.PlayCards = cloneIDs(v.PlayCards)
		return nil
	case *protocol.StatusClearUpdate:
		t.status.Request = nil
		t.status.PlayCards = nil
		return nil
	}
	return fmt.Errorf("unhandled update kind %q", u.Kind())
}

func (t *GameTable) applyAddCards(v *protocol.AddCardsUpdate) error {
	ref := PocketRef{Name: v.Pocket, Player: v.Player}
	for _, pair := range v.CardIDs {
		if _, exists := t.cards[pair.ID]; exists {
			return fmt.Errorf("add_cards: duplicate card id %d", pair.ID)
		}
		c := &Card{ID: pair.ID, Pocket: ref, Deck: pair.Deck}
		t.cards[pair.ID] = c
		if err := t.appendToPocket(ref, pair.ID); err != nil {
			return fmt.Errorf("add_cards: %w", err)
		}
	}
	return nil
}

func (t *GameTable) applyRemoveCards(v *protocol.RemoveCardsUpdate) error {
	for _, id := range v.Cards {
		c, ok := t.cards[id]
		if !ok {
			return fmt.Errorf("remove_cards: unknown card %d", id)
		}
		if err := t.removeFromPocket(c); err != nil {
			return fmt.Errorf("remove_cards: %w", err)
		}
		delete(t.cards, id)
	}
	return nil
}

// applyMoveCard records the destination and marks the card in flight; the
// pocket-membership mutation is deferred to the paired move_card_end so the
// view can animate the transition.
func (t *GameTable) applyMoveCard(v *protocol.MoveCardUpdate) error {
	c, ok := t.cards[v.Card]
	if !ok {
		return fmt.Errorf("move_card: unknown card %d", v.Card)
	}
	dest := PocketRef{Name: v.Pocket, Player: v.Player}
	if err := t.validatePocket(dest); err != nil {
		return fmt.Errorf("move_card: %w", err)
	}
	c.Animation = &CardAnimation{Kind: CardAnimMove, Duration: v.Duration, MoveTo: &dest}
	return nil
}

func (t *GameTable) applyMoveCardEnd(v *protocol.MoveCardEndUpdate) error {
	c, ok := t.cards[v.Card]
	if !ok {
		return fmt.Errorf("move_card_end: unknown card %d", v.Card)
	}
	if err := t.removeFromPocket(c); err != nil {
		return fmt.Errorf("move_card_end: %w", err)
	}
	dest := PocketRef{Name: v.Pocket, Player: v.Player}
	if err := t.appendToPocket(dest, v.Card); err != nil {
		return fmt.Errorf("move_card_end: %w", err)
	}
	c.Pocket = dest
	c.Animation = nil
	return nil
}

func (t *GameTable) applyAddCubes(v *protocol.AddCubesUpdate) error {
	if v.NumCubes < 0 {
		return fmt.Errorf("add_cubes: negative cube count %d", v.NumCubes)
	}
	if v.TargetCard == 0 {
		t.status.NumCubes += v.NumCubes
		return nil
	}
	c, ok := t.cards[v.TargetCard]
	if !ok {
		return fmt.Errorf("add_cubes: unknown card %d", v.TargetCard)
	}
	c.NumCubes += v.NumCubes
	return nil
}

// applyMoveCubes debits the origin at apply time; the credit to the target
// lands with move_cubes_end. Counters must never go negative: a short origin
// is an invariant violation, not something to clamp.
func (t *GameTable) applyMoveCubes(v *protocol.MoveCubesUpdate) error {
	if v.NumCubes < 0 {
		return fmt.Errorf("move_cubes: negative cube count %d", v.NumCubes)
	}
	if v.OriginCard == 0 {
		if t.status.NumCubes < v.NumCubes {
			return fmt.Errorf("move_cubes: table pool would go negative (%d - %d)", t.status.NumCubes, v.NumCubes)
		}
		t.status.NumCubes -= v.NumCubes
		return nil
	}
	c, ok := t.cards[v.OriginCard]
	if !ok {
		return fmt.Errorf("move_cubes: unknown origin card %d", v.OriginCard)
	}
	if c.NumCubes < v.NumCubes {
		return fmt.Errorf("move_cubes: card %d cube count would go negative (%d - %d)", c.ID, c.NumCubes, v.NumCubes)
	}
	c.NumCubes -= v.NumCubes
	return nil
}

func (t *GameTable) applyMoveCubesEnd(v *protocol.MoveCubesEndUpdate) error {
	if v.NumCubes < 0 {
		return fmt.Errorf("move_cubes_end: negative cube count %d", v.NumCubes)
	}
	if v.TargetCard == 0 {
		t.status.NumCubes += v.NumCubes
		return nil
	}
	c, ok := t.cards[v.TargetCard]
	if !ok {
		return fmt.Errorf("move_cubes_end: unknown target card %d", v.TargetCard)
	}
	c.NumCubes += v.NumCubes
	return nil
}

func (t *GameTable) applyShowCard(v *protocol.ShowCardUpdate) error {
	info := v.Info
	return t.cardAnimation(v.Card, CardAnimFlip, v.Duration, func(c *Card) { c.Known = &info })
}

func (t *GameTable) applyPlayerAdd(v *protocol.PlayerAddUpdate) error {
	for _, entry := range v.Players {
		if _, exists := t.players[entry.PlayerID]; exists {
			return fmt.Errorf("player_add: duplicate player id %d", entry.PlayerID)
		}
		p := &Player{ID: entry.PlayerID, UserID: entry.UserID, Role: protocol.RoleUnknown}
		t.players[entry.PlayerID] = p
		t.playerOrder = append(t.playerOrder, entry.PlayerID)
		t.alive = append(t.alive, entry.PlayerID)
		if entry.UserID != 0 && entry.UserID == t.selfUserID {
			t.selfPlayer = entry.PlayerID
		}
	}
	return nil
}

// cardAnimation tags a card with an animation and applies an optional field
// mutation. Used by the show/hide/tap/flash/pause family, none of which
// change pocket membership.
func (t *GameTable) cardAnimation(id protocol.CardID, kind CardAnimationKind, d protocol.Milliseconds, mutate func(*Card)) error {
	c, ok := t.cards[id]
	if !ok {
		return fmt.Errorf("%s: unknown card %d", kind, id)
	}
	if mutate != nil {
		mutate(c)
	}
	c.Animation = &CardAnimation{Kind: kind, Duration: d}
	return nil
}

func (t *GameTable) player(id protocol.PlayerID, op string) (*Player, error) {
	p, ok := t.players[id]
	if !ok {
		return nil, fmt.Errorf("%s: unknown player %d", op, id)
	}
	return p, nil
}

func (t *GameTable) checkPlayersExist(ids []protocol.PlayerID) error {
	for _, id := range ids {
		if _, ok := t.players[id]; !ok {
			return fmt.Errorf("unknown player %d", id)
		}
	}
	return nil
}

// checkPermutation verifies that ids is a permutation of the table pocket's
// current contents.
func (t *GameTable) checkPermutation(pocket protocol.PocketType, ids []protocol.CardID) error {
	current := t.pockets[pocket]
	if len(current) != len(ids) {
		return fmt.Errorf("deck_shuffled: %s has %d cards, permutation names %d", pocket, len(current), len(ids))
	}
	seen := make(map[protocol.CardID]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			return fmt.Errorf("deck_shuffled: card %d is not in %s", id, pocket)
		}
		delete(seen, id)
	}
	return nil
}

// validatePocket checks that a pocket reference is well formed and, for
// player-scoped pockets, that the player exists.
func (t *GameTable) validatePocket(ref PocketRef) error {
	if ref.Player != 0 {
		p, ok := t.players[ref.Player]
		if !ok {
			return fmt.Errorf("unknown player %d", ref.Player)
		}
		if _, ok := p.pocket(ref.Name); !ok {
			return fmt.Errorf("pocket %s is not player-scoped", ref.Name)
		}
		return nil
	}
	if ref.Name.IsPlayerPocket() {
		return fmt.Errorf("pocket %s requires a player", ref.Name)
	}
	return nil
}

func (t *GameTable) appendToPocket(ref PocketRef, id protocol.CardID) error {
	if ref.Player != 0 {
		p, ok := t.players[ref.Player]
		if !ok {
			return fmt.Errorf("unknown player %d", ref.Player)
		}
		slice, ok := p.pocket(ref.Name)
		if !ok {
			return fmt.Errorf("pocket %s is not player-scoped", ref.Name)
		}
		*slice = append(*slice, id)
		return nil
	}
	if ref.Name.IsPlayerPocket() {
		return fmt.Errorf("pocket %s requires a player", ref.Name)
	}
	t.pockets[ref.Name] = append(t.pockets[ref.Name], id)
	return nil
}

// removeFromPocket detaches a card from its current pocket. A card missing
// from the pocket it claims to be in is a broken invariant.
func (t *GameTable) removeFromPocket(c *Card) error {
	ref := c.Pocket
	if ref.Name == protocol.PocketNone {
		return nil
	}
	if ref.Player != 0 {
		p, ok := t.players[ref.Player]
		if !ok {
			return fmt.Errorf("unknown player %d", ref.Player)
		}
		slice, ok := p.pocket(ref.Name)
		if !ok {
			return fmt.Errorf("pocket %s is not player-scoped", ref.Name)
		}
		out, found := removeID(*slice, c.ID)
		if !found {
			return fmt.Errorf("card %d missing from %s", c.ID, ref)
		}
		*slice = out
		return nil
	}
	out, found := removeID(t.pockets[ref.Name], c.ID)
	if !found {
		return fmt.Errorf("card %d missing from %s", c.ID, ref)
	}
	t.pockets[ref.Name] = out
	return nil
}

func removeID(ids []protocol.CardID, id protocol.CardID) ([]protocol.CardID, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
