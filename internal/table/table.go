package table

import (
	"github.com/bangfree/bang-client-go/internal/protocol"
)

// TableAnimationKind discriminates table-level animations.
type TableAnimationKind string

const (
	TableAnimDeckShuffle TableAnimationKind = "deck_shuffle"
	TableAnimMovePlayers TableAnimationKind = "move_players"
	TableAnimMoveTrain   TableAnimationKind = "move_train"
	TableAnimScenario    TableAnimationKind = "move_scenario_deck"
)

// TableAnimation is an in-flight animation that concerns the table as a
// whole rather than a single card or player.
type TableAnimation struct {
	Kind     TableAnimationKind
	Duration protocol.Milliseconds
	Pocket   protocol.PocketType
	Players  []protocol.PlayerID
}

// Status is the table-level status block.
type Status struct {
	CurrentTurn protocol.PlayerID
	Flags       []string
	NumCubes    int
	TrainPos    int
	// Request is the active server prompt, nil when none. Kept on the table
	// because view queries need it alongside card data; the selector is the
	// component that acts on it.
	Request *protocol.RequestStatusUpdate
	// PlayCards is the active status_ready card set, nil when none.
	PlayCards []protocol.CardID
}

// GameTable is the aggregate root: every card and player of the game, plus
// table-level pockets and status. Snapshots are immutable; Apply returns a
// fresh table and never mutates its receiver, so readers always observe a
// fully-applied state.
type GameTable struct {
	selfUserID int
	selfPlayer protocol.PlayerID

	players     map[protocol.PlayerID]*Player
	playerOrder []protocol.PlayerID // join order
	alive       []protocol.PlayerID // seating/turn order

	cards   map[protocol.CardID]*Card
	pockets map[protocol.PocketType][]protocol.CardID

	scenarioHolders map[protocol.PocketType]protocol.PlayerID

	status    Status
	animation *TableAnimation
}

// New creates an empty table for the given lobby user. A zero user id means
// the caller is spectating.
func New(selfUserID int) *GameTable {
	return &GameTable{
		selfUserID:      selfUserID,
		players:         make(map[protocol.PlayerID]*Player),
		cards:           make(map[protocol.CardID]*Card),
		pockets:         make(map[protocol.PocketType][]protocol.CardID),
		scenarioHolders: make(map[protocol.PocketType]protocol.PlayerID),
	}
}

func (t *GameTable) clone() *GameTable {
	out := &GameTable{
		selfUserID:      t.selfUserID,
		selfPlayer:      t.selfPlayer,
		players:         make(map[protocol.PlayerID]*Player, len(t.players)),
		playerOrder:     clonePlayerIDs(t.playerOrder),
		alive:           clonePlayerIDs(t.alive),
		cards:           make(map[protocol.CardID]*Card, len(t.cards)),
		pockets:         make(map[protocol.PocketType][]protocol.CardID, len(t.pockets)),
		scenarioHolders: make(map[protocol.PocketType]protocol.PlayerID, len(t.scenarioHolders)),
		status:          t.status,
	}
	for id, p := range t.players {
		out.players[id] = p.clone()
	}
	for id, c := range t.cards {
		out.cards[id] = c.clone()
	}
	for name, ids := range t.pockets {
		out.pockets[name] = cloneIDs(ids)
	}
	for name, holder := range t.scenarioHolders {
		out.scenarioHolders[name] = holder
	}
	out.status.Flags = cloneStrings(t.status.Flags)
	out.status.PlayCards = cloneIDs(t.status.PlayCards)
	if t.animation != nil {
		anim := *t.animation
		anim.Players = clonePlayerIDs(t.animation.Players)
		out.animation = &anim
	}
	return out
}

func clonePlayerIDs(in []protocol.PlayerID) []protocol.PlayerID {
	if in == nil {
		return nil
	}
	out := make([]protocol.PlayerID, len(in))
	copy(out, in)
	return out
}

// Card looks up a card by id. The returned record belongs to this snapshot
// and must be treated as read-only.
func (t *GameTable) Card(id protocol.CardID) (*Card, bool) {
	c, ok := t.cards[id]
	return c, ok
}

// Player looks up a player by id. Read-only, like Card.
func (t *GameTable) Player(id protocol.PlayerID) (*Player, bool) {
	p, ok := t.players[id]
	return p, ok
}

// PocketCards returns the ordered card ids of a pocket. Unknown table
// pockets are empty, not an error.
func (t *GameTable) PocketCards(ref PocketRef) []protocol.CardID {
	if ref.Player != 0 {
		p, ok := t.players[ref.Player]
		if !ok {
			return nil
		}
		slice, ok := p.pocket(ref.Name)
		if !ok {
			return nil
		}
		return cloneIDs(*slice)
	}
	return cloneIDs(t.pockets[ref.Name])
}

// Players returns player ids in join order.
func (t *GameTable) Players() []protocol.PlayerID {
	return clonePlayerIDs(t.playerOrder)
}

// AlivePlayers returns the alive player ids in seating/turn order.
func (t *GameTable) AlivePlayers() []protocol.PlayerID {
	return clonePlayerIDs(t.alive)
}

// SelfPlayer returns the caller's own player id, zero while spectating or
// before player_add names the caller.
func (t *GameTable) SelfPlayer() protocol.PlayerID {
	return t.selfPlayer
}

// IsSpectator reports whether the caller has no seat at this table.
func (t *GameTable) IsSpectator() bool {
	return t.selfPlayer == 0
}

// CurrentTurn returns the player whose turn it is.
func (t *GameTable) CurrentTurn() protocol.PlayerID {
	return t.status.CurrentTurn
}

// NumCubes returns the table-wide free cube pool.
func (t *GameTable) NumCubes() int {
	return t.status.NumCubes
}

// TrainPosition returns the current train track position.
func (t *GameTable) TrainPosition() int {
	return t.status.TrainPos
}

// Request returns the active server prompt, nil when none.
func (t *GameTable) Request() *protocol.RequestStatusUpdate {
	return t.status.Request
}

// PlayCards returns the active status_ready card set, nil when none.
func (t *GameTable) PlayCards() []protocol.CardID {
	return cloneIDs(t.status.PlayCards)
}

// HasFlag reports whether the table-level status flags contain flag.
func (t *GameTable) HasFlag(flag string) bool {
	for _, f := range t.status.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// IsGameOver reports whether the server declared the game finished.
func (t *GameTable) IsGameOver() bool {
	return t.HasFlag(protocol.GameFlagGameOver)
}

// Animation returns the table-level animation in flight, nil when none.
func (t *GameTable) Animation() *TableAnimation {
	return t.animation
}

// ScenarioDeckHolder returns the player currently holding the named scenario
// deck, zero when nobody does.
func (t *GameTable) ScenarioDeckHolder(pocket protocol.PocketType) protocol.PlayerID {
	return t.scenarioHolders[pocket]
}

// CardAnimation returns the animation tag of a card, nil when idle or
// unknown.
func (t *GameTable) CardAnimation(id protocol.CardID) *CardAnimation {
	if c, ok := t.cards[id]; ok {
		return c.Animation
	}
	return nil
}

// PlayerAnimation returns the animation tag of a player, nil when idle or
// unknown.
func (t *GameTable) PlayerAnimation(id protocol.PlayerID) *PlayerAnimation {
	if p, ok := t.players[id]; ok {
		return p.Animation
	}
	return nil
}
