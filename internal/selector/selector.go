package selector

import (
	"github.com/bangfree/bang-client-go/internal/protocol"
	"github.com/bangfree/bang-client-go/internal/table"
	"go.uber.org/zap"
)

// Mode is the selector's interaction state.
type Mode int

const (
	// ModeIdle means no pending request: clicks do nothing.
	ModeIdle Mode = iota
	// ModeResponding means the server posted a request or status_ready and
	// the player may pick or start a play.
	ModeResponding
	// ModeBuilding means a play is being composed around an anchor card.
	ModeBuilding
	// ModeConfirmable means the accumulated targets satisfy the anchor's
	// target shape and the play may be confirmed or undone.
	ModeConfirmable
	// ModeFinished means the action was sent; input is ignored until the
	// next server update.
	ModeFinished
)

var modeNames = map[Mode]string{
	ModeIdle:        "IDLE",
	ModeResponding:  "RESPONDING",
	ModeBuilding:    "BUILDING",
	ModeConfirmable: "CONFIRMABLE",
	ModeFinished:    "FINISHED",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// ActionSender delivers finished actions to the network collaborator.
type ActionSender interface {
	SendAction(protocol.GameAction)
}

// ActionSenderFunc adapts a function to ActionSender.
type ActionSenderFunc func(protocol.GameAction)

func (f ActionSenderFunc) SendAction(a protocol.GameAction) { f(a) }

// slot accumulates the selections for one target of the anchor card's shape.
type slot struct {
	target  protocol.TargetType
	players []protocol.PlayerID
	cards   []protocol.CardID
	closed  bool
}

func (s *slot) count() int {
	return len(s.players) + len(s.cards)
}

func (s *slot) complete() bool {
	switch s.target.Arity() {
	case protocol.ArityNone:
		return true
	case protocol.ArityFixedPlayers, protocol.ArityFixedCards:
		return s.count() >= s.target.FixedCount()
	}
	return s.closed
}

// Selector turns server prompts plus player clicks into validated outbound
// actions. It enforces selection-shape legality only; rule legality is the
// server's business. Ineligible clicks are no-ops, never errors.
type Selector struct {
	logger *zap.Logger
	sender ActionSender

	tbl *table.GameTable

	mode      Mode
	request   *protocol.RequestStatusUpdate
	playCards []protocol.CardID

	anchor protocol.CardID
	slots  []slot
}

// New creates a selector in ModeIdle. sender may be nil for a read-only
// spectator; finished actions are then dropped.
func New(sender ActionSender, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{logger: logger, sender: sender, mode: ModeIdle}
}

// Mode returns the current interaction state.
func (s *Selector) Mode() Mode { return s.mode }

// AnchorCard returns the card the current play is anchored on, zero when no
// play is being built.
func (s *Selector) AnchorCard() protocol.CardID {
	return s.anchor
}

// HandleUpdate is invoked by the sequencer for every applied update, with
// the fresh table snapshot. Request-shaped updates drive the state machine;
// any update at all unlocks a finished selector.
func (s *Selector) HandleUpdate(tbl *table.GameTable, u protocol.GameUpdate) {
	s.tbl = tbl

	switch v := u.(type) {
	case *protocol.RequestStatusUpdate:
		// The server always has final authority: a fresh request supersedes
		// whatever was mid-selection, discarding unsent progress.
		s.request = v
		s.playCards = nil
		s.resetSelection()
		s.mode = ModeResponding
	case *protocol.StatusReadyUpdate:
		s.request = nil
		s.playCards = v.PlayCards
		s.resetSelection()
		s.mode = ModeResponding
	case *protocol.StatusClearUpdate:
		s.request = nil
		s.playCards = nil
		s.resetSelection()
		s.mode = ModeIdle
	default:
		if s.mode == ModeFinished {
			s.resetSelection()
			if s.request != nil || s.playCards != nil {
				s.mode = ModeResponding
			} else {
				s.mode = ModeIdle
			}
		}
	}

	// The candidate set may have changed even without a new request.
	s.maybeAutoSelect()
}

// ClickCard feeds a card click into the state machine.
func (s *Selector) ClickCard(id protocol.CardID) {
	switch s.mode {
	case ModeResponding:
		if s.request != nil && containsCard(s.request.PickCards, id) {
			s.transmitPick(id)
			return
		}
		if containsCard(s.candidates(), id) {
			s.beginBuilding(id)
		}
	case ModeBuilding:
		s.fillCard(id)
	}
}

// ClickPlayer feeds a player click into the state machine.
func (s *Selector) ClickPlayer(id protocol.PlayerID) {
	if s.mode != ModeBuilding {
		return
	}
	sl := s.openSlot()
	if sl == nil {
		return
	}
	switch sl.target.Arity() {
	case protocol.ArityFixedPlayers, protocol.ArityOpenPlayers:
		if !s.eligiblePlayer(sl, id) {
			return
		}
		sl.players = append(sl.players, id)
		s.advance()
	}
}

// Confirm closes the current open-arity slot, or packages the anchor card
// and the accumulated targets into an outbound action once the whole shape
// is satisfied. Accepted in ModeConfirmable, or in ModeBuilding when the
// current slot is open-arity and holds at least one selection; an open slot
// followed by further slots just closes and selection continues.
func (s *Selector) Confirm() {
	switch s.mode {
	case ModeConfirmable:
		s.transmit()
	case ModeBuilding:
		if !s.CanConfirm() {
			return
		}
		sl := s.openSlot()
		sl.closed = true
		s.advance()
		if s.mode == ModeConfirmable {
			s.transmit()
		}
	}
}

// Undo pops the most recent selection or, when none remain, the anchor card
// itself, dropping back to ModeResponding. Not accepted once the action has
// been sent.
func (s *Selector) Undo() {
	if s.mode != ModeBuilding && s.mode != ModeConfirmable {
		return
	}
	for i := len(s.slots) - 1; i >= 0; i-- {
		sl := &s.slots[i]
		if sl.target.Arity() == protocol.ArityNone {
			s.slots = s.slots[:i]
			continue
		}
		sl.closed = false
		if len(sl.cards) > 0 {
			sl.cards = sl.cards[:len(sl.cards)-1]
		} else if len(sl.players) > 0 {
			sl.players = sl.players[:len(sl.players)-1]
		} else {
			s.slots = s.slots[:i]
			continue
		}
		s.slots = s.slots[:i+1]
		s.mode = ModeBuilding
		return
	}
	// Nothing selected: the anchor itself is undone.
	s.resetSelection()
	s.mode = ModeResponding
}

// CanConfirm reports whether Confirm would accept: either the shape is
// satisfied and the action goes out, or the current open slot closes and
// selection moves on.
func (s *Selector) CanConfirm() bool {
	switch s.mode {
	case ModeConfirmable:
		return true
	case ModeBuilding:
		sl := s.openSlot()
		return sl != nil && sl.target.IsOpen() && sl.count() >= 1
	}
	return false
}

// CanUndo reports whether Undo would change anything.
func (s *Selector) CanUndo() bool {
	return s.mode == ModeBuilding || s.mode == ModeConfirmable
}

func (s *Selector) resetSelection() {
	s.anchor = 0
	s.slots = nil
}

func (s *Selector) beginBuilding(anchor protocol.CardID) {
	s.anchor = anchor
	s.slots = nil
	s.mode = ModeBuilding
	s.advance()
}

// shape returns the anchor card's declared target types. An unknown card
// plays with no targets.
func (s *Selector) shape() []protocol.TargetType {
	if s.tbl == nil || s.anchor == 0 {
		return nil
	}
	c, ok := s.tbl.Card(s.anchor)
	if !ok || c.Known == nil {
		return nil
	}
	return c.Known.Targets
}

// candidates returns the cards eligible to start a play: the request's
// respond set, or the status_ready play set.
func (s *Selector) candidates() []protocol.CardID {
	if s.request != nil {
		return s.request.RespondCards
	}
	return s.playCards
}

// openSlot returns the last slot when it still accepts input.
func (s *Selector) openSlot() *slot {
	if len(s.slots) == 0 {
		return nil
	}
	sl := &s.slots[len(s.slots)-1]
	if sl.target.Arity() == protocol.ArityNone {
		return nil
	}
	if sl.closed {
		return nil
	}
	switch sl.target.Arity() {
	case protocol.ArityFixedPlayers, protocol.ArityFixedCards:
		if sl.count() >= sl.target.FixedCount() {
			return nil
		}
	}
	return sl
}

// advance appends slots until one needs input, auto-filling zero-click
// targets, and flips to ModeConfirmable when the whole shape is satisfied.
func (s *Selector) advance() {
	shape := s.shape()
	for {
		if len(s.slots) > 0 {
			last := &s.slots[len(s.slots)-1]
			if !last.complete() {
				return
			}
		}
		if len(s.slots) >= len(shape) {
			s.mode = ModeConfirmable
			return
		}
		tt := shape[len(s.slots)]
		s.slots = append(s.slots, slot{target: tt})
	}
}

func (s *Selector) fillCard(id protocol.CardID) {
	sl := s.openSlot()
	if sl == nil {
		return
	}
	switch sl.target.Arity() {
	case protocol.ArityFixedCards, protocol.ArityOpenCards:
		if !s.eligibleCard(sl, id) {
			return
		}
		sl.cards = append(sl.cards, id)
		s.advance()
	}
}

// eligibleCard applies selection-shape checks only: the card must exist,
// cube slots must have cubes left to take, and non-cube slots reject
// duplicates.
func (s *Selector) eligibleCard(sl *slot, id protocol.CardID) bool {
	if s.tbl == nil {
		return false
	}
	c, ok := s.tbl.Card(id)
	if !ok {
		return false
	}
	if sl.target.SelectsCubes() {
		taken := 0
		for _, prev := range sl.cards {
			if prev == id {
				taken++
			}
		}
		return taken < c.NumCubes
	}
	if containsCard(sl.cards, id) {
		return false
	}
	if sl.target == protocol.TargetCardsOtherPlayers {
		self := s.tbl.SelfPlayer()
		if self != 0 && c.Pocket.Player == self {
			return false
		}
	}
	return true
}

func (s *Selector) eligiblePlayer(sl *slot, id protocol.PlayerID) bool {
	if s.tbl == nil {
		return false
	}
	if _, ok := s.tbl.Player(id); !ok {
		return false
	}
	return !containsPlayer(sl.players, id)
}

// maybeAutoSelect skips needless clicks when the active request admits only
// one legal resolution. Re-evaluated every time the candidate set changes,
// not only on request entry.
func (s *Selector) maybeAutoSelect() {
	if s.mode != ModeResponding || s.request == nil || !s.request.AutoSelect {
		return
	}
	if len(s.request.PickCards) == 1 && len(s.request.RespondCards) == 0 {
		s.transmitPick(s.request.PickCards[0])
		return
	}
	if len(s.request.RespondCards) == 1 && len(s.request.PickCards) == 0 {
		s.beginBuilding(s.request.RespondCards[0])
		s.autoFillForcedPlayers()
		if s.mode == ModeConfirmable {
			// Every slot resolved without a choice: send straight away.
			s.transmit()
		}
	}
}

// autoFillForcedPlayers resolves fixed-player slots that admit exactly one
// player, so a fully forced response needs no clicks at all. Stops at the
// first slot where the player actually has a choice.
func (s *Selector) autoFillForcedPlayers() {
	if s.tbl == nil {
		return
	}
	for s.mode == ModeBuilding {
		sl := s.openSlot()
		if sl == nil || sl.target.Arity() != protocol.ArityFixedPlayers {
			return
		}
		var only protocol.PlayerID
		eligible := 0
		for _, id := range s.tbl.AlivePlayers() {
			if s.eligiblePlayer(sl, id) {
				only = id
				eligible++
			}
		}
		if eligible != 1 {
			return
		}
		sl.players = append(sl.players, only)
		s.advance()
	}
}

func (s *Selector) transmitPick(id protocol.CardID) {
	s.send(protocol.GameAction{Card: id})
}

func (s *Selector) transmit() {
	targets := make([]protocol.CardTarget, 0, len(s.slots))
	for _, sl := range s.slots {
		targets = append(targets, sl.toTarget())
	}
	s.send(protocol.GameAction{Card: s.anchor, Targets: targets})
}

func (s *Selector) send(a protocol.GameAction) {
	if s.sender != nil {
		s.sender.SendAction(a)
	}
	s.logger.Debug("game action sent",
		zap.Int("card", int(a.Card)),
		zap.Int("targets", len(a.Targets)),
	)
	s.mode = ModeFinished
}

func (sl *slot) toTarget() protocol.CardTarget {
	out := protocol.CardTarget{Type: sl.target}
	switch sl.target.Arity() {
	case protocol.ArityFixedPlayers:
		if sl.target.FixedCount() == 1 {
			if len(sl.players) > 0 {
				out.Player = sl.players[0]
			}
		} else {
			out.Players = sl.players
		}
	case protocol.ArityOpenPlayers:
		out.Players = sl.players
	case protocol.ArityFixedCards:
		if len(sl.cards) > 0 {
			out.Card = sl.cards[0]
		}
	case protocol.ArityOpenCards:
		out.Cards = sl.cards
	}
	return out
}

func containsCard(ids []protocol.CardID, id protocol.CardID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsPlayer(ids []protocol.PlayerID, id protocol.PlayerID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
