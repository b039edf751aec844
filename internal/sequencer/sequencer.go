package sequencer

import (
	"fmt"
	"sync"

	"github.com/bangfree/bang-client-go/internal/metrics"
	"github.com/bangfree/bang-client-go/internal/protocol"
	"github.com/bangfree/bang-client-go/internal/selector"
	"github.com/bangfree/bang-client-go/internal/table"
	"go.uber.org/zap"
)

// StatusConsumer receives the log-shaped updates verbatim and in order as
// they are applied.
type StatusConsumer interface {
	HandleGameLog(protocol.GameString)
	HandleGameError(protocol.GameString)
	HandleGamePrompt(protocol.GameString)
}

// Recorder receives every applied update, in application order.
type Recorder interface {
	Record(protocol.GameUpdate)
}

// Sequencer owns the incoming update queue and the only notion of wall-clock
// time in the core. Updates are applied strictly in enqueue order; a
// duration-bearing update suspends the queue until its declared duration has
// elapsed, then its deferred end mutation lands before anything else.
type Sequencer struct {
	mu sync.Mutex

	logger  *zap.Logger
	tbl     *table.GameTable
	sel     *selector.Selector
	status  StatusConsumer
	rec     Recorder
	metrics *metrics.Metrics
	onFatal func(error)

	queue []protocol.GameUpdate

	// Deferred-end state of the update currently animating. Explicit rather
	// than captured in a closure so the mode is inspectable.
	animating  bool
	pendingEnd protocol.GameUpdate
	remaining  protocol.Milliseconds

	halted bool
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithSelector attaches the target selector; it is synced after every
// applied update.
func WithSelector(sel *selector.Selector) Option {
	return func(s *Sequencer) { s.sel = sel }
}

// WithStatusConsumer attaches a consumer for game_log, game_error and
// game_prompt updates.
func WithStatusConsumer(c StatusConsumer) Option {
	return func(s *Sequencer) { s.status = c }
}

// WithRecorder attaches a replay recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Sequencer) { s.rec = r }
}

// WithMetrics attaches a metrics set.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sequencer) { s.logger = logger }
}

// WithFatalHandler overrides what happens on a protocol violation. The
// default logs at Fatal level, which exits; tests inject their own handler.
func WithFatalHandler(fn func(error)) Option {
	return func(s *Sequencer) { s.onFatal = fn }
}

// New creates a sequencer over an initial table snapshot.
func New(tbl *table.GameTable, opts ...Option) *Sequencer {
	s := &Sequencer{logger: zap.NewNop(), tbl: tbl}
	for _, opt := range opts {
		opt(s)
	}
	if s.onFatal == nil {
		s.onFatal = func(err error) {
			s.logger.Fatal("unrecoverable protocol violation", zap.Error(err))
		}
	}
	return s
}

// Enqueue appends an update to the tail of the queue. Always succeeds;
// server order is preserved exactly. Safe to call from the network goroutine
// while Tick runs elsewhere.
func (s *Sequencer) Enqueue(u protocol.GameUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, u)
	if s.metrics != nil {
		s.metrics.SetQueueDepth(len(s.queue))
	}
}

// Table returns the current, fully-applied snapshot.
func (s *Sequencer) Table() *table.GameTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tbl
}

// Animating reports whether a duration-bearing update is in flight.
func (s *Sequencer) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animating
}

// QueueLen returns the number of updates waiting to be applied.
func (s *Sequencer) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Tick advances the sequencer by elapsed milliseconds. While animating it
// burns down the countdown and applies the deferred end exactly once;
// while draining it applies queued updates until one starts an animation or
// the queue empties. Leftover time after an animation completes carries into
// the continued drain, so several zero-duration updates land in one tick.
func (s *Sequencer) Tick(elapsed protocol.Milliseconds) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget := elapsed
	for !s.halted {
		if s.animating {
			if s.remaining > budget {
				s.remaining -= budget
				return
			}
			budget -= s.remaining
			s.remaining = 0
			s.finishAnimation()
			continue
		}
		if len(s.queue) == 0 {
			return
		}
		u := s.queue[0]
		s.queue = s.queue[1:]
		if s.metrics != nil {
			s.metrics.SetQueueDepth(len(s.queue))
		}
		s.applyUpdate(u)
		if timed, ok := u.(protocol.Timed); ok {
			d := timed.AnimationDuration()
			if d < 0 {
				d = 0
			}
			s.animating = true
			s.remaining = d
			s.pendingEnd = endUpdateFor(u)
			if s.metrics != nil {
				s.metrics.AddAnimationMillis(int(d))
			}
		}
	}
}

func (s *Sequencer) finishAnimation() {
	end := s.pendingEnd
	s.pendingEnd = nil
	s.animating = false
	if end != nil {
		s.applyUpdate(end)
	}
}

func (s *Sequencer) applyUpdate(u protocol.GameUpdate) {
	next, err := s.tbl.Apply(u)
	if err != nil {
		s.halted = true
		s.logger.Error("update rejected", zap.String("kind", string(u.Kind())), zap.Error(err))
		s.onFatal(fmt.Errorf("applying %s: %w", u.Kind(), err))
		return
	}
	s.tbl = next

	if s.metrics != nil {
		s.metrics.ObserveUpdate(string(u.Kind()))
	}
	if s.rec != nil {
		s.rec.Record(u)
	}
	if s.status != nil {
		switch v := u.(type) {
		case *protocol.GameLogUpdate:
			s.status.HandleGameLog(v.GameString)
		case *protocol.GameErrorUpdate:
			s.status.HandleGameError(v.GameString)
		case *protocol.GamePromptUpdate:
			s.status.HandleGamePrompt(v.GameString)
		}
	}
	if s.sel != nil {
		s.sel.HandleUpdate(s.tbl, u)
	}
}

// endUpdateFor builds the deferred completion of a duration-bearing update.
func endUpdateFor(u protocol.GameUpdate) protocol.GameUpdate {
	switch v := u.(type) {
	case *protocol.MoveCardUpdate:
		return &protocol.MoveCardEndUpdate{Card: v.Card, Player: v.Player, Pocket: v.Pocket}
	case *protocol.MoveCubesUpdate:
		return &protocol.MoveCubesEndUpdate{NumCubes: v.NumCubes, TargetCard: v.TargetCard}
	case *protocol.MoveScenarioDeckUpdate:
		return &protocol.MoveScenarioDeckEndUpdate{Player: v.Player, Pocket: v.Pocket}
	case *protocol.MoveTrainUpdate:
		return &protocol.MoveTrainEndUpdate{Position: v.Position}
	case *protocol.DeckShuffledUpdate:
		return &protocol.DeckShuffledEndUpdate{Pocket: v.Pocket, Cards: v.Cards}
	case *protocol.ShowCardUpdate:
		return &protocol.CardAnimationEndUpdate{Card: v.Card}
	case *protocol.HideCardUpdate:
		return &protocol.CardAnimationEndUpdate{Card: v.Card}
	case *protocol.TapCardUpdate:
		return &protocol.CardAnimationEndUpdate{Card: v.Card}
	case *protocol.FlashCardUpdate:
		return &protocol.CardAnimationEndUpdate{Card: v.Card}
	case *protocol.ShortPauseUpdate:
		return &protocol.CardAnimationEndUpdate{Card: v.Card}
	case *protocol.PlayerHpUpdate:
		return &protocol.PlayerAnimationEndUpdate{Player: v.Player}
	case *protocol.PlayerShowRoleUpdate:
		return &protocol.PlayerAnimationEndUpdate{Player: v.Player}
	case *protocol.PlayerOrderUpdate:
		return &protocol.PlayerOrderEndUpdate{Players: v.Players}
	}
	return nil
}
