package gamelog

import (
	"sync"

	"github.com/bangfree/bang-client-go/internal/locale"
	"github.com/bangfree/bang-client-go/internal/protocol"
	"go.uber.org/zap"
)

// Entry is one retained log line.
type Entry struct {
	Seq      int
	Message  protocol.GameString
	Rendered string
}

// Store retains game_log entries for the whole game and surfaces the latest
// game_error and game_prompt as transient notices. It implements the
// sequencer's StatusConsumer.
type Store struct {
	mu        sync.Mutex
	formatter locale.Formatter
	logger    *zap.Logger

	seq     int
	entries []Entry
	lastErr *Entry
	prompt  *Entry
}

// NewStore creates a store rendering entries through the given formatter.
func NewStore(formatter locale.Formatter, logger *zap.Logger) *Store {
	if formatter == nil {
		formatter = locale.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{formatter: formatter, logger: logger}
}

func (s *Store) HandleGameLog(msg protocol.GameString) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	entry := Entry{Seq: s.seq, Message: msg, Rendered: s.formatter.Format(msg)}
	s.entries = append(s.entries, entry)
	s.logger.Debug("game log", zap.String("message", entry.Rendered))
}

// HandleGameError records a server-reported game error. It is a transient
// notice: it does not touch table or selector state.
func (s *Store) HandleGameError(msg protocol.GameString) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	entry := Entry{Seq: s.seq, Message: msg, Rendered: s.formatter.Format(msg)}
	s.lastErr = &entry
	s.logger.Warn("game error", zap.String("message", entry.Rendered))
}

func (s *Store) HandleGamePrompt(msg protocol.GameString) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	entry := Entry{Seq: s.seq, Message: msg, Rendered: s.formatter.Format(msg)}
	s.prompt = &entry
}

// Entries returns the retained log in arrival order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// LastError returns the latest game error notice, if any.
func (s *Store) LastError() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil {
		return Entry{}, false
	}
	return *s.lastErr, true
}

// ClearError dismisses the current error notice.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// Prompt returns the latest game prompt, if any.
func (s *Store) Prompt() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prompt == nil {
		return Entry{}, false
	}
	return *s.prompt, true
}

// ClearPrompt dismisses the current prompt.
func (s *Store) ClearPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = nil
}
