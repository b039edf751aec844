package gamelog

import (
	"testing"

	"github.com/bangfree/bang-client-go/internal/protocol"
)

func TestLogEntriesAreRetainedInOrder(t *testing.T) {
	s := NewStore(nil, nil)

	s.HandleGameLog(protocol.GameString{Format: "log_drawn_card"})
	s.HandleGameLog(protocol.GameString{Format: "log_played_card"})

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message.Format != "log_drawn_card" || entries[1].Message.Format != "log_played_card" {
		t.Errorf("unexpected order: %v", entries)
	}
	if entries[0].Seq >= entries[1].Seq {
		t.Errorf("sequence numbers must increase: %d, %d", entries[0].Seq, entries[1].Seq)
	}
}

func TestErrorAndPromptAreTransient(t *testing.T) {
	s := NewStore(nil, nil)

	if _, ok := s.LastError(); ok {
		t.Fatal("fresh store should have no error")
	}

	s.HandleGameError(protocol.GameString{Format: "error_cant_play"})
	entry, ok := s.LastError()
	if !ok || entry.Message.Format != "error_cant_play" {
		t.Fatalf("unexpected error entry: %+v", entry)
	}
	// Errors do not land in the retained log.
	if len(s.Entries()) != 0 {
		t.Errorf("error should not be a log entry: %v", s.Entries())
	}

	s.ClearError()
	if _, ok := s.LastError(); ok {
		t.Error("error should be dismissed")
	}

	s.HandleGamePrompt(protocol.GameString{Format: "prompt_confirm"})
	if _, ok := s.Prompt(); !ok {
		t.Error("prompt should be visible")
	}
	s.ClearPrompt()
	if _, ok := s.Prompt(); ok {
		t.Error("prompt should be dismissed")
	}
}

func TestRenderedUsesFormatter(t *testing.T) {
	s := NewStore(nil, nil)
	player := protocol.PlayerID(2)
	s.HandleGameLog(protocol.GameString{
		Format: "log_drawn_card",
		Args:   []protocol.FormatArg{{Player: &player}},
	})
	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Rendered != "log_drawn_card player:2" {
		t.Errorf("unexpected rendering: %q", entries[0].Rendered)
	}
}
