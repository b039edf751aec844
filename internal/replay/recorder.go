package replay

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bangfree/bang-client-go/internal/protocol"
)

// RecordedUpdate is one applied update in wire form.
type RecordedUpdate struct {
	Seq  int
	Kind string
	Data []byte
}

// replayFile is the on-disk format.
type replayFile struct {
	GameID    string
	StartedAt time.Time
	Updates   []RecordedUpdate
}

// Recorder captures every applied update in application order so a finished
// game can be stepped through again. Implements the sequencer's Recorder.
type Recorder struct {
	mu        sync.RWMutex
	gameID    string
	startedAt time.Time
	updates   []RecordedUpdate
	index     int
}

// NewRecorder creates an empty recorder for the given game id.
func NewRecorder(gameID string) *Recorder {
	return &Recorder{gameID: gameID, startedAt: time.Now()}
}

// GameID returns the recorded game's id.
func (r *Recorder) GameID() string { return r.gameID }

// StartedAt returns when recording began.
func (r *Recorder) StartedAt() time.Time { return r.startedAt }

// Record appends one applied update. Updates that cannot be re-encoded are
// skipped; that only happens for malformed payloads the table already
// rejected.
func (r *Recorder) Record(u protocol.GameUpdate) {
	data, err := protocol.EncodeUpdate(u)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, RecordedUpdate{
		Seq:  len(r.updates) + 1,
		Kind: string(u.Kind()),
		Data: data,
	})
}

// Size returns the number of recorded updates.
func (r *Recorder) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.updates)
}

// Start resets playback to the beginning.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = 0
}

// Next decodes and returns the next recorded update, nil at the end.
func (r *Recorder) Next() (protocol.GameUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index >= len(r.updates) {
		return nil, nil
	}
	rec := r.updates[r.index]
	r.index++
	u, err := protocol.DecodeUpdate(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding recorded update %d: %w", rec.Seq, err)
	}
	return u, nil
}

// Previous steps playback back one update and returns it, nil at the start.
func (r *Recorder) Previous() (protocol.GameUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index == 0 {
		return nil, nil
	}
	r.index--
	rec := r.updates[r.index]
	u, err := protocol.DecodeUpdate(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding recorded update %d: %w", rec.Seq, err)
	}
	return u, nil
}

// SaveToFile writes the replay to <dir>/<gameID>.replay as gzipped gob.
func (r *Recorder) SaveToFile(dir string) (string, error) {
	r.mu.RLock()
	file := replayFile{
		GameID:    r.gameID,
		StartedAt: r.startedAt,
		Updates:   make([]RecordedUpdate, len(r.updates)),
	}
	copy(file.Updates, r.updates)
	r.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating replay directory: %w", err)
	}
	path := filepath.Join(dir, r.gameID+".replay")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating replay file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := gob.NewEncoder(gz).Encode(file); err != nil {
		gz.Close()
		return "", fmt.Errorf("encoding replay: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("flushing replay: %w", err)
	}
	return path, nil
}

// LoadFromFile reads a replay written by SaveToFile, positioned at the
// beginning.
func LoadFromFile(path string) (*Recorder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening replay file: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading replay file: %w", err)
	}
	defer gz.Close()

	var file replayFile
	if err := gob.NewDecoder(gz).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding replay: %w", err)
	}
	return &Recorder{
		gameID:    file.GameID,
		startedAt: file.StartedAt,
		updates:   file.Updates,
	}, nil
}
