package table

import "github.com/bangfree/bang-client-go/internal/protocol"

// Rect is an on-screen rectangle in renderer coordinates.
type Rect struct {
	X, Y, W, H float64
}

// PositionProvider is the capability the renderer injects so animation
// endpoints can be resolved to on-screen rectangles. The core never holds a
// concrete UI handle; absent positions simply yield ok=false.
type PositionProvider interface {
	PocketRect(ref PocketRef) (Rect, bool)
	PlayerRect(id protocol.PlayerID) (Rect, bool)
	CardRect(id protocol.CardID) (Rect, bool)
}

// NullPositionProvider resolves nothing. Useful for headless clients and
// tests.
type NullPositionProvider struct{}

func (NullPositionProvider) PocketRect(PocketRef) (Rect, bool)         { return Rect{}, false }
func (NullPositionProvider) PlayerRect(protocol.PlayerID) (Rect, bool) { return Rect{}, false }
func (NullPositionProvider) CardRect(protocol.CardID) (Rect, bool)     { return Rect{}, false }
