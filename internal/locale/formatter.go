package locale

import (
	"fmt"
	"strings"

	"github.com/bangfree/bang-client-go/internal/protocol"
)

// Formatter renders a GameString for display. The core depends on this
// capability only; actual locale tables live with the (excluded) UI layer.
type Formatter interface {
	Format(msg protocol.GameString) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(protocol.GameString) string

func (f FormatterFunc) Format(msg protocol.GameString) string { return f(msg) }

// Default returns a formatter that renders the raw format key followed by
// its arguments. Good enough for logs and headless runs.
func Default() Formatter {
	return FormatterFunc(func(msg protocol.GameString) string {
		if len(msg.Args) == 0 {
			return msg.Format
		}
		parts := make([]string, 0, len(msg.Args)+1)
		parts = append(parts, msg.Format)
		for _, arg := range msg.Args {
			parts = append(parts, renderArg(arg))
		}
		return strings.Join(parts, " ")
	})
}

func renderArg(arg protocol.FormatArg) string {
	switch {
	case arg.Integer != nil:
		return fmt.Sprintf("%d", *arg.Integer)
	case arg.String != nil:
		return *arg.String
	case arg.Card != nil:
		return fmt.Sprintf("card:%d", *arg.Card)
	case arg.Player != nil:
		return fmt.Sprintf("player:%d", *arg.Player)
	}
	return "?"
}
