package protocol

// FormatArg is one typed argument of a GameString. Exactly one field is set;
// the wire form is a single-key object such as {"integer": 3} or
// {"player": 2}.
type FormatArg struct {
	Integer *int      `json:"integer,omitempty"`
	String  *string   `json:"string,omitempty"`
	Card    *CardID   `json:"card,omitempty"`
	Player  *PlayerID `json:"player,omitempty"`
}

// GameString is a localizable message: a format key plus typed arguments.
// The core never renders these itself; rendering is a locale capability
// injected from outside.
type GameString struct {
	Format string      `json:"format_str"`
	Args   []FormatArg `json:"format_args,omitempty"`
}

// IntArg builds an integer format argument.
func IntArg(v int) FormatArg { return FormatArg{Integer: &v} }

// StringArg builds a string format argument.
func StringArg(v string) FormatArg { return FormatArg{String: &v} }

// CardArg builds a card format argument.
func CardArg(v CardID) FormatArg { return FormatArg{Card: &v} }

// PlayerArg builds a player format argument.
func PlayerArg(v PlayerID) FormatArg { return FormatArg{Player: &v} }
