package protocol

import (
	"encoding/json"
	"fmt"
)

// GameAction is the outbound play: the anchor card plus the accumulated
// targets in click order, shaped by the card's declared target types.
type GameAction struct {
	Card         CardID       `json:"card"`
	Targets      []CardTarget `json:"targets"`
	BypassPrompt bool         `json:"bypass_prompt,omitempty"`
}

// EncodeGameAction wraps the action in its client envelope.
func EncodeGameAction(a GameAction) ([]byte, error) {
	if a.Targets == nil {
		a.Targets = []CardTarget{}
	}
	return json.Marshal(map[string]GameAction{"game_action": a})
}

// EncodeLobbyReturn builds the envelope that leaves a finished game back to
// the waiting area.
func EncodeLobbyReturn() []byte {
	return []byte(`{"lobby_return":{}}`)
}

// DecodeServerMessage splits a server envelope into its kind and raw payload.
// Game updates arrive as {"game_update": {<update>}}; everything else
// (lobby, chat) belongs to collaborators outside this core.
func DecodeServerMessage(data []byte) (string, json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, fmt.Errorf("malformed server message: %w", err)
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("server message must have exactly one key, got %d", len(obj))
	}
	for key, raw := range obj {
		return key, raw, nil
	}
	return "", nil, fmt.Errorf("unreachable")
}

// ServerMessageGameUpdate is the envelope key carrying a game update.
const ServerMessageGameUpdate = "game_update"
