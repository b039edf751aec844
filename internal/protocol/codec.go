package protocol

import (
	"encoding/json"
	"fmt"
)

// DecodeUpdate parses a server update from its single-key object form, e.g.
// {"move_card": {"card": 5, "pocket": "discard_pile", "duration": 300}}.
func DecodeUpdate(data []byte) (GameUpdate, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("malformed update: %w", err)
	}
	if len(obj) != 1 {
		return nil, fmt.Errorf("update must have exactly one key, got %d", len(obj))
	}
	for key, raw := range obj {
		return DecodeUpdateValue(UpdateKind(key), raw)
	}
	return nil, fmt.Errorf("unreachable")
}

// DecodeUpdateValue parses the payload of one update kind.
func DecodeUpdateValue(kind UpdateKind, raw json.RawMessage) (GameUpdate, error) {
	u, err := newUpdate(kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, u); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	return u, nil
}

// EncodeUpdate renders an update back to its single-key object form. Used by
// the replay recorder and tests; the client itself never sends updates.
func EncodeUpdate(u GameUpdate) ([]byte, error) {
	payload, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", u.Kind(), err)
	}
	return json.Marshal(map[string]json.RawMessage{string(u.Kind()): payload})
}

// newUpdate returns a zero value of the variant for the given kind. The
// switch is exhaustive over all UpdateKind values.
func newUpdate(kind UpdateKind) (GameUpdate, error) {
	switch kind {
	case UpdateGameError:
		return &GameErrorUpdate{}, nil
	case UpdateGameLog:
		return &GameLogUpdate{}, nil
	case UpdateGamePrompt:
		return &GamePromptUpdate{}, nil
	case UpdateAddCards:
		return &AddCardsUpdate{}, nil
	case UpdateRemoveCards:
		return &RemoveCardsUpdate{}, nil
	case UpdateMoveCard:
		return &MoveCardUpdate{}, nil
	case UpdateMoveCardEnd:
		return &MoveCardEndUpdate{}, nil
	case UpdateAddCubes:
		return &AddCubesUpdate{}, nil
	case UpdateMoveCubes:
		return &MoveCubesUpdate{}, nil
	case UpdateMoveCubesEnd:
		return &MoveCubesEndUpdate{}, nil
	case UpdateMoveScenarioDeck:
		return &MoveScenarioDeckUpdate{}, nil
	case UpdateMoveScenarioDeckEnd:
		return &MoveScenarioDeckEndUpdate{}, nil
	case UpdateMoveTrain:
		return &MoveTrainUpdate{}, nil
	case UpdateMoveTrainEnd:
		return &MoveTrainEndUpdate{}, nil
	case UpdateDeckShuffled:
		return &DeckShuffledUpdate{}, nil
	case UpdateDeckShuffledEnd:
		return &DeckShuffledEndUpdate{}, nil
	case UpdateShowCard:
		return &ShowCardUpdate{}, nil
	case UpdateHideCard:
		return &HideCardUpdate{}, nil
	case UpdateTapCard:
		return &TapCardUpdate{}, nil
	case UpdateFlashCard:
		return &FlashCardUpdate{}, nil
	case UpdateShortPause:
		return &ShortPauseUpdate{}, nil
	case UpdateCardAnimationEnd:
		return &CardAnimationEndUpdate{}, nil
	case UpdatePlayerAdd:
		return &PlayerAddUpdate{}, nil
	case UpdatePlayerOrder:
		return &PlayerOrderUpdate{}, nil
	case UpdatePlayerOrderEnd:
		return &PlayerOrderEndUpdate{}, nil
	case UpdatePlayerHp:
		return &PlayerHpUpdate{}, nil
	case UpdatePlayerGold:
		return &PlayerGoldUpdate{}, nil
	case UpdatePlayerShowRole:
		return &PlayerShowRoleUpdate{}, nil
	case UpdatePlayerAnimationEnd:
		return &PlayerAnimationEndUpdate{}, nil
	case UpdatePlayerStatus:
		return &PlayerStatusUpdate{}, nil
	case UpdateSwitchTurn:
		return &SwitchTurnUpdate{}, nil
	case UpdateRequestStatus:
		return &RequestStatusUpdate{}, nil
	case UpdateStatusReady:
		return &StatusReadyUpdate{}, nil
	case UpdateGameFlags:
		return &GameFlagsUpdate{}, nil
	case UpdatePlaySound:
		return &PlaySoundUpdate{}, nil
	case UpdateStatusClear:
		return &StatusClearUpdate{}, nil
	}
	return nil, fmt.Errorf("unknown update kind %q", kind)
}

// switch_turn, game_flags and play_sound carry bare JSON values instead of
// objects; status_clear carries an empty object.

func (u *SwitchTurnUpdate) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &u.Player)
}

func (u SwitchTurnUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Player)
}

func (u *GameFlagsUpdate) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &u.Flags)
}

func (u GameFlagsUpdate) MarshalJSON() ([]byte, error) {
	flags := u.Flags
	if flags == nil {
		flags = []string{}
	}
	return json.Marshal(flags)
}

func (u *PlaySoundUpdate) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &u.Sound)
}

func (u PlaySoundUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Sound)
}

func (u *StatusClearUpdate) UnmarshalJSON(data []byte) error {
	return nil
}

func (u StatusClearUpdate) MarshalJSON() ([]byte, error) {
	return []byte("{}"), nil
}
