package protocol

// UpdateKind discriminates the GameUpdate variants. The values are the wire
// keys of the server's single-key update objects.
type UpdateKind string

const (
	UpdateGameError        UpdateKind = "game_error"
	UpdateGameLog          UpdateKind = "game_log"
	UpdateGamePrompt       UpdateKind = "game_prompt"
	UpdateAddCards         UpdateKind = "add_cards"
	UpdateRemoveCards      UpdateKind = "remove_cards"
	UpdateMoveCard         UpdateKind = "move_card"
	UpdateAddCubes         UpdateKind = "add_cubes"
	UpdateMoveCubes        UpdateKind = "move_cubes"
	UpdateMoveScenarioDeck UpdateKind = "move_scenario_deck"
	UpdateMoveTrain        UpdateKind = "move_train"
	UpdateDeckShuffled     UpdateKind = "deck_shuffled"
	UpdateShowCard         UpdateKind = "show_card"
	UpdateHideCard         UpdateKind = "hide_card"
	UpdateTapCard          UpdateKind = "tap_card"
	UpdateFlashCard        UpdateKind = "flash_card"
	UpdateShortPause       UpdateKind = "short_pause"
	UpdatePlayerAdd        UpdateKind = "player_add"
	UpdatePlayerOrder      UpdateKind = "player_order"
	UpdatePlayerHp         UpdateKind = "player_hp"
	UpdatePlayerGold       UpdateKind = "player_gold"
	UpdatePlayerShowRole   UpdateKind = "player_show_role"
	UpdatePlayerStatus     UpdateKind = "player_status"
	UpdateSwitchTurn       UpdateKind = "switch_turn"
	UpdateRequestStatus    UpdateKind = "request_status"
	UpdateStatusReady      UpdateKind = "status_ready"
	UpdateGameFlags        UpdateKind = "game_flags"
	UpdatePlaySound        UpdateKind = "play_sound"
	UpdateStatusClear      UpdateKind = "status_clear"

	// Client-synthesized completions of duration-bearing updates. Never sent
	// by the server; the sequencer schedules them when the animation elapses.
	UpdateMoveCardEnd         UpdateKind = "move_card_end"
	UpdateMoveCubesEnd        UpdateKind = "move_cubes_end"
	UpdateMoveScenarioDeckEnd UpdateKind = "move_scenario_deck_end"
	UpdateMoveTrainEnd        UpdateKind = "move_train_end"
	UpdateDeckShuffledEnd     UpdateKind = "deck_shuffled_end"
	UpdateCardAnimationEnd    UpdateKind = "card_animation_end"
	UpdatePlayerAnimationEnd  UpdateKind = "player_animation_end"
	UpdatePlayerOrderEnd      UpdateKind = "player_order_end"
)

// GameUpdate is one mutation of the game table, either received from the
// server or synthesized by the sequencer to complete an animation. One
// implementation exists per UpdateKind.
type GameUpdate interface {
	Kind() UpdateKind
}

// Timed is implemented by duration-bearing updates. While one is in flight
// no further queued update is applied.
type Timed interface {
	GameUpdate
	AnimationDuration() Milliseconds
}

// CardData is the face-up information of a known card.
type CardData struct {
	Name    string       `json:"name"`
	Image   string       `json:"image,omitempty"`
	Targets []TargetType `json:"targets,omitempty"`
	Suit    CardSuit     `json:"suit,omitempty"`
	Rank    CardRank     `json:"rank,omitempty"`
	Color   CardColor    `json:"color,omitempty"`
}

// CardIDPair is one entry of an add_cards batch.
type CardIDPair struct {
	ID   CardID   `json:"id"`
	Deck DeckType `json:"deck"`
}

type GameErrorUpdate struct {
	GameString
}

type GameLogUpdate struct {
	GameString
}

type GamePromptUpdate struct {
	GameString
}

type AddCardsUpdate struct {
	CardIDs []CardIDPair `json:"card_ids"`
	Pocket  PocketType   `json:"pocket_type"`
	Player  PlayerID     `json:"player,omitempty"`
}

type RemoveCardsUpdate struct {
	Cards []CardID `json:"cards"`
}

type MoveCardUpdate struct {
	Card     CardID       `json:"card"`
	Player   PlayerID     `json:"player,omitempty"`
	Pocket   PocketType   `json:"pocket"`
	Duration Milliseconds `json:"duration"`
}

type MoveCardEndUpdate struct {
	Card   CardID     `json:"card"`
	Player PlayerID   `json:"player,omitempty"`
	Pocket PocketType `json:"pocket"`
}

type AddCubesUpdate struct {
	NumCubes   int    `json:"num_cubes"`
	TargetCard CardID `json:"target_card,omitempty"`
}

type MoveCubesUpdate struct {
	NumCubes   int          `json:"num_cubes"`
	OriginCard CardID       `json:"origin_card,omitempty"`
	TargetCard CardID       `json:"target_card,omitempty"`
	Duration   Milliseconds `json:"duration"`
}

type MoveCubesEndUpdate struct {
	NumCubes   int    `json:"num_cubes"`
	TargetCard CardID `json:"target_card,omitempty"`
}

type MoveScenarioDeckUpdate struct {
	Player   PlayerID     `json:"player"`
	Pocket   PocketType   `json:"pocket"`
	Duration Milliseconds `json:"duration"`
}

type MoveScenarioDeckEndUpdate struct {
	Player PlayerID   `json:"player"`
	Pocket PocketType `json:"pocket"`
}

type MoveTrainUpdate struct {
	Position int          `json:"position"`
	Duration Milliseconds `json:"duration"`
}

type MoveTrainEndUpdate struct {
	Position int `json:"position"`
}

// DeckShuffledUpdate reorders a table pocket. Cards must be a permutation of
// the pocket's current contents.
type DeckShuffledUpdate struct {
	Pocket   PocketType   `json:"pocket"`
	Cards    []CardID     `json:"cards"`
	Duration Milliseconds `json:"duration"`
}

type DeckShuffledEndUpdate struct {
	Pocket PocketType `json:"pocket"`
	Cards  []CardID   `json:"cards"`
}

type ShowCardUpdate struct {
	Card     CardID       `json:"card"`
	Info     CardData     `json:"info"`
	Duration Milliseconds `json:"duration"`
}

type HideCardUpdate struct {
	Card     CardID       `json:"card"`
	Duration Milliseconds `json:"duration"`
}

type TapCardUpdate struct {
	Card     CardID       `json:"card"`
	Inactive bool         `json:"inactive"`
	Duration Milliseconds `json:"duration"`
}

type FlashCardUpdate struct {
	Card     CardID       `json:"card"`
	Duration Milliseconds `json:"duration"`
}

// ShortPauseUpdate suspends the queue briefly. Card is optional; when set the
// card carries a pause animation tag for the renderer.
type ShortPauseUpdate struct {
	Card     CardID       `json:"card,omitempty"`
	Duration Milliseconds `json:"duration"`
}

type CardAnimationEndUpdate struct {
	Card CardID `json:"card,omitempty"`
}

// PlayerAddEntry is one joining player. UserID links the player to the lobby
// user; the table marks the entry matching its own user id as self.
type PlayerAddEntry struct {
	PlayerID PlayerID `json:"player_id"`
	UserID   int      `json:"user_id"`
}

type PlayerAddUpdate struct {
	Players []PlayerAddEntry `json:"players"`
}

type PlayerOrderUpdate struct {
	Players  []PlayerID   `json:"players"`
	Duration Milliseconds `json:"duration"`
}

type PlayerOrderEndUpdate struct {
	Players []PlayerID `json:"players"`
}

type PlayerHpUpdate struct {
	Player   PlayerID     `json:"player"`
	HP       int          `json:"hp"`
	Duration Milliseconds `json:"duration"`
}

type PlayerGoldUpdate struct {
	Player PlayerID `json:"player"`
	Gold   int      `json:"gold"`
}

type PlayerShowRoleUpdate struct {
	Player   PlayerID     `json:"player"`
	Role     PlayerRole   `json:"role"`
	Duration Milliseconds `json:"duration"`
}

type PlayerAnimationEndUpdate struct {
	Player PlayerID `json:"player"`
}

type PlayerStatusUpdate struct {
	Player      PlayerID `json:"player"`
	Flags       []string `json:"flags"`
	RangeMod    int      `json:"range_mod"`
	WeaponRange int      `json:"weapon_range"`
	DistanceMod int      `json:"distance_mod"`
}

// SwitchTurnUpdate carries the new turn player. Wire form is a bare number.
type SwitchTurnUpdate struct {
	Player PlayerID
}

// RequestStatusUpdate posts the server's current prompt: who is asked, what
// the request is about, and which cards may be responded with, picked or
// highlighted.
type RequestStatusUpdate struct {
	OriginCard     CardID     `json:"origin_card,omitempty"`
	Origin         PlayerID   `json:"origin,omitempty"`
	Target         PlayerID   `json:"target,omitempty"`
	StatusText     GameString `json:"status_text"`
	AutoSelect     bool       `json:"auto_select,omitempty"`
	RespondCards   []CardID   `json:"respond_cards,omitempty"`
	PickCards      []CardID   `json:"pick_cards,omitempty"`
	HighlightCards []CardID   `json:"highlight_cards,omitempty"`
}

// StatusReadyUpdate tells the client it is free to initiate a play with one
// of the listed cards.
type StatusReadyUpdate struct {
	PlayCards []CardID `json:"play_cards"`
}

// GameFlagsUpdate replaces the table-level status flags. Wire form is a bare
// string array.
type GameFlagsUpdate struct {
	Flags []string
}

// PlaySoundUpdate names a sound effect. Wire form is a bare string.
type PlaySoundUpdate struct {
	Sound string
}

type StatusClearUpdate struct{}

func (*GameErrorUpdate) Kind() UpdateKind           { return UpdateGameError }
func (*GameLogUpdate) Kind() UpdateKind             { return UpdateGameLog }
func (*GamePromptUpdate) Kind() UpdateKind          { return UpdateGamePrompt }
func (*AddCardsUpdate) Kind() UpdateKind            { return UpdateAddCards }
func (*RemoveCardsUpdate) Kind() UpdateKind         { return UpdateRemoveCards }
func (*MoveCardUpdate) Kind() UpdateKind            { return UpdateMoveCard }
func (*MoveCardEndUpdate) Kind() UpdateKind         { return UpdateMoveCardEnd }
func (*AddCubesUpdate) Kind() UpdateKind            { return UpdateAddCubes }
func (*MoveCubesUpdate) Kind() UpdateKind           { return UpdateMoveCubes }
func (*MoveCubesEndUpdate) Kind() UpdateKind        { return UpdateMoveCubesEnd }
func (*MoveScenarioDeckUpdate) Kind() UpdateKind    { return UpdateMoveScenarioDeck }
func (*MoveScenarioDeckEndUpdate) Kind() UpdateKind { return UpdateMoveScenarioDeckEnd }
func (*MoveTrainUpdate) Kind() UpdateKind           { return UpdateMoveTrain }
func (*MoveTrainEndUpdate) Kind() UpdateKind        { return UpdateMoveTrainEnd }
func (*DeckShuffledUpdate) Kind() UpdateKind        { return UpdateDeckShuffled }
func (*DeckShuffledEndUpdate) Kind() UpdateKind     { return UpdateDeckShuffledEnd }
func (*ShowCardUpdate) Kind() UpdateKind            { return UpdateShowCard }
func (*HideCardUpdate) Kind() UpdateKind            { return UpdateHideCard }
func (*TapCardUpdate) Kind() UpdateKind             { return UpdateTapCard }
func (*FlashCardUpdate) Kind() UpdateKind           { return UpdateFlashCard }
func (*ShortPauseUpdate) Kind() UpdateKind          { return UpdateShortPause }
func (*CardAnimationEndUpdate) Kind() UpdateKind    { return UpdateCardAnimationEnd }
func (*PlayerAddUpdate) Kind() UpdateKind           { return UpdatePlayerAdd }
func (*PlayerOrderUpdate) Kind() UpdateKind         { return UpdatePlayerOrder }
func (*PlayerOrderEndUpdate) Kind() UpdateKind      { return UpdatePlayerOrderEnd }
func (*PlayerHpUpdate) Kind() UpdateKind            { return UpdatePlayerHp }
func (*PlayerGoldUpdate) Kind() UpdateKind          { return UpdatePlayerGold }
func (*PlayerShowRoleUpdate) Kind() UpdateKind      { return UpdatePlayerShowRole }
func (*PlayerAnimationEndUpdate) Kind() UpdateKind  { return UpdatePlayerAnimationEnd }
func (*PlayerStatusUpdate) Kind() UpdateKind        { return UpdatePlayerStatus }
func (*SwitchTurnUpdate) Kind() UpdateKind          { return UpdateSwitchTurn }
func (*RequestStatusUpdate) Kind() UpdateKind       { return UpdateRequestStatus }
func (*StatusReadyUpdate) Kind() UpdateKind         { return UpdateStatusReady }
func (*GameFlagsUpdate) Kind() UpdateKind           { return UpdateGameFlags }
func (*PlaySoundUpdate) Kind() UpdateKind           { return UpdatePlaySound }
func (*StatusClearUpdate) Kind() UpdateKind         { return UpdateStatusClear }

func (u *MoveCardUpdate) AnimationDuration() Milliseconds         { return u.Duration }
func (u *MoveCubesUpdate) AnimationDuration() Milliseconds        { return u.Duration }
func (u *MoveScenarioDeckUpdate) AnimationDuration() Milliseconds { return u.Duration }
func (u *MoveTrainUpdate) AnimationDuration() Milliseconds        { return u.Duration }
func (u *DeckShuffledUpdate) AnimationDuration() Milliseconds     { return u.Duration }
func (u *ShowCardUpdate) AnimationDuration() Milliseconds         { return u.Duration }
func (u *HideCardUpdate) AnimationDuration() Milliseconds         { return u.Duration }
func (u *TapCardUpdate) AnimationDuration() Milliseconds          { return u.Duration }
func (u *FlashCardUpdate) AnimationDuration() Milliseconds        { return u.Duration }
func (u *ShortPauseUpdate) AnimationDuration() Milliseconds       { return u.Duration }
func (u *PlayerOrderUpdate) AnimationDuration() Milliseconds      { return u.Duration }
func (u *PlayerHpUpdate) AnimationDuration() Milliseconds         { return u.Duration }
func (u *PlayerShowRoleUpdate) AnimationDuration() Milliseconds   { return u.Duration }
