package protocol

import "time"

// CardID identifies a card. IDs are assigned by the server, globally unique,
// and never reused while the card is live.
type CardID int

// PlayerID identifies a player within a single game.
type PlayerID int

// Milliseconds is a wire-level duration. Updates carrying one are
// duration-bearing: the sequencer suspends the queue until it elapses.
type Milliseconds int

// Duration converts the wire value to a time.Duration.
func (m Milliseconds) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// PocketType names an ordered card slot, either table-level or player-scoped.
type PocketType string

const (
	PocketNone PocketType = "none"

	// Player-scoped pockets
	PocketPlayerHand      PocketType = "player_hand"
	PocketPlayerTable     PocketType = "player_table"
	PocketPlayerCharacter PocketType = "player_character"
	PocketPlayerBackup    PocketType = "player_backup"

	// Table-level pockets
	PocketMainDeck        PocketType = "main_deck"
	PocketDiscardPile     PocketType = "discard_pile"
	PocketSelection       PocketType = "selection"
	PocketShopDeck        PocketType = "shop_deck"
	PocketShopDiscard     PocketType = "shop_discard"
	PocketShopSelection   PocketType = "shop_selection"
	PocketHiddenDeck      PocketType = "hidden_deck"
	PocketScenarioDeck    PocketType = "scenario_deck"
	PocketScenarioCard    PocketType = "scenario_card"
	PocketWwsScenarioDeck PocketType = "wws_scenario_deck"
	PocketWwsScenarioCard PocketType = "wws_scenario_card"
	PocketButtonRow       PocketType = "button_row"
	PocketStations        PocketType = "stations"
	PocketTrainDeck       PocketType = "train_deck"
	PocketTrain           PocketType = "train"
)

// IsPlayerPocket reports whether the pocket belongs to a player rather than
// the table.
func (p PocketType) IsPlayerPocket() bool {
	switch p {
	case PocketPlayerHand, PocketPlayerTable, PocketPlayerCharacter, PocketPlayerBackup:
		return true
	}
	return false
}

// DeckType tags a card with its deck of origin. It only affects backface art.
type DeckType string

const (
	DeckNone           DeckType = "none"
	DeckMain           DeckType = "main_deck"
	DeckCharacter      DeckType = "character"
	DeckRole           DeckType = "role"
	DeckGoldRush       DeckType = "goldrush"
	DeckHighNoon       DeckType = "highnoon"
	DeckFistfulOfCards DeckType = "fistfulofcards"
	DeckWildWestShow   DeckType = "wildwestshow"
	DeckStation        DeckType = "station"
	DeckLocomotive     DeckType = "locomotive"
	DeckTrain          DeckType = "train"
)

// PlayerRole is a player's role. It stays RoleUnknown until the server
// reveals it with player_show_role.
type PlayerRole string

const (
	RoleUnknown    PlayerRole = "unknown"
	RoleSheriff    PlayerRole = "sheriff"
	RoleDeputy     PlayerRole = "deputy"
	RoleOutlaw     PlayerRole = "outlaw"
	RoleRenegade   PlayerRole = "renegade"
	RoleDeputy3p   PlayerRole = "deputy_3p"
	RoleOutlaw3p   PlayerRole = "outlaw_3p"
	RoleRenegade3p PlayerRole = "renegade_3p"
)

type CardSuit string

const (
	SuitNone     CardSuit = "none"
	SuitHearts   CardSuit = "hearts"
	SuitDiamonds CardSuit = "diamonds"
	SuitClubs    CardSuit = "clubs"
	SuitSpades   CardSuit = "spades"
)

type CardRank string

const (
	RankNone CardRank = "none"
	Rank2    CardRank = "rank_2"
	Rank3    CardRank = "rank_3"
	Rank4    CardRank = "rank_4"
	Rank5    CardRank = "rank_5"
	Rank6    CardRank = "rank_6"
	Rank7    CardRank = "rank_7"
	Rank8    CardRank = "rank_8"
	Rank9    CardRank = "rank_9"
	Rank10   CardRank = "rank_10"
	RankJ    CardRank = "rank_J"
	RankQ    CardRank = "rank_Q"
	RankK    CardRank = "rank_K"
	RankA    CardRank = "rank_A"
)

type CardColor string

const (
	ColorNone   CardColor = "none"
	ColorBrown  CardColor = "brown"
	ColorBlue   CardColor = "blue"
	ColorGreen  CardColor = "green"
	ColorBlack  CardColor = "black"
	ColorOrange CardColor = "orange"
	ColorTrain  CardColor = "train"
)

// GameFlagGameOver marks a finished game in the table-level status flags.
const GameFlagGameOver = "game_over"
