package table

import "github.com/bangfree/bang-client-go/internal/protocol"

// PlayerAnimationKind discriminates player-level animations.
type PlayerAnimationKind string

const (
	PlayerAnimRoleFlip PlayerAnimationKind = "role_flip"
	PlayerAnimHpChange PlayerAnimationKind = "hp_change"
)

// PlayerAnimation is the in-flight animation tag of a player.
type PlayerAnimation struct {
	Kind     PlayerAnimationKind
	Duration protocol.Milliseconds
	// PrevHP is the hit-point count before the change, PlayerAnimHpChange
	// only, so the renderer can animate the delta.
	PrevHP int
	// PrevRole is the role shown before the flip, PlayerAnimRoleFlip only.
	PrevRole protocol.PlayerRole
}

// Player is one player record with its ordered pockets and status block.
type Player struct {
	ID     protocol.PlayerID
	UserID int

	Hand      []protocol.CardID
	Table     []protocol.CardID
	Character []protocol.CardID
	Backup    []protocol.CardID

	HP          int
	Gold        int
	Role        protocol.PlayerRole
	Flags       []string
	RangeMod    int
	WeaponRange int
	DistanceMod int

	Animation *PlayerAnimation
}

// HasFlag reports whether the player's status flags contain the given flag.
func (p *Player) HasFlag(flag string) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// pocket returns the slice backing one of the player's pockets, or false for
// a table-level pocket name.
func (p *Player) pocket(name protocol.PocketType) (*[]protocol.CardID, bool) {
	switch name {
	case protocol.PocketPlayerHand:
		return &p.Hand, true
	case protocol.PocketPlayerTable:
		return &p.Table, true
	case protocol.PocketPlayerCharacter:
		return &p.Character, true
	case protocol.PocketPlayerBackup:
		return &p.Backup, true
	}
	return nil, false
}

func (p *Player) clone() *Player {
	out := *p
	out.Hand = cloneIDs(p.Hand)
	out.Table = cloneIDs(p.Table)
	out.Character = cloneIDs(p.Character)
	out.Backup = cloneIDs(p.Backup)
	out.Flags = cloneStrings(p.Flags)
	if p.Animation != nil {
		anim := *p.Animation
		out.Animation = &anim
	}
	return &out
}

func cloneIDs(in []protocol.CardID) []protocol.CardID {
	if in == nil {
		return nil
	}
	out := make([]protocol.CardID, len(in))
	copy(out, in)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
