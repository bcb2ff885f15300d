// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The schema itself, including every foreign key and its ON DELETE CASCADE, is created by
// the embedded migrations in internal/database; the struct tags below only describe the
// columns so GORM reads and writes them correctly.
//
// The data model represents a small competitive league where:
//   - Teams own Players
//   - Matches are stored once per team side of an encounter on a Map
//   - PlayerStats record a player's kills, deaths and bombs in one Match row
//   - Captains log in and may edit the single Team linked to them by a TeamOwnership row
//
// Every child-to-parent reference cascades on delete; there are no soft deletes.
package models

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants.

// Role is the closed set of session roles. Anything else is rejected at login.
type Role string

const (
	RoleVisitor Role = "visitor" // Read-only access
	RoleCaptain Role = "captain" // Can edit the one team linked to them
	RoleAdmin   Role = "admin"   // Can edit anything
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleVisitor, RoleCaptain, RoleAdmin:
		return true
	default:
		return false
	}
}

// Side is a free-form classification of a team. No behaviour depends on it.
type Side string

const (
	SideMine     Side = "my"  // One of "our" teams
	SideOpponent Side = "opp" // An opposition team
)

// --- Business constants ---

const (
	MaxNameLength     = 35 // Team, player, map and captain names
	MaxPlayersPerTeam = 40 // Roster cap for non-administrators
	MinRoundsPerMatch = 4  // Combined rounds of both sides

	// The single administrator credential pair.
	AdminUsername = "admin"
	AdminPassword = "admin"
)

// --- Models ---

// Team is a competing side. Deleting a team removes its players, its match rows and,
// through those, every PlayerStat referencing them.
type Team struct {
	ID   uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string  `gorm:"not null" json:"name"`
	Logo *string `json:"logo"`                              // Opaque file name inside the images directory; nil when unset
	Side Side    `gorm:"not null;default:'my'" json:"side"` // "my" or "opp"
}

func (Team) TableName() string { return "teams" }

// Player belongs to exactly one team.
type Player struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID uint    `gorm:"not null;index" json:"team_id"`
	Name   string  `gorm:"not null" json:"name"`
	Logo   *string `json:"logo"` // Portrait file name; nil when unset
}

func (Player) TableName() string { return "players" }

// Map is a playable map. Names are unique across the store, compared case-sensitively.
type Map struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Image string `gorm:"default:''" json:"image"`
}

func (Map) TableName() string { return "maps" }

// Match is one team's view of an encounter. The match recorder always writes the two
// sides of an encounter together with won/lost mirrored.
type Match struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID     uint `gorm:"not null;index" json:"team_id"`
	MapID      uint `gorm:"not null;index" json:"map_id"`
	RoundsWon  int  `gorm:"not null;default:0" json:"rounds_won"`
	RoundsLost int  `gorm:"not null;default:0" json:"rounds_lost"`
}

func (Match) TableName() string { return "matches" }

// Won reports a round-differential win for this side.
func (m Match) Won() bool {
	return m.RoundsWon > m.RoundsLost
}

// PlayerStat holds one player's numbers for one Match row of their own team.
type PlayerStat struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID  uint `gorm:"not null;index" json:"match_id"`
	PlayerID uint `gorm:"not null;index" json:"player_id"`
	Kills    int  `gorm:"default:0" json:"kills"`
	Deaths   int  `gorm:"default:0" json:"deaths"`
	Bombs    int  `gorm:"default:0" json:"bombs"`
}

func (PlayerStat) TableName() string { return "playerstats" }

// Captain is a self-registered login identity.
// Passwords are stored and compared as plain text.
type Captain struct {
	Username string `gorm:"primaryKey" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

func (Captain) TableName() string { return "captains" }

// TeamOwnership links one captain to one team. Both columns are unique, so a team has at
// most one captain and a captain at most one team.
type TeamOwnership struct {
	TeamID  uint   `gorm:"uniqueIndex" json:"team_id"`
	Captain string `gorm:"uniqueIndex;not null" json:"captain"`
}

func (TeamOwnership) TableName() string { return "teamowners" }
