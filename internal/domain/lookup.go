package domain

type LookupMode string

const (
	LookupSolo LookupMode = "SOLO"
	LookupTeam LookupMode = "TEAM"
)

// RosterEntry is one member of a looked-up team, with the flags an
// operator needs before confirming a check-in.
type RosterEntry struct {
	User      User `json:"user"`
	Eligible  bool `json:"eligible"`
	CheckedIn bool `json:"checked_in"`
}

// LookupResult resolves a scanned code for a given round. The same code
// space covers users and teams, so the mode is only known once the
// lookup returns: exactly one of Solo and Team is set.
type LookupResult struct {
	Mode LookupMode   `json:"mode"`
	Solo *RosterEntry `json:"solo,omitempty"`
	Team *TeamLookup  `json:"team,omitempty"`
}

type TeamLookup struct {
	TeamID   uint          `json:"team_id"`
	TeamCode string        `json:"team_code"`
	Name     string        `json:"name"`
	Members  []RosterEntry `json:"members"`
}
