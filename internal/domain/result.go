package domain

type RoundOutcome string

const (
	OutcomeQualified    RoundOutcome = "QUALIFIED"
	OutcomeEliminated   RoundOutcome = "ELIMINATED"
	OutcomeDisqualified RoundOutcome = "DISQUALIFIED"
)

// ValidOutcome reports whether s names one of the three round outcomes.
func ValidOutcome(s string) bool {
	switch RoundOutcome(s) {
	case OutcomeQualified, OutcomeEliminated, OutcomeDisqualified:
		return true
	}
	return false
}

// ResultAssignment is one item of a bulk result submission: a participant
// or team code plus the outcome of the round for it. Exactly one of
// UserCode and TeamCode is set.
type ResultAssignment struct {
	UserCode string       `json:"user_id,omitempty"`
	TeamCode string       `json:"team_id,omitempty"`
	Outcome  RoundOutcome `json:"status"`
}

// ItemError records why a single item of a batch mutation failed.
type ItemError struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// BulkOperationResult is the envelope for any batch mutation: which
// inputs succeeded and which failed, with a human-readable reason each.
// A batch never aborts on the first failure.
type BulkOperationResult struct {
	Attempted  int         `json:"attempted"`
	Succeeded  int         `json:"succeeded"`
	Successes  []string    `json:"successes"`
	UserErrors []ItemError `json:"user_errors,omitempty"`
	TeamErrors []ItemError `json:"team_errors,omitempty"`
}
