package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
)

var (
	// ErrNothingScanned means Confirm or ToggleExclude was called before
	// any successful scan.
	ErrNothingScanned = errors.New("no scan is active")
	// ErrNoMembersSelected means every roster member was excluded.
	ErrNoMembersSelected = errors.New("cannot confirm a check-in with zero members")
	// ErrSubmissionInFlight means a Confirm is already running. The
	// second press is dropped, not queued.
	ErrSubmissionInFlight = errors.New("a check-in submission is already in flight")
)

// RoundAPI is the slice of Client the workflow needs.
type RoundAPI interface {
	Lookup(ctx context.Context, eventID uint, roundNo int, rawCode string) (domain.LookupResult, error)
	CheckIn(ctx context.Context, eventID uint, roundNo int, userCodes []string, teamCode *string) (domain.CheckInSummary, error)
}

// CheckInWorkflow drives one desk's scan-review-confirm loop for a fixed
// round. A scan replaces the previous one; confirming submits the
// non-excluded members and resets so the desk is ready for the next scan.
type CheckInWorkflow struct {
	api     RoundAPI
	eventID uint
	roundNo int

	mu       sync.Mutex
	current  *domain.LookupResult
	excluded map[string]bool
	inFlight bool
}

func NewCheckInWorkflow(api RoundAPI, eventID uint, roundNo int) *CheckInWorkflow {
	return &CheckInWorkflow{
		api:     api,
		eventID: eventID,
		roundNo: roundNo,
	}
}

// Scan resolves a raw payload and makes its result the active selection.
// A failed scan leaves the previous selection untouched.
func (w *CheckInWorkflow) Scan(ctx context.Context, raw string) (domain.LookupResult, error) {
	result, err := w.api.Lookup(ctx, w.eventID, w.roundNo, raw)
	if err != nil {
		return domain.LookupResult{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.current = &result
	w.excluded = make(map[string]bool)

	return result, nil
}

// ToggleExclude flips a roster member in or out of the pending check-in.
// Only meaningful for team scans; the member must be on the active roster.
func (w *CheckInWorkflow) ToggleExclude(code string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		return ErrNothingScanned
	}

	for _, member := range w.roster() {
		if member.User.Code == code {
			w.excluded[code] = !w.excluded[code]
			return nil
		}
	}

	return fmt.Errorf("%v is not on the active roster", code)
}

// Selected returns the codes that would be submitted right now.
func (w *CheckInWorkflow) Selected() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.selectedLocked()
}

// Confirm submits the selection. While a submission is in flight further
// Confirm calls fail fast instead of double-submitting. On success the
// workflow resets for the next scan.
func (w *CheckInWorkflow) Confirm(ctx context.Context) (domain.CheckInSummary, error) {
	w.mu.Lock()
	if w.current == nil {
		w.mu.Unlock()
		return domain.CheckInSummary{}, ErrNothingScanned
	}
	if w.inFlight {
		w.mu.Unlock()
		return domain.CheckInSummary{}, ErrSubmissionInFlight
	}

	codes := w.selectedLocked()
	if len(codes) == 0 {
		w.mu.Unlock()
		return domain.CheckInSummary{}, ErrNoMembersSelected
	}

	var teamCode *string
	if w.current.Mode == domain.LookupTeam && w.current.Team != nil {
		tc := w.current.Team.TeamCode
		teamCode = &tc
	}

	w.inFlight = true
	w.mu.Unlock()

	summary, err := w.api.CheckIn(ctx, w.eventID, w.roundNo, codes, teamCode)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.inFlight = false
	if err != nil {
		// The selection stays so the operator can retry or adjust.
		return domain.CheckInSummary{}, err
	}

	w.current = nil
	w.excluded = nil

	return summary, nil
}

// Reset drops the active selection.
func (w *CheckInWorkflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.current = nil
	w.excluded = nil
}

func (w *CheckInWorkflow) roster() []domain.RosterEntry {
	if w.current == nil {
		return nil
	}

	switch w.current.Mode {
	case domain.LookupSolo:
		if w.current.Solo != nil {
			return []domain.RosterEntry{*w.current.Solo}
		}
	case domain.LookupTeam:
		if w.current.Team != nil {
			return w.current.Team.Members
		}
	}

	return nil
}

func (w *CheckInWorkflow) selectedLocked() []string {
	var codes []string
	for _, member := range w.roster() {
		if !w.excluded[member.User.Code] {
			codes = append(codes, member.User.Code)
		}
	}

	return codes
}
