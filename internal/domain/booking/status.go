package booking

import (
	"slices"

	"handyhub/internal/domain"
	"handyhub/internal/pkg/apperr"
)

// Status is the booking lifecycle:
//
//	pending ──► accepted ──► in_progress ──► completed
//	   │            │              │
//	   └────────────┴──────────────┴───────► cancelled
//
// completed and cancelled are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool { return slices.Contains(Statuses, s) }

func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusCancelled }

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", apperr.Wrap(apperr.ErrValidation, "unknown booking status %q", s)
	}
	return st, nil
}

type edge struct {
	from, to Status
}

// transitions maps each permitted edge to the roles allowed to take it.
// Anything absent is denied.
var transitions = map[edge][]domain.Role{
	{StatusPending, StatusAccepted}:     {domain.RoleHandyman, domain.RoleAdmin},
	{StatusPending, StatusCancelled}:    {domain.RoleHandyman, domain.RoleAdmin},
	{StatusAccepted, StatusInProgress}:  {domain.RoleHandyman, domain.RoleAdmin},
	{StatusAccepted, StatusCancelled}:   {domain.RoleAdmin},
	{StatusInProgress, StatusCompleted}: {domain.RoleHandyman, domain.RoleAdmin},
	{StatusInProgress, StatusCancelled}: {domain.RoleAdmin},
}

// CanTransition is total over every status pair and role.
func CanTransition(from, to Status, role domain.Role) bool {
	roles, ok := transitions[edge{from, to}]
	return ok && slices.Contains(roles, role)
}

// AllowedTargets returns the statuses role may move a booking to from the
// given status, in lifecycle order.
func AllowedTargets(from Status, role domain.Role) []Status {
	var out []Status
	for _, to := range Statuses {
		if CanTransition(from, to, role) {
			out = append(out, to)
		}
	}
	return out
}

// ActorState is what the validator needs to know about the caller beyond
// the role. Eligible is whether a handyman is verified and active; it is
// ignored for other roles.
type ActorState struct {
	domain.Actor
	Eligible bool
}

// Check validates moving b to the requested status on behalf of a. It
// adds ownership, handyman standing and the handyman-required invariant
// to the role table.
func Check(b *Booking, to Status, a ActorState) error {
	if !to.Valid() {
		return apperr.Wrap(apperr.ErrValidation, "unknown booking status %q", to)
	}
	if !CanTransition(b.Status, to, a.Role) {
		return apperr.Wrap(ErrTransitionDenied, "%s cannot move booking %d from %s to %s", roleName(a.Role), b.ID, b.Status, to)
	}

	if a.Role == domain.RoleHandyman {
		if !b.AssignedTo(a.ID) {
			return ErrNotAssigned
		}
		if !a.Eligible {
			return ErrHandymanNotEligible
		}
	}

	switch to {
	case StatusAccepted, StatusInProgress, StatusCompleted:
		if !b.HasHandyman() {
			return ErrHandymanRequired
		}
	}
	return nil
}

func roleName(r domain.Role) string {
	if r == "" {
		return "anonymous"
	}
	return string(r)
}
