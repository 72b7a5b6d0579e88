// Package predicate implements a composable boolean expression over eatery
// attributes. Evaluation is pure and total: a predicate never errors and
// never mutates the eatery or the environment, so a malformed input can at
// worst evaluate to false.
package predicate

import (
	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/service/timing"
)

// Env carries the external lookups a predicate may need, snapshotted before
// evaluation so that evaluating the tree performs no I/O. A nil favorites
// map simply means nothing is a favorite.
type Env struct {
	Favorites map[int64]bool
}

// Predicate is a node in the expression tree: either a combinator (And/Or)
// or a leaf testing one eatery attribute.
type Predicate interface {
	Evaluate(e domain.Eatery, env Env) bool
}

// True is the identity element for And; the aggregator uses it to neutrally
// switch a branch off.
type True struct{}

func (True) Evaluate(domain.Eatery, Env) bool { return true }

// False is the identity element for Or, and the fail-closed branch for
// toggles whose required inputs are missing.
type False struct{}

func (False) Evaluate(domain.Eatery, Env) bool { return false }

// And is the conjunction of its children; the empty conjunction is true.
type And []Predicate

func (a And) Evaluate(e domain.Eatery, env Env) bool {
	for _, p := range a {
		if !p.Evaluate(e, env) {
			return false
		}
	}
	return true
}

// Or is the disjunction of its children; the empty disjunction is false.
type Or []Predicate

func (o Or) Evaluate(e domain.Eatery, env Env) bool {
	for _, p := range o {
		if p.Evaluate(e, env) {
			return true
		}
	}
	return false
}

// AcceptsPayment is true iff the eatery accepts the given tender type.
type AcceptsPayment struct {
	Method domain.PaymentMethod
}

func (p AcceptsPayment) Evaluate(e domain.Eatery, _ Env) bool {
	return e.AcceptsPayment(p.Method)
}

// IsFavorite consults the favorite-set snapshot in the environment; the
// flag lives in the persistence collaborator, not on the eatery.
type IsFavorite struct{}

func (IsFavorite) Evaluate(e domain.Eatery, env Env) bool {
	return env.Favorites[e.ID]
}

// CampusArea is an exact match on the eatery's campus-area field.
type CampusArea struct {
	Area string
}

func (p CampusArea) Evaluate(e domain.Eatery, _ Env) bool {
	return e.CampusArea == p.Area
}

// WithinWalkMinutes is true iff the whole-minute walk time from Origin is
// at most Minutes. Missing coordinates on either side fail closed.
type WithinWalkMinutes struct {
	Minutes int
	Origin  *domain.Point
}

func (p WithinWalkMinutes) Evaluate(e domain.Eatery, _ Env) bool {
	walk, ok := timing.WalkTime(p.Origin, e.Coordinates)
	if !ok {
		return false
	}
	return timing.WalkMinutes(walk) <= p.Minutes
}
