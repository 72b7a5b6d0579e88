// Package filter lowers the user-facing search toggles into a predicate
// tree. This is the only place that knows the lowering, so new toggles can
// be added without touching predicate evaluation.
package filter

import (
	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/service/predicate"
)

// under10WalkMinutes is the walk budget behind the "under 10 minutes"
// distance toggle.
const under10WalkMinutes = 10

// Filter is a flat struct of independent toggles. The zero value accepts
// every eatery.
type Filter struct {
	Under10Minutes bool
	PaymentMethods []domain.PaymentMethod
	FavoritesOnly  bool
	CampusAreas    []string

	// Origin is the user's location, required by the distance toggle.
	Origin *domain.Point
}

// Predicate lowers the toggles into a single tree. Each toggle lowers
// independently and the branches are conjoined. A disabled toggle lowers to
// True; the distance toggle without an origin lowers to False, rejecting
// everything rather than silently accepting it.
func (f Filter) Predicate() predicate.Predicate {
	branches := predicate.And{
		f.distanceBranch(),
		f.paymentBranch(),
		f.favoriteBranch(),
		f.areaBranch(),
	}
	return branches
}

func (f Filter) distanceBranch() predicate.Predicate {
	if !f.Under10Minutes {
		return predicate.True{}
	}
	if f.Origin == nil {
		return predicate.False{}
	}
	return predicate.WithinWalkMinutes{Minutes: under10WalkMinutes, Origin: f.Origin}
}

func (f Filter) paymentBranch() predicate.Predicate {
	if len(f.PaymentMethods) == 0 {
		return predicate.True{}
	}
	or := make(predicate.Or, 0, len(f.PaymentMethods))
	for _, m := range f.PaymentMethods {
		or = append(or, predicate.AcceptsPayment{Method: m})
	}
	return or
}

func (f Filter) favoriteBranch() predicate.Predicate {
	if !f.FavoritesOnly {
		return predicate.True{}
	}
	return predicate.IsFavorite{}
}

func (f Filter) areaBranch() predicate.Predicate {
	if len(f.CampusAreas) == 0 {
		return predicate.True{}
	}
	or := make(predicate.Or, 0, len(f.CampusAreas))
	for _, a := range f.CampusAreas {
		or = append(or, predicate.CampusArea{Area: a})
	}
	return or
}

// Enabled reports whether any toggle deviates from its default. It exists
// for the "clear filters" affordance upstream and plays no part in
// predicate evaluation.
func (f Filter) Enabled() bool {
	return f.Under10Minutes ||
		len(f.PaymentMethods) > 0 ||
		f.FavoritesOnly ||
		len(f.CampusAreas) > 0
}
