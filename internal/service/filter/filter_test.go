package filter

import (
	"testing"

	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/service/predicate"
)

var (
	origin = &domain.Point{Latitude: 42.4470, Longitude: -76.4850}

	// A few hundred meters from origin: comfortably under 10 minutes.
	nearby = domain.Eatery{
		ID:             1,
		Name:           "Terrace",
		CampusArea:     "central",
		Coordinates:    &domain.Point{Latitude: 42.4480, Longitude: -76.4840},
		PaymentMethods: []domain.PaymentMethod{domain.PaymentCredit, domain.PaymentBRB},
	}
	// Several kilometers away: well over 10 minutes on foot.
	faraway = domain.Eatery{
		ID:             2,
		Name:           "Vet School Cafe",
		CampusArea:     "east",
		Coordinates:    &domain.Point{Latitude: 42.4200, Longitude: -76.4300},
		PaymentMethods: []domain.PaymentMethod{domain.PaymentCash},
	}
	noCoords = domain.Eatery{
		ID:             3,
		Name:           "Food Truck",
		CampusArea:     "north",
		PaymentMethods: []domain.PaymentMethod{domain.PaymentCash},
	}
)

func accepted(f Filter, env predicate.Env, eateries ...domain.Eatery) []int64 {
	p := f.Predicate()
	var ids []int64
	for _, e := range eateries {
		if p.Evaluate(e, env) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func TestZeroFilterAcceptsEverything(t *testing.T) {
	got := accepted(Filter{}, predicate.Env{}, nearby, faraway, noCoords)
	if len(got) != 3 {
		t.Errorf("zero filter accepted %v, want all three", got)
	}
}

func TestDistanceToggle(t *testing.T) {
	f := Filter{Under10Minutes: true, Origin: origin}
	env := predicate.Env{}

	got := accepted(f, env, nearby, faraway, noCoords)
	if len(got) != 1 || got[0] != nearby.ID {
		t.Errorf("distance filter accepted %v, want only %d", got, nearby.ID)
	}
}

func TestDistanceToggleWithoutOriginFailsClosed(t *testing.T) {
	f := Filter{Under10Minutes: true}

	got := accepted(f, predicate.Env{}, nearby, faraway, noCoords)
	if len(got) != 0 {
		t.Errorf("distance filter without origin accepted %v, want none", got)
	}
}

func TestPaymentToggleIsDisjunction(t *testing.T) {
	f := Filter{PaymentMethods: []domain.PaymentMethod{domain.PaymentCash, domain.PaymentBRB}}

	got := accepted(f, predicate.Env{}, nearby, faraway, noCoords)
	if len(got) != 3 {
		t.Errorf("payment filter accepted %v, want all three (each matches one method)", got)
	}

	f = Filter{PaymentMethods: []domain.PaymentMethod{domain.PaymentSwipe}}
	got = accepted(f, predicate.Env{}, nearby, faraway, noCoords)
	if len(got) != 0 {
		t.Errorf("swipe-only filter accepted %v, want none", got)
	}
}

func TestFavoriteToggle(t *testing.T) {
	f := Filter{FavoritesOnly: true}
	env := predicate.Env{Favorites: map[int64]bool{faraway.ID: true}}

	got := accepted(f, env, nearby, faraway, noCoords)
	if len(got) != 1 || got[0] != faraway.ID {
		t.Errorf("favorite filter accepted %v, want only %d", got, faraway.ID)
	}
}

func TestAreaToggle(t *testing.T) {
	f := Filter{CampusAreas: []string{"north", "east"}}

	got := accepted(f, predicate.Env{}, nearby, faraway, noCoords)
	if len(got) != 2 {
		t.Errorf("area filter accepted %v, want the north and east eateries", got)
	}
}

// Enabling an additional toggle must never grow the accepted set.
func TestTogglesAreMonotonic(t *testing.T) {
	env := predicate.Env{Favorites: map[int64]bool{nearby.ID: true}}
	all := []domain.Eatery{nearby, faraway, noCoords}

	base := Filter{Origin: origin}
	variants := []struct {
		name string
		next Filter
	}{
		{"add distance", Filter{Origin: origin, Under10Minutes: true}},
		{"add payment", Filter{Origin: origin, PaymentMethods: []domain.PaymentMethod{domain.PaymentCredit}}},
		{"add favorite", Filter{Origin: origin, FavoritesOnly: true}},
		{"add area", Filter{Origin: origin, CampusAreas: []string{"central"}}},
	}

	baseSet := map[int64]bool{}
	for _, id := range accepted(base, env, all...) {
		baseSet[id] = true
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			for _, id := range accepted(v.next, env, all...) {
				if !baseSet[id] {
					t.Errorf("tightened filter accepted %d which the looser filter rejected", id)
				}
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"zero filter", Filter{}, false},
		{"origin alone is not a toggle", Filter{Origin: origin}, false},
		{"distance toggle", Filter{Under10Minutes: true}, true},
		{"payment methods", Filter{PaymentMethods: []domain.PaymentMethod{domain.PaymentCash}}, true},
		{"favorites", Filter{FavoritesOnly: true}, true},
		{"areas", Filter{CampusAreas: []string{"west"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
