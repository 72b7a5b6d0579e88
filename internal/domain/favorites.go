package domain

import "context"

// FavoriteRepository is the persistence collaborator boundary for the
// favorite flag. The engine itself never touches it during predicate
// evaluation; callers snapshot the set up front so evaluation stays pure.
type FavoriteRepository interface {
	IsFavorite(ctx context.Context, eateryID int64) (bool, error)
	SetFavorite(ctx context.Context, eateryID int64, favorite bool) error
	// Snapshot returns the full favorite set as a membership map.
	Snapshot(ctx context.Context) (map[int64]bool, error)
}
