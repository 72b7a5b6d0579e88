// Package favorites persists the user's favorite-eatery flags. It is the
// persistence collaborator behind the IsFavorite predicate leaf; the engine
// only ever sees a snapshot of it.
package favorites

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/campusdine/eatery-availability/internal/domain"
)

const favoritesKey = "eatery:favorites"

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) domain.FavoriteRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) IsFavorite(ctx context.Context, eateryID int64) (bool, error) {
	return r.client.SIsMember(ctx, favoritesKey, member(eateryID)).Result()
}

func (r *redisRepository) SetFavorite(ctx context.Context, eateryID int64, favorite bool) error {
	if favorite {
		return r.client.SAdd(ctx, favoritesKey, member(eateryID)).Err()
	}
	return r.client.SRem(ctx, favoritesKey, member(eateryID)).Err()
}

func (r *redisRepository) Snapshot(ctx context.Context) (map[int64]bool, error) {
	members, err := r.client.SMembers(ctx, favoritesKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[int64]bool, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed favorite member %q: %w", m, err)
		}
		out[id] = true
	}
	return out, nil
}

func member(eateryID int64) string {
	return strconv.FormatInt(eateryID, 10)
}
