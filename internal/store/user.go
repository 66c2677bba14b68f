package store

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/buddyai-core/server/internal/model"
)

// UserStore persists customer profiles.
type UserStore struct {
	c collection
}

func NewUserStore(rdb redis.Cmdable) *UserStore {
	return &UserStore{c: newCollection(rdb, "users")}
}

// GetByUserID returns nil when no profile exists for the id.
func (s *UserStore) GetByUserID(ctx context.Context, userID int) (*model.User, error) {
	var u model.User
	ok, err := s.c.get(ctx, strconv.Itoa(userID), &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) Save(ctx context.Context, u model.User) error {
	return s.c.put(ctx, strconv.Itoa(u.UserID), u)
}
