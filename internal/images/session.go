package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoLastImage means no cat image was posted in the room recently enough.
var ErrNoLastImage = errors.New("no recent cat image in room")

const (
	lastImageKeyPrefix = "lagbot:cat:last:"
	lastImageTTL       = 10 * time.Minute
)

// SessionStore remembers the most recent cat image per room so follow-up
// rate/fave commands know what they refer to. Entries expire on their own.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: lastImageTTL}
}

// Remember records img as the room's current image.
func (s *SessionStore) Remember(ctx context.Context, room string, img *CatImage) error {
	payload, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.rdb.Set(ctx, lastImageKeyPrefix+room, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Last returns the room's current image, or ErrNoLastImage after expiry.
func (s *SessionStore) Last(ctx context.Context, room string) (*CatImage, error) {
	raw, err := s.rdb.Get(ctx, lastImageKeyPrefix+room).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoLastImage
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var img CatImage
	if err := json.Unmarshal(raw, &img); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &img, nil
}
