package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// snapshotKey is the sole key pattern this package needs: one game's
// serialized snapshot, keyed by match ID. The teacher's orders/ready/timer/
// draw-vote keys have no analog once the engine is match-scoped rather
// than lobby-scoped.
func snapshotKey(matchID string) string { return "umpire:match:" + matchID + ":snapshot" }

// SetSnapshot stores a serialized Game snapshot with no expiry; callers
// that want a TTL should wrap this at the service layer.
func (c *Client) SetSnapshot(ctx context.Context, matchID string, data []byte) error {
	if err := c.rdb.Set(ctx, snapshotKey(matchID), data, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves a match's snapshot, or nil if none is cached.
func (c *Client) GetSnapshot(ctx context.Context, matchID string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return data, nil
}

// DeleteSnapshot removes a match's cached snapshot.
func (c *Client) DeleteSnapshot(ctx context.Context, matchID string) error {
	if err := c.rdb.Del(ctx, snapshotKey(matchID)).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
