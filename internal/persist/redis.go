package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lucas/colonysim/internal/colony"
)

// Redis manages the Redis client used for cross-instance tick pub/sub and a
// warm snapshot cache, the persist-layer analogue of the teacher's
// db.Redis wrapping game state caching and tick fan-out.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new Redis client. An empty addr yields a no-op Redis.
func NewRedis(addr string) (*Redis, error) {
	if addr == "" {
		return &Redis{}, nil
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Println("connected to Redis")
	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	if r != nil && r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *Redis) IsConnected() bool {
	return r != nil && r.client != nil
}

func snapshotKey(colonyID uuid.UUID) string { return fmt.Sprintf("colonysim:snapshot:%s", colonyID) }
func tickChannel(colonyID uuid.UUID) string { return fmt.Sprintf("colonysim:tick:%s", colonyID) }

// CacheSnapshot stores the latest snapshot for fast reads by any process
// instance fronting the same colony.
func (r *Redis) CacheSnapshot(ctx context.Context, colonyID uuid.UUID, snap colony.ColonySnapshot) error {
	if !r.IsConnected() {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, snapshotKey(colonyID), data, 0).Err()
}

// CachedSnapshot fetches the cached snapshot, if any.
func (r *Redis) CachedSnapshot(ctx context.Context, colonyID uuid.UUID) (colony.ColonySnapshot, bool, error) {
	var snap colony.ColonySnapshot
	if !r.IsConnected() {
		return snap, false, nil
	}
	data, err := r.client.Get(ctx, snapshotKey(colonyID)).Bytes()
	if err == redis.Nil {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false, err
	}
	return snap, true, nil
}

// TickMessage is the payload published to a colony's tick channel, picked
// up by any other process instance running a WS hub for the same colony.
type TickMessage struct {
	Tick          int                  `json:"tick"`
	Notifications []colony.Notification `json:"notifications"`
}

// PublishTick fans a tick's notifications out over Redis pub/sub.
func (r *Redis) PublishTick(ctx context.Context, colonyID uuid.UUID, tick int, notifications []colony.Notification) error {
	if !r.IsConnected() {
		return nil
	}
	data, err := json.Marshal(TickMessage{Tick: tick, Notifications: notifications})
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, tickChannel(colonyID), data).Err()
}

// SubscribeTicks returns a channel of decoded tick messages for a colony.
// The caller must cancel ctx to stop the subscription goroutine.
func (r *Redis) SubscribeTicks(ctx context.Context, colonyID uuid.UUID) (<-chan TickMessage, error) {
	if !r.IsConnected() {
		ch := make(chan TickMessage)
		close(ch)
		return ch, nil
	}
	sub := r.client.Subscribe(ctx, tickChannel(colonyID))
	out := make(chan TickMessage, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var tm TickMessage
				if err := json.Unmarshal([]byte(msg.Payload), &tm); err != nil {
					continue
				}
				out <- tm
			}
		}
	}()
	return out, nil
}
