package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotLoaded is returned by Store.Get when no list is held for the user.
var ErrNotLoaded = errors.New("favorites not loaded")

// Store holds the local favorites lists, keyed by user id.
type Store interface {
	Get(ctx context.Context, userID string) (*Set, error)
	Replace(ctx context.Context, userID string, ids []string) error
	Add(ctx context.Context, userID, hotelID string) error
	Remove(ctx context.Context, userID, hotelID string) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.Mutex
	lists map[string]*Set
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[string]*Set)}
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lists[userID]
	if !ok {
		return nil, ErrNotLoaded
	}
	return NewSet(s.IDs()...), nil
}

func (m *MemoryStore) Replace(_ context.Context, userID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[userID] = NewSet(ids...)
	return nil
}

func (m *MemoryStore) Add(_ context.Context, userID, hotelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lists[userID]
	if !ok {
		return ErrNotLoaded
	}
	s.Add(hotelID)
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, userID, hotelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.lists[userID]
	if !ok {
		return ErrNotLoaded
	}
	s.Remove(hotelID)
	return nil
}

// RedisStore keeps each list in a Redis sorted set scored by insertion
// order.  A sentinel member at score 0 marks a loaded but empty list so it
// is not confused with a missing one.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

const loadedMarker = "\x00loaded"

// appendScript adds a member after the current last one, leaving an
// existing member where it is.  Returns -1 when the list is not loaded.
var appendScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return -1
end
local added = 0
if not redis.call('ZSCORE', KEYS[1], ARGV[1]) then
  local last = redis.call('ZRANGE', KEYS[1], -1, -1, 'WITHSCORES')
  local score = 1
  if #last == 2 then
    score = tonumber(last[2]) + 1
  end
  redis.call('ZADD', KEYS[1], score, ARGV[1])
  added = 1
end
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return added
`)

// NewRedisStore returns a Store backed by rdb.  Lists expire after ttl of
// inactivity and are then refetched from the backend.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "fav"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(userID string) string { return r.prefix + ":" + userID }

func (r *RedisStore) Get(ctx context.Context, userID string) (*Set, error) {
	members, err := r.rdb.ZRange(ctx, r.key(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrNotLoaded
	}
	s := NewSet()
	for _, m := range members {
		if m != loadedMarker {
			s.Add(m)
		}
	}
	return s, nil
}

func (r *RedisStore) Replace(ctx context.Context, userID string, ids []string) error {
	key := r.key(userID)
	members := make([]redis.Z, 0, len(ids)+1)
	members = append(members, redis.Z{Score: 0, Member: loadedMarker})
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, redis.Z{Score: float64(len(members)), Member: id})
	}
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.ZAdd(ctx, key, members...)
		p.Expire(ctx, key, r.ttl)
		return nil
	})
	return err
}

func (r *RedisStore) Add(ctx context.Context, userID, hotelID string) error {
	n, err := appendScript.Run(ctx, r.rdb, []string{r.key(userID)}, hotelID, r.ttl.Milliseconds()).Int64()
	if err != nil {
		return err
	}
	if n < 0 {
		return ErrNotLoaded
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, userID, hotelID string) error {
	key := r.key(userID)
	n, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotLoaded
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZRem(ctx, key, hotelID)
		p.Expire(ctx, key, r.ttl)
		return nil
	})
	return err
}
