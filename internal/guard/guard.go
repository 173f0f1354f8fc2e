// Package guard keeps a second cost submission for the same identity and
// vendor from running while the first is still writing.
package guard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// ErrHeld is returned by Acquire when another holder owns the key.
var ErrHeld = errors.New("guard: key is held")

// Guard hands out short-lived exclusive leases on string keys.
type Guard interface {
	// Acquire takes the key for at most ttl. It returns ErrHeld when the key
	// is taken; other errors mean the guard itself failed.
	Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error)
}

// Lease is a held key. Release is safe to call more than once.
type Lease struct {
	once    sync.Once
	release func(ctx context.Context) error
}

// Release gives the key back.
func (l *Lease) Release(ctx context.Context) error {
	if l == nil || l.release == nil {
		return nil
	}
	var err error
	l.once.Do(func() { err = l.release(ctx) })
	return err
}

func validate(key string, ttl time.Duration) error {
	if key == "" {
		return errors.New("guard: key is empty")
	}
	if ttl <= 0 {
		return errors.New("guard: ttl must be positive")
	}
	return nil
}

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// lockClient is the subset of *redis.Client the guard uses.
type lockClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisGuard shares leases across server instances through Redis. A lease
// expires on its own after ttl if the holder dies before releasing it.
type RedisGuard struct {
	client lockClient
	prefix string
}

// NewRedisGuard builds a guard from a redis:// URL.
func NewRedisGuard(url string) (*RedisGuard, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	return newRedisGuard(client), client, nil
}

func newRedisGuard(client lockClient) *RedisGuard {
	return &RedisGuard{client: client, prefix: "neighborly:"}
}

// Acquire sets the key only if absent, tagged with a random token so that
// release cannot delete a lease that expired and was taken by someone else.
func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error) {
	if err := validate(key, ttl); err != nil {
		return nil, err
	}
	full := g.prefix + key
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lease{release: func(ctx context.Context) error {
		return g.client.Eval(ctx, releaseScript, []string{full}, token).Err()
	}}, nil
}

// LocalGuard keeps leases in process memory. It is used when no Redis URL is
// configured, which is only correct for a single server instance.
type LocalGuard struct {
	mu     sync.Mutex
	now    func() time.Time
	leases map[string]localLease
}

type localLease struct {
	token   string
	expires time.Time
}

// NewLocalGuard creates an empty LocalGuard.
func NewLocalGuard() *LocalGuard {
	return &LocalGuard{now: time.Now, leases: make(map[string]localLease)}
}

// Acquire takes the key unless a live lease holds it.
func (g *LocalGuard) Acquire(_ context.Context, key string, ttl time.Duration) (*Lease, error) {
	if err := validate(key, ttl); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if cur, ok := g.leases[key]; ok && now.Before(cur.expires) {
		return nil, ErrHeld
	}
	token := uuid.NewString()
	g.leases[key] = localLease{token: token, expires: now.Add(ttl)}
	return &Lease{release: func(context.Context) error {
		g.mu.Lock()
		defer g.mu.Unlock()
		if cur, ok := g.leases[key]; ok && cur.token == token {
			delete(g.leases, key)
		}
		return nil
	}}, nil
}
