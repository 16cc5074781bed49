// Package redis adapts a go-redis client to the engine boundary.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	eng "github.com/rahil-p/connect-redis-session/engine"
)

var ErrNilClient = errors.New("redis engine: nil client")

type Engine struct {
	rdb         goredis.UniversalClient
	closeClient bool

	mu      sync.Mutex
	scripts map[string]*goredis.Script
}

var _ eng.Engine = (*Engine)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this engine exclusively owns the client
}

func New(cfg Config) (*Engine, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Engine{
		rdb:         cfg.Client,
		closeClient: cfg.CloseClient,
		scripts:     make(map[string]*goredis.Script),
	}, nil
}

func (e *Engine) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := e.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err // transport/server error
	}
	return v, true, nil
}

func (e *Engine) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // non-positive TTLs mean "no expiry" per engine contract
	}
	return e.rdb.Set(ctx, key, value, ttl).Err()
}

// SetMulti writes every key in a MULTI/EXEC transaction so readers observe
// either none or all of the batch.
func (e *Engine) SetMulti(ctx context.Context, keys []string, value string, ttl time.Duration) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := e.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		for _, k := range keys {
			p.Set(ctx, k, value, ttl)
		}
		return nil
	})
	return err
}

func (e *Engine) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return e.rdb.Del(ctx, keys...).Result()
}

func (e *Engine) MGet(ctx context.Context, keys ...string) ([]*string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := e.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*string, len(vals))
	for i, v := range vals {
		switch vv := v.(type) {
		case nil:
			// absent
		case string:
			s := vv
			out[i] = &s
		case []byte:
			s := string(vv)
			out[i] = &s
		default:
			s := fmt.Sprint(vv)
			out[i] = &s
		}
	}
	return out, nil
}

func (e *Engine) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	return e.rdb.Scan(ctx, cursor, match, count).Result()
}

// Eval runs scripts through a per-source cache so repeat invocations go out
// as EVALSHA (go-redis falls back to EVAL when the engine has not seen the
// script yet).
func (e *Engine) Eval(ctx context.Context, script string, keys []string, args ...any) (any, error) {
	return e.script(script).Run(ctx, e.rdb, keys, args...).Result()
}

func (e *Engine) script(src string) *goredis.Script {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.scripts[src]
	if !ok {
		s = goredis.NewScript(src)
		e.scripts[src] = s
	}
	return s
}

// Close releases the underlying client only when this engine owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (e *Engine) Close(context.Context) error {
	if e.closeClient {
		if err := e.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
