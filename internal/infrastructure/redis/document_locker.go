// Package redis candado distribuido de documentos sobre bsm/redislock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "lock:"

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return rdb, nil
}

// DocumentLocker implementa inventory.DocumentLocker. No reintenta: si la clave está tomada falla con domain.ErrConflict.
type DocumentLocker struct {
	locker *redislock.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewDocumentLocker construye el candado. ttl acota cuánto sobrevive un candado si el proceso muere.
func NewDocumentLocker(client redislock.RedisClient, ttl time.Duration, logger zerolog.Logger) *DocumentLocker {
	return &DocumentLocker{locker: redislock.New(client), ttl: ttl, logger: logger}
}

// Acquire obtiene el candado de key.
func (l *DocumentLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lock, err := l.locker.Obtain(ctx, keyPrefix+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s en proceso", domain.ErrConflict, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis: obtener candado %s: %w", key, err)
	}
	return func() {
		// contexto propio: la liberación debe ocurrir aunque la petición ya se haya cancelado
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el candado")
		}
	}, nil
}
