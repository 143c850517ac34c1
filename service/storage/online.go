package storage

import (
	"context"
	"time"

	"ChatGo/logger"
	redis2 "ChatGo/service/storage/redis"
)

// PresenceMirror mirrors the in-process online set into a shared store so
// operators (and, later, other gateway nodes) can read it. The in-memory
// registry stays authoritative; every mirror write is best-effort and a
// failure never affects the realtime path.
type PresenceMirror interface {
	SetOnline(ctx context.Context, userID string)
	SetOffline(ctx context.Context, userID string)
	Snapshot(ctx context.Context) ([]string, error)
}

const (
	onlineSetKey = "chatgo:online"
	onlineSetTTL = 24 * time.Hour
)

// ===== Redis mirror =====

type redisMirror struct{}

func NewRedisMirror() PresenceMirror {
	return &redisMirror{}
}

func (m *redisMirror) SetOnline(ctx context.Context, userID string) {
	pipe := redis2.GetRedis().TxPipeline()
	pipe.SAdd(ctx, onlineSetKey, userID)
	pipe.Expire(ctx, onlineSetKey, onlineSetTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warnf("[presence] mirror online user=%s: %v", userID, err)
	}
}

func (m *redisMirror) SetOffline(ctx context.Context, userID string) {
	if err := redis2.GetRedis().SRem(ctx, onlineSetKey, userID).Err(); err != nil {
		logger.Warnf("[presence] mirror offline user=%s: %v", userID, err)
	}
}

func (m *redisMirror) Snapshot(ctx context.Context) ([]string, error) {
	return redis2.GetRedis().SMembers(ctx, onlineSetKey).Result()
}

// ===== Noop mirror (no Redis configured) =====

type noopMirror struct{}

func NewNoopMirror() PresenceMirror {
	return &noopMirror{}
}

func (noopMirror) SetOnline(ctx context.Context, userID string)  {}
func (noopMirror) SetOffline(ctx context.Context, userID string) {}
func (noopMirror) Snapshot(ctx context.Context) ([]string, error) {
	return nil, nil
}
