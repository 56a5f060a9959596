package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NumberGenerator produces candidate ticket numbers. Candidates are
// human-readable and collision-resistant, but uniqueness is only guaranteed by
// the storage constraint plus the caller's retry loop.
type NumberGenerator interface {
	Next(ctx context.Context) string
}

// TicketNumberGenerator builds numbers shaped <prefix>-YYYYMMDD-NNNNNN. The
// six-digit suffix comes from a per-day Redis sequence; when Redis is
// unreachable a random suffix is used instead.
type TicketNumberGenerator struct {
	redis  *redis.Client
	prefix string
	logger *zap.Logger
}

// NewTicketNumberGenerator constructs the generator. A nil client is allowed
// and forces the random fallback.
func NewTicketNumberGenerator(client *redis.Client, prefix string, logger *zap.Logger) *TicketNumberGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketNumberGenerator{redis: client, prefix: prefix, logger: logger}
}

// Next returns the next candidate number.
func (g *TicketNumberGenerator) Next(ctx context.Context) string {
	day := time.Now().UTC().Format("20060102")
	return fmt.Sprintf("%s-%s-%06d", g.prefix, day, g.sequence(ctx, day))
}

func (g *TicketNumberGenerator) sequence(ctx context.Context, day string) int64 {
	if g.redis != nil {
		key := "ticket:seq:" + day
		seq, err := g.redis.Incr(ctx, key).Result()
		if err == nil {
			if seq == 1 {
				// keep yesterday's keys from piling up
				g.redis.Expire(ctx, key, 48*time.Hour)
			}
			return seq % 1000000
		}
		g.logger.Warn("redis sequence unavailable, using random suffix", zap.Error(err))
	}
	return randomSequence()
}

func randomSequence() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano() % 1000000
	}
	return int64(binary.BigEndian.Uint64(buf[:]) % 1000000)
}
