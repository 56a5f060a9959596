package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextWithoutRedisUsesRandomSuffix(t *testing.T) {
	g := NewTicketNumberGenerator(nil, "TKT", nil)

	number := g.Next(context.Background())

	assert.Regexp(t, regexp.MustCompile(`^TKT-\d{8}-\d{6}$`), number)
	assert.Contains(t, number, time.Now().UTC().Format("20060102"))
}

func TestNextHonorsPrefix(t *testing.T) {
	g := NewTicketNumberGenerator(nil, "SUP", nil)

	assert.Regexp(t, `^SUP-\d{8}-\d{6}$`, g.Next(context.Background()))
}

func TestRandomSequenceStaysWithinSixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		seq := randomSequence()
		assert.GreaterOrEqual(t, seq, int64(0))
		assert.Less(t, seq, int64(1000000))
	}
}
