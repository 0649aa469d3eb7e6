package domain

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator mints opaque, collision-resistant entity ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// SequenceGenerator issues monotonically increasing ids such as "e-1", "e-2".
// Safe under rapid successive creation, unlike clock-derived ids.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Int64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	n := g.next.Add(1)
	if g.Prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s-%d", g.Prefix, n)
}
