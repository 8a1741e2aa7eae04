package ring

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Handle identifies a node for later lookup and removal.
//
// Handles are opaque strings issued at append time. A handle stays valid
// until its node is removed; afterwards it is stale and operations that
// receive it fail with CodeNotFound. Handles are never reissued.
type Handle string

// HandleGenerator issues node handles.
// Implemented by UUIDv7Generator (production) and SeqGenerator (tests
// and golden scenarios, where byte-identical output matters).
type HandleGenerator interface {
	Generate() Handle
}

// UUIDv7Generator generates time-sortable UUIDv7 handles.
//
// UUIDv7 embeds a timestamp in the most significant bits, making handles
// sortable by creation time, which is helpful when reading diagnostics.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 handle.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() Handle {
	return Handle(uuid.Must(uuid.NewV7()).String())
}

// SeqGenerator issues predictable handles of the form "node-000001".
//
// This enables deterministic test execution and golden snapshot
// comparison: the same scenario run twice produces byte-identical
// traces.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SeqGenerator struct {
	mu sync.Mutex
	n  int
}

// NewSeqGenerator creates a generator whose first handle is "node-000001".
func NewSeqGenerator() *SeqGenerator {
	return &SeqGenerator{}
}

// Generate returns the next sequential handle.
func (g *SeqGenerator) Generate() Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return Handle(fmt.Sprintf("node-%06d", g.n))
}
