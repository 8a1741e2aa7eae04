package ring

import (
	"fmt"
	"sort"
	"strings"
)

// Orientation is the alternating binary tag carried by every node,
// independent of its payload value. The domain is exactly {0, 1}.
type Orientation uint8

const (
	// Orientation0 is the default orientation of the first node.
	Orientation0 Orientation = 0
	// Orientation1 is the complement of Orientation0.
	Orientation1 Orientation = 1
)

// Flip returns the complement orientation.
func (o Orientation) Flip() Orientation {
	return o ^ 1
}

// String renders the orientation as "0" or "1".
func (o Orientation) String() string {
	return fmt.Sprintf("%d", uint8(o))
}

// Node is the read view of one ring position.
//
// Meta is the caller's map, returned as-is; the ring does not copy or
// interpret it. Seq is the append ordinal assigned when the node joined
// the ring. It is stable for the node's lifetime and never reused, even
// after removals.
type Node[T comparable] struct {
	Handle      Handle
	Value       T
	Orientation Orientation
	Seq         int64
	Meta        map[string]any
}

// render produces the diagnostic form "value(orientation::meta)".
// Meta keys are sorted so the rendering is deterministic.
func (n Node[T]) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v(%s", n.Value, n.Orientation)
	if len(n.Meta) > 0 {
		keys := make([]string, 0, len(n.Meta))
		for k := range n.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("::")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "%s=%v", k, n.Meta[k])
		}
	}
	b.WriteString(")")
	return b.String()
}

// slot is the arena storage for one node. Links are arena indices, not
// pointers, so the ring topology never forms a pointer cycle. A slot
// whose live flag is false is on the free list awaiting reuse; its seq
// is never reused.
type slot[T comparable] struct {
	value       T
	orientation Orientation
	meta        map[string]any
	seq         int64
	handle      Handle
	next        int
	prev        int
	live        bool
}

func (s *slot[T]) view() Node[T] {
	return Node[T]{
		Handle:      s.handle,
		Value:       s.value,
		Orientation: s.orientation,
		Seq:         s.seq,
		Meta:        s.meta,
	}
}
