package scene

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/physics2d/internal/core/physics/body"
	"github.com/zeusync/physics2d/internal/core/physics/collision"
)

// contactMap remembers, per bundle, which pairs touched and the tick in which
// they were last seen touching.
type contactMap struct {
	touching map[uint64]map[uint64]uint64
	tick     uint64
	begin    func(a, b *body.Body, res collision.Result)
}

func newContactMap(begin func(a, b *body.Body, res collision.Result)) *contactMap {
	return &contactMap{touching: make(map[uint64]map[uint64]uint64), begin: begin}
}

func (m *contactMap) len() int {
	n := 0
	for _, pairs := range m.touching {
		n += len(pairs)
	}
	return n
}

// prune drops every pair that was not seen touching on the current tick.
func (m *contactMap) prune() {
	for bundle, pairs := range m.touching {
		for k, stamp := range pairs {
			if stamp != m.tick {
				delete(pairs, k)
			}
		}
		if len(pairs) == 0 {
			delete(m.touching, bundle)
		}
	}
}

func (m *contactMap) forget(bundle uint64) {
	delete(m.touching, bundle)
}

func (m *contactMap) reset() {
	clear(m.touching)
}

// contactView scopes the map to one bundle.
type contactView struct {
	m      *contactMap
	bundle uint64
}

func (v *contactView) Swap(a, b *body.Body, touching bool) bool {
	key := pairKey(a.ID(), b.ID())
	pairs := v.m.touching[v.bundle]
	_, was := pairs[key]
	switch {
	case touching && pairs == nil:
		v.m.touching[v.bundle] = map[uint64]uint64{key: v.m.tick}
	case touching:
		pairs[key] = v.m.tick
	case was:
		delete(pairs, key)
	}
	return was
}

func (v *contactView) Begin(a, b *body.Body, res collision.Result) {
	if v.m.begin != nil {
		v.m.begin(a, b, res)
	}
}

// pairKey is independent of the order of a and b.
func pairKey(a, b uuid.UUID) uint64 {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	var buf [32]byte
	copy(buf[:16], a[:])
	copy(buf[16:], b[:])
	return xxhash.Sum64(buf[:])
}
