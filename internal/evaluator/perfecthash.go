package evaluator

import (
	"encoding/binary"

	"github.com/opencoff/go-chd"
)

// chdLookup is a minimal perfect hash table mapping uint64 keys (prime
// products of a rank combination, or rank-presence bitmasks for the flush
// table) to dense ranks, built once at init() via
// CHD (compress-hash-displace) instead of a bare Go map. A minimal perfect
// hash has no "key absent" signal of its own, so the original key is stored
// alongside its value at the assigned slot and compared back on lookup --
// this is what turns a corrupted or incomplete table into an observable
// ErrLookupMiss instead of a silently wrong rank.
type chdLookup struct {
	h    *chd.CHD
	keys []uint64
	vals []int16
}

// buildCHDLookup freezes a perfect hash over the given keys. Every key must
// be distinct; duplicate keys indicate a bug in the table generator.
func buildCHDLookup(keys []uint64, vals []int16) *chdLookup {
	if len(keys) != len(vals) {
		panic("evaluator: key/value length mismatch building perfect hash")
	}

	b := chd.NewBuilder()
	encoded := make([][]byte, len(keys))
	for i, k := range keys {
		encoded[i] = encodeKey(k)
		b.Add(encoded[i])
	}

	h, err := b.Freeze(0.9)
	if err != nil {
		panic("evaluator: failed to build perfect hash: " + err.Error())
	}

	n := len(keys)
	orderedKeys := make([]uint64, n)
	orderedVals := make([]int16, n)
	for i, enc := range encoded {
		slot := h.Find(enc)
		orderedKeys[slot] = keys[i]
		orderedVals[slot] = vals[i]
	}

	return &chdLookup{h: h, keys: orderedKeys, vals: orderedVals}
}

// find returns the dense rank bound to key, or false if key was never part
// of the table this lookup was built from.
func (l *chdLookup) find(key uint64) (int16, bool) {
	slot := l.h.Find(encodeKey(key))
	if slot >= uint64(len(l.vals)) || l.keys[slot] != key {
		return 0, false
	}
	return l.vals[slot], true
}

func encodeKey(k uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], k)
	return b[:]
}
