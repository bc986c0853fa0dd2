package flatui

import "hash/fnv"

// ID uniquely identifies an element for ledger lookup and persistent state.
// IDs are compared by value. An element must use the same ID in both passes
// of a frame, and should keep it across frames so focus, capture and scroll
// offsets follow it.
type ID uint64

// NoID means "no element". Persistent slots holding NoID are free.
const NoID ID = 0

// sentinelID tags the zero-size element appended when placing starts.
const sentinelID ID = ^ID(0)

// HashID generates a stable ID from a string label.
func HashID(label string) ID {
	h := fnv.New64a()
	h.Write([]byte(label))
	return fixReserved(ID(h.Sum64()))
}

// IntID generates an ID from an integer.
// Useful for caller-managed small integer identities. Non-negative values
// map to distinct IDs; negative values are hashed into the rest of the ID
// space.
func IntID(n int) ID {
	if n >= 0 {
		return ID(uint64(n) + 1)
	}
	h := fnv.New64a()
	var buf [9]byte
	buf[0] = '-'
	for i := 0; i < 8; i++ {
		buf[i+1] = byte(uint64(n) >> (8 * i))
	}
	h.Write(buf[:])
	return fixReserved(ID(h.Sum64()))
}

// Child derives a stable ID for a sub-element, e.g. items generated in a loop.
func (id ID) Child(label string) ID {
	h := fnv.New64a()
	var seed [8]byte
	for i := range seed {
		seed[i] = byte(id >> (8 * i))
	}
	h.Write(seed[:])
	h.Write([]byte(label))
	return fixReserved(ID(h.Sum64()))
}

// fixReserved keeps generated IDs away from NoID and the sentinel.
func fixReserved(id ID) ID {
	switch id {
	case NoID:
		return 1
	case sentinelID:
		return sentinelID - 1
	}
	return id
}
