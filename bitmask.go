package fiecs

import "math/bits"

// bitmask256 represents a set of up to 256 component IDs. Each group carries
// one; group filtering during iteration is a containment test on these.
type bitmask256 [maskWords]uint64

// set enables the bit for the given component ID.
func (m *bitmask256) set(id ComponentID) {
	i := id >> 6
	o := id & 63
	m[i] |= uint64(1) << uint64(o)
}

// contains checks that every bit set in sub is also set in m.
func (m bitmask256) contains(sub bitmask256) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

// containsBit checks if a single component ID is in the set.
func (m bitmask256) containsBit(id ComponentID) bool {
	i := id >> 6
	o := id & 63
	return (m[i] & (uint64(1) << uint64(o))) != 0
}

// cardinality counts the set bits.
func (m bitmask256) cardinality() int {
	n := 0
	for i := range m {
		n += bits.OnesCount64(m[i])
	}
	return n
}
