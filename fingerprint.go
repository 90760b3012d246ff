package fiecs

import "slices"

// hashCombine folds one member hash into the running seed (boost-style
// combine; the shifts keep the fold asymmetric so {a,b} and {b,a,0} differ).
func hashCombine(seed, h uint64) uint64 {
	return seed ^ (h + 0x9e3779b9 + (seed << 6) + (seed >> 2))
}

// fingerprintOf computes the group key for a multiset of member type hashes.
// The hashes are sorted before folding, so every permutation of the same
// component set produces the same key; the set is reordered first, then
// combined, never the other way around.
func fingerprintOf(hashes []uint64) uint64 {
	slices.Sort(hashes)
	var seed uint64
	for _, h := range hashes {
		seed = hashCombine(seed, h)
	}
	return seed
}

// fingerprintForIDs derives the group key for a set of component IDs.
func (r *Registry) fingerprintForIDs(ids ...ComponentID) uint64 {
	hashes := make([]uint64, len(ids))
	for i, id := range ids {
		hashes[i] = r.components.hashes[id]
	}
	return fingerprintOf(hashes)
}
