// Package fiecs implements an archetype-based entity/component store with
// self-healing entity handles.
//
// Entities sharing the same exact component set live together in one
// ComponentGroup, one contiguous column per component type, so bulk iteration
// walks flat arrays. Removal is swap-pop, which means an entity's row can move
// under a handle the caller still holds. Rather than paying an indirection
// table lookup on every access, handles cache their last known location and
// are validated against a per-slot version column; a stale handle is repaired
// through a remap table on its next use, at most one extra hop.
//
// The component universe is fixed when the Registry is built. Max 256
// component types per Registry.
//
// The Registry is single-threaded. Creating or destroying entities, or adding
// or removing components, while a ForEach-style iteration is running is a
// contract violation and panics.
package fiecs

// Entity is a caller-held handle to one logical record in a Registry.
//
// The slot and group key inside are a cache of where the entity last
// resolved, not a guarantee; another entity's removal or relocation can make
// them stale. Every Registry operation takes the handle as *Entity and
// rewrites it in place once it re-resolves, so a stale handle heals on first
// use. Two handles denote the same logical entity iff their versions match.
type Entity struct {
	slot     int
	version  uint64
	groupKey uint64
	dead     bool
}

// Version returns the entity's globally unique version stamp. Versions are
// assigned monotonically at creation and never reused.
func (e Entity) Version() uint64 {
	return e.version
}

// Alive reports whether the handle has been tombstoned. A false result is
// permanent: the entity was destroyed, or the handle was recognized as a
// terminal dead end during resolution.
func (e Entity) Alive() bool {
	return !e.dead
}

// Is reports whether two handles denote the same logical entity, regardless
// of where either one last resolved.
func (e Entity) Is(other Entity) bool {
	return e.version == other.version
}

// identical compares location fields as well; dead is intentionally left out.
// A remap entry that is identical to the handle consulting it is a terminal
// dead end, not a forwarding pointer.
func (e Entity) identical(other Entity) bool {
	return e.slot == other.slot &&
		e.version == other.version &&
		e.groupKey == other.groupKey
}
