package fiecs

import "slices"

// Registry owns every group, the remap table that heals stale handles, and
// the version counter. All mutation and query traffic goes through it.
type Registry struct {
	components  componentTable
	keyToGroup  map[uint64]*ComponentGroup
	groups      []*ComponentGroup // creation order, for deterministic sweeps
	remap       map[uint64]Entity // stale version -> current location
	ctx         *Context
	nextVersion uint64
	iterating   bool
}

// NewRegistry builds a store whose component universe is exactly the given
// declarations. The universe is fixed for the Registry's lifetime; there is
// no way to add component types afterwards.
//
//	r := fiecs.NewRegistry(
//		fiecs.Component[Position](),
//		fiecs.Component[Velocity](),
//	)
func NewRegistry(types ...ComponentType) *Registry {
	return &Registry{
		components:  newComponentTable(types),
		keyToGroup:  make(map[uint64]*ComponentGroup),
		remap:       make(map[uint64]Entity),
		ctx:         newContext(),
		nextVersion: 1, // the zero Entity must never resolve
	}
}

// Context returns the registry's singleton store.
func (r *Registry) Context() *Context {
	return r.ctx
}

// EntityCount returns the number of live entities across all groups.
func (r *Registry) EntityCount() int {
	n := 0
	for _, g := range r.groups {
		n += g.count
	}
	return n
}

// GroupCount returns the number of groups materialized so far, including
// ones that are currently empty.
func (r *Registry) GroupCount() int {
	return len(r.groups)
}

// mustNotIterate is the guard on every mutating entry point. Relocation
// during iteration would move storage out from under the sweep, so this is a
// contract violation, not a recoverable error.
func (r *Registry) mustNotIterate(op string) {
	if r.iterating {
		panic("fiecs: " + op + " called during iteration; defer mutations until the sweep returns")
	}
}

// groupForIDs returns the group for a component-ID set, materializing it on
// first request. ids may arrive in any order; the group's column order is the
// sorted order.
func (r *Registry) groupForIDs(ids ...ComponentID) *ComponentGroup {
	members := slices.Clone(ids)
	slices.Sort(members)
	key := r.fingerprintForIDs(members...)
	if g, ok := r.keyToGroup[key]; ok {
		return g
	}
	g := newGroup(key, members, &r.components)
	r.keyToGroup[key] = g
	r.groups = append(r.groups, g)
	return g
}

// newHandle mints the handle for the next slot of g and burns a version.
func (r *Registry) newHandle(g *ComponentGroup) Entity {
	e := Entity{slot: g.count, version: r.nextVersion, groupKey: g.key}
	r.nextVersion++
	return e
}

// resolve finds the entity's current group, healing the handle in place if
// it went stale. The fast path is a direct validity check in the cached
// group; only stale handles touch the remap table, and a remap entry always
// stores the resolved current truth, so at most one hop is ever followed.
//
// A remap entry identical to the incoming handle is a terminal dead end:
// both are tombstoned and resolution fails.
func (r *Registry) resolve(e *Entity) (*ComponentGroup, bool) {
	for {
		if e.dead {
			return nil, false
		}
		if g, ok := r.keyToGroup[e.groupKey]; ok && g.isValid(*e) {
			return g, true
		}
		target, ok := r.remap[e.version]
		if !ok {
			return nil, false
		}
		if target.identical(*e) {
			e.dead = true
			target.dead = true
			r.remap[e.version] = target
			return nil, false
		}
		*e = target
	}
}

// noteRemoval publishes the remap entry for the entity that a swap-pop just
// moved: its old version now points at its corrected location. This is how
// that entity's outstanding handles will heal themselves.
func (r *Registry) noteRemoval(res removeResult, key uint64) {
	if !res.removed || !res.swapped {
		return
	}
	r.remap[res.swappedVersion] = Entity{
		slot:     res.swappedSlot,
		version:  res.swappedVersion,
		groupKey: key,
	}
}

// DestroyEntity removes the entity from its group and tombstones the handle.
// Reports false if the handle no longer resolves to a live entity.
func (r *Registry) DestroyEntity(e *Entity) bool {
	r.mustNotIterate("DestroyEntity")
	g, ok := r.resolve(e)
	if !ok {
		return false
	}
	res := g.removeSlot(*e)
	if res.removed {
		e.dead = true
	}
	r.noteRemoval(res, g.key)
	return res.removed
}

// transfer moves the entity from src to dst, copying every component the two
// groups share except skip (the one being added or removed). The destination
// slot is fully populated before the source slot is removed, so there is no
// observable state where the entity exists in neither or both groups. Two
// remap entries may be written: one for the entity swapped into the vacated
// source slot, one for the moved entity itself.
func (r *Registry) transfer(e *Entity, src, dst *ComponentGroup, skip ComponentID) {
	moved := Entity{slot: dst.count, version: e.version, groupKey: dst.key}
	dst.createSlot(moved)
	for _, id := range dst.members {
		if id == skip {
			continue
		}
		src.copyInto(id, e.slot, dst, moved.slot)
	}
	res := src.removeSlot(*e)
	r.noteRemoval(res, src.key)
	r.remap[moved.version] = moved
	*e = moved
}

// ForEachGroup sweeps every non-empty group in creation order. Primarily a
// diagnostics hook; the callback gets the group's read surface (Len, Key,
// Has). The registry is in the iterating state for the duration.
func (r *Registry) ForEachGroup(fn func(*ComponentGroup)) {
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		if g.count == 0 {
			continue
		}
		fn(g)
	}
}

// ForEachEntity visits every live entity in the store with a freshly
// synthesized, known-valid handle.
func (r *Registry) ForEachEntity(fn func(Entity)) {
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		for i := 0; i < g.count; i++ {
			fn(g.handleAt(i))
		}
	}
}
