package fiecs

// setAt writes a typed value into a group column. The column's element type
// must be T; every call site establishes that through the component table.
func setAt[T any](g *ComponentGroup, id ComponentID, slot int, v T) {
	*(*T)(g.dataAt(g.slots[id], slot)) = v
}

// distinctIDs rejects a component set declared with the same type twice.
func distinctIDs(ids ...ComponentID) {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				panic("fiecs: duplicate component type in entity creation")
			}
		}
	}
}

// CreateEntity creates an entity whose component set is exactly {A}.
//
// The group for the set is materialized on first use; its column layout and
// bitmask are fixed at that moment. The returned handle is the only way to
// reach the entity later.
func CreateEntity[A any](r *Registry, a A) Entity {
	r.mustNotIterate("CreateEntity")
	ida := mustID[A](r)
	g := r.groupForIDs(ida)
	e := r.newHandle(g)
	g.createSlot(e)
	setAt(g, ida, e.slot, a)
	return e
}

// CreateEntity2 creates an entity whose component set is exactly {A, B}.
func CreateEntity2[A, B any](r *Registry, a A, b B) Entity {
	r.mustNotIterate("CreateEntity")
	ida, idb := mustID[A](r), mustID[B](r)
	distinctIDs(ida, idb)
	g := r.groupForIDs(ida, idb)
	e := r.newHandle(g)
	g.createSlot(e)
	setAt(g, ida, e.slot, a)
	setAt(g, idb, e.slot, b)
	return e
}

// CreateEntity3 creates an entity whose component set is exactly {A, B, C}.
func CreateEntity3[A, B, C any](r *Registry, a A, b B, c C) Entity {
	r.mustNotIterate("CreateEntity")
	ida, idb, idc := mustID[A](r), mustID[B](r), mustID[C](r)
	distinctIDs(ida, idb, idc)
	g := r.groupForIDs(ida, idb, idc)
	e := r.newHandle(g)
	g.createSlot(e)
	setAt(g, ida, e.slot, a)
	setAt(g, idb, e.slot, b)
	setAt(g, idc, e.slot, c)
	return e
}

// CreateEntity4 creates an entity whose component set is exactly {A, B, C, D}.
func CreateEntity4[A, B, C, D any](r *Registry, a A, b B, c C, d D) Entity {
	r.mustNotIterate("CreateEntity")
	ida, idb, idc, idd := mustID[A](r), mustID[B](r), mustID[C](r), mustID[D](r)
	distinctIDs(ida, idb, idc, idd)
	g := r.groupForIDs(ida, idb, idc, idd)
	e := r.newHandle(g)
	g.createSlot(e)
	setAt(g, ida, e.slot, a)
	setAt(g, idb, e.slot, b)
	setAt(g, idc, e.slot, c)
	setAt(g, idd, e.slot, d)
	return e
}

// AddComponent attaches a component of type T to the entity, relocating it
// to the group for its widened set. If the entity already carries T, only
// the value is updated and the entity stays put. Reports whether the handle
// resolved to a live entity.
func AddComponent[T any](r *Registry, e *Entity, value T) bool {
	r.mustNotIterate("AddComponent")
	id := mustID[T](r)
	src, ok := r.resolve(e)
	if !ok {
		return false
	}
	if src.Has(id) {
		setAt(src, id, e.slot, value)
		return true
	}
	widened := make([]ComponentID, 0, len(src.members)+1)
	widened = append(widened, src.members...)
	widened = append(widened, id)
	dst := r.groupForIDs(widened...)
	r.transfer(e, src, dst, id)
	setAt(dst, id, e.slot, value)
	return true
}

// RemoveComponent detaches the component of type T, relocating the entity to
// the group for its narrowed set. Removing a component the entity does not
// carry is a no-op. Reports whether the handle resolved to a live entity.
func RemoveComponent[T any](r *Registry, e *Entity) bool {
	r.mustNotIterate("RemoveComponent")
	id := mustID[T](r)
	src, ok := r.resolve(e)
	if !ok {
		return false
	}
	if !src.Has(id) {
		return true
	}
	members := make([]ComponentID, 0, len(src.members)-1)
	for _, m := range src.members {
		if m != id {
			members = append(members, m)
		}
	}
	dst := r.groupForIDs(members...)
	r.transfer(e, src, dst, id)
	return true
}

// GetComponent returns a pointer to the entity's component of type T.
// ok is false if the handle no longer resolves or the entity's group does
// not include T.
//
// The pointer aims straight into the group's column. Any subsequent mutating
// call on the registry can move or reuse that storage, so the pointer must
// not be retained across one.
func GetComponent[T any](r *Registry, e *Entity) (*T, bool) {
	id := mustID[T](r)
	g, ok := r.resolve(e)
	if !ok {
		return nil, false
	}
	ci := g.columnOf(id)
	if ci < 0 {
		return nil, false
	}
	return (*T)(g.dataAt(ci, e.slot)), true
}

// SetComponent overwrites the entity's existing component of type T.
// Unlike AddComponent it never relocates: if the entity's group does not
// include T the call reports false and changes nothing.
func SetComponent[T any](r *Registry, e *Entity, value T) bool {
	id := mustID[T](r)
	g, ok := r.resolve(e)
	if !ok {
		return false
	}
	if !g.Has(id) {
		return false
	}
	setAt(g, id, e.slot, value)
	return true
}

// GroupOf returns the group whose component set is exactly {A}, if it has
// been materialized.
func GroupOf[A any](r *Registry) (*ComponentGroup, bool) {
	g, ok := r.keyToGroup[r.fingerprintForIDs(mustID[A](r))]
	return g, ok
}

// GroupOf2 returns the group whose component set is exactly {A, B}.
func GroupOf2[A, B any](r *Registry) (*ComponentGroup, bool) {
	g, ok := r.keyToGroup[r.fingerprintForIDs(mustID[A](r), mustID[B](r))]
	return g, ok
}

// GroupOf3 returns the group whose component set is exactly {A, B, C}.
func GroupOf3[A, B, C any](r *Registry) (*ComponentGroup, bool) {
	g, ok := r.keyToGroup[r.fingerprintForIDs(mustID[A](r), mustID[B](r), mustID[C](r))]
	return g, ok
}

// GroupOf4 returns the group whose component set is exactly {A, B, C, D}.
func GroupOf4[A, B, C, D any](r *Registry) (*ComponentGroup, bool) {
	g, ok := r.keyToGroup[r.fingerprintForIDs(mustID[A](r), mustID[B](r), mustID[C](r), mustID[D](r))]
	return g, ok
}
