package fiecs

// Bulk iteration. Each ForEach walks every group whose bitmask is a superset
// of the requested component set; once the group-level filter passes there is
// no per-entity check, which is the payoff of grouping by exact set. Handles
// passed to the callback are synthesized fresh from slot position and are
// valid for the duration of the sweep.
//
// Iteration order is insertion/swap order within a group and group-creation
// order across groups; positions do not survive mutations, so callers must
// not attach meaning to them. Mutating the registry from inside a callback
// panics; component values may be written through the supplied pointers.

// ForEach invokes fn for every entity carrying at least component A.
func ForEach[A any](r *Registry, fn func(Entity, *A)) {
	ida := mustID[A](r)
	var m bitmask256
	m.set(ida)
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		if g.count == 0 || !g.hasAll(m) {
			continue
		}
		ca := g.columnOf(ida)
		for i := 0; i < g.count; i++ {
			fn(g.handleAt(i), (*A)(g.dataAt(ca, i)))
		}
	}
}

// ForEach2 invokes fn for every entity carrying at least components A and B.
func ForEach2[A, B any](r *Registry, fn func(Entity, *A, *B)) {
	ida, idb := mustID[A](r), mustID[B](r)
	var m bitmask256
	m.set(ida)
	m.set(idb)
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		if g.count == 0 || !g.hasAll(m) {
			continue
		}
		ca, cb := g.columnOf(ida), g.columnOf(idb)
		for i := 0; i < g.count; i++ {
			fn(g.handleAt(i), (*A)(g.dataAt(ca, i)), (*B)(g.dataAt(cb, i)))
		}
	}
}

// ForEach3 invokes fn for every entity carrying at least A, B and C.
func ForEach3[A, B, C any](r *Registry, fn func(Entity, *A, *B, *C)) {
	ida, idb, idc := mustID[A](r), mustID[B](r), mustID[C](r)
	var m bitmask256
	m.set(ida)
	m.set(idb)
	m.set(idc)
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		if g.count == 0 || !g.hasAll(m) {
			continue
		}
		ca, cb, cc := g.columnOf(ida), g.columnOf(idb), g.columnOf(idc)
		for i := 0; i < g.count; i++ {
			fn(g.handleAt(i), (*A)(g.dataAt(ca, i)), (*B)(g.dataAt(cb, i)), (*C)(g.dataAt(cc, i)))
		}
	}
}

// ForEach4 invokes fn for every entity carrying at least A, B, C and D.
func ForEach4[A, B, C, D any](r *Registry, fn func(Entity, *A, *B, *C, *D)) {
	ida, idb, idc, idd := mustID[A](r), mustID[B](r), mustID[C](r), mustID[D](r)
	var m bitmask256
	m.set(ida)
	m.set(idb)
	m.set(idc)
	m.set(idd)
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		if g.count == 0 || !g.hasAll(m) {
			continue
		}
		ca, cb := g.columnOf(ida), g.columnOf(idb)
		cc, cd := g.columnOf(idc), g.columnOf(idd)
		for i := 0; i < g.count; i++ {
			fn(g.handleAt(i), (*A)(g.dataAt(ca, i)), (*B)(g.dataAt(cb, i)), (*C)(g.dataAt(cc, i)), (*D)(g.dataAt(cd, i)))
		}
	}
}

// ForEachUntil is ForEach with early exit: iteration stops at the first
// callback that returns true. Reports whether any callback did.
func ForEachUntil[A any](r *Registry, fn func(Entity, *A) bool) bool {
	ida := mustID[A](r)
	var m bitmask256
	m.set(ida)
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		if g.count == 0 || !g.hasAll(m) {
			continue
		}
		ca := g.columnOf(ida)
		for i := 0; i < g.count; i++ {
			if fn(g.handleAt(i), (*A)(g.dataAt(ca, i))) {
				return true
			}
		}
	}
	return false
}

// ForEachUntil2 is ForEach2 with early exit at the first true callback.
func ForEachUntil2[A, B any](r *Registry, fn func(Entity, *A, *B) bool) bool {
	ida, idb := mustID[A](r), mustID[B](r)
	var m bitmask256
	m.set(ida)
	m.set(idb)
	r.iterating = true
	defer func() { r.iterating = false }()
	for _, g := range r.groups {
		if g.count == 0 || !g.hasAll(m) {
			continue
		}
		ca, cb := g.columnOf(ida), g.columnOf(idb)
		for i := 0; i < g.count; i++ {
			if fn(g.handleAt(i), (*A)(g.dataAt(ca, i)), (*B)(g.dataAt(cb, i))) {
				return true
			}
		}
	}
	return false
}
