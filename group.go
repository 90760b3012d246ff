package fiecs

import "unsafe"

// ComponentGroup holds every entity whose component set is exactly the
// group's set, one dense byte column per member type plus a parallel version
// column. Slot i across all columns describes one entity. Groups are created
// lazily on first request for their component set and live for the Registry's
// lifetime, even at zero entities.
type ComponentGroup struct {
	columns  [][]byte // column index -> packed values, len == count*size
	versions []uint64 // slot -> entity version
	members  []ComponentID
	sizes    []int                  // column index -> element size
	slots    [maxComponentTypes]int // component ID -> column index, -1 if absent
	mask     bitmask256
	key      uint64
	count    int
}

// zerobase backs pointers to zero-sized component values; they are never
// dereferenced as memory.
var zerobase struct{}

// newGroup builds the group for a set of component IDs. members must already
// be sorted; the column order is fixed here for the group's lifetime.
func newGroup(key uint64, members []ComponentID, ct *componentTable) *ComponentGroup {
	g := &ComponentGroup{
		columns: make([][]byte, len(members)),
		members: members,
		sizes:   make([]int, len(members)),
		key:     key,
	}
	for i := range g.slots {
		g.slots[i] = -1
	}
	for i, id := range members {
		g.slots[id] = i
		g.sizes[i] = ct.sizes[id]
		g.mask.set(id)
	}
	return g
}

// Key returns the group's component-set fingerprint.
func (g *ComponentGroup) Key() uint64 {
	return g.key
}

// Len returns the number of live entities in the group.
func (g *ComponentGroup) Len() int {
	return g.count
}

// Has reports whether the group's component set includes id.
func (g *ComponentGroup) Has(id ComponentID) bool {
	return g.mask.containsBit(id)
}

// ComponentCount returns the number of component types in the group's set.
func (g *ComponentGroup) ComponentCount() int {
	return g.mask.cardinality()
}

// hasAll is the group-level filter for bulk iteration: a containment test,
// never a per-entity check.
func (g *ComponentGroup) hasAll(sub bitmask256) bool {
	return g.mask.contains(sub)
}

// columnOf returns the column index for a component ID, -1 if the group's
// set does not include it. Columns for absent types do not exist and can
// never be read.
func (g *ComponentGroup) columnOf(id ComponentID) int {
	return g.slots[id]
}

// dataAt returns a pointer to the value at slot in column ci.
func (g *ComponentGroup) dataAt(ci, slot int) unsafe.Pointer {
	if g.sizes[ci] == 0 {
		return unsafe.Pointer(&zerobase)
	}
	return unsafe.Pointer(&g.columns[ci][slot*g.sizes[ci]])
}

// isValid is the sole authority for "does this handle currently and directly
// resolve in this group": not tombstoned, slot in bounds, and the stored
// version at that slot matches the handle's.
func (g *ComponentGroup) isValid(e Entity) bool {
	if e.dead {
		return false
	}
	if e.slot < 0 || e.slot >= g.count {
		return false
	}
	return g.versions[e.slot] == e.version
}

// createSlot appends one zero value per column and stamps the new slot with
// the handle's version. The caller (Registry) must hand in a handle whose
// slot is the current count; anything else means the store's bookkeeping has
// diverged and continuing would corrupt it.
func (g *ComponentGroup) createSlot(e Entity) {
	if e.slot != g.count || len(g.versions) != g.count {
		panic("fiecs: group slot bookkeeping out of sync")
	}
	for ci := range g.columns {
		g.columns[ci] = extendColumn(g.columns[ci], g.sizes[ci])
	}
	g.versions = append(g.versions, e.version)
	g.count++
}

// removeResult reports how a removal resolved. When the vacated slot was
// refilled by the former last entity, swappedVersion/swappedSlot identify the
// entity whose outstanding handles just went stale.
type removeResult struct {
	swappedVersion uint64
	swappedSlot    int
	removed        bool
	swapped        bool
}

// removeSlot deletes the handle's slot via swap-pop: the last slot's value is
// copied into the vacated position in every column (and the version column),
// then the columns shrink by one. Reports failure without touching anything
// if the group is empty or the handle does not validate here.
func (g *ComponentGroup) removeSlot(e Entity) removeResult {
	var res removeResult
	if g.count == 0 || !g.isValid(e) {
		return res
	}
	res.removed = true
	last := g.count - 1
	if g.count > 1 {
		res.swapped = true
		res.swappedVersion = g.versions[last]
		res.swappedSlot = e.slot
	}
	for ci := range g.columns {
		size := g.sizes[ci]
		col := g.columns[ci]
		if e.slot < last {
			copy(col[e.slot*size:(e.slot+1)*size], col[last*size:])
		}
		g.columns[ci] = col[:last*size]
	}
	g.versions[e.slot] = g.versions[last]
	g.versions = g.versions[:last]
	g.count--
	return res
}

// copyInto copies the value at srcSlot of the id column into dstSlot of
// dst's id column. Both groups must include id.
func (g *ComponentGroup) copyInto(id ComponentID, srcSlot int, dst *ComponentGroup, dstSlot int) {
	ci := g.slots[id]
	size := g.sizes[ci]
	if size == 0 {
		return
	}
	di := dst.slots[id]
	copy(dst.columns[di][dstSlot*size:(dstSlot+1)*size], g.columns[ci][srcSlot*size:(srcSlot+1)*size])
}

// handleAt synthesizes a fresh, known-valid handle for a slot. Used during
// iteration, where slot positions are trusted for the duration of the sweep.
func (g *ComponentGroup) handleAt(slot int) Entity {
	return Entity{slot: slot, version: g.versions[slot], groupKey: g.key}
}

// extendColumn grows a column by one element, doubling capacity on realloc.
func extendColumn(col []byte, size int) []byte {
	newLen := len(col) + size
	if cap(col) >= newLen {
		col = col[:newLen]
		clear(col[newLen-size:])
		return col
	}
	newCap := 2 * cap(col)
	if newCap < newLen {
		newCap = newLen
	}
	ncol := make([]byte, newLen, newCap)
	copy(ncol, col)
	return ncol
}
