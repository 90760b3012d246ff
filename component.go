package fiecs

import (
	"fmt"
	"hash/fnv"
	"io"
	"reflect"
)

// ComponentID is the index of a component type within a Registry's fixed
// universe. IDs are assigned in declaration order at NewRegistry.
type ComponentID uint8

const (
	bitsPerWord       = 64
	maskWords         = 4
	maxComponentTypes = maskWords * bitsPerWord
)

// ComponentType describes one member of the component universe. Values are
// produced by Component and consumed once by NewRegistry.
type ComponentType struct {
	typ  reflect.Type
	hash uint64
	size int
}

// Component builds the universe declaration for component type T.
//
// Components are opaque fixed-layout value types; the store never interprets
// their payload. T must not contain pointers into store-owned memory, since
// component bytes are moved with raw copies during swap-pop and relocation.
func Component[T any]() ComponentType {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return ComponentType{typ: t, hash: typeHash(t), size: int(t.Size())}
}

// typeHash is the per-type ingredient of a group fingerprint. It only has to
// be stable within one process and collision-free across the (at most 256)
// declared types.
func typeHash(t reflect.Type) uint64 {
	h := fnv.New64a()
	io.WriteString(h, t.PkgPath())
	io.WriteString(h, "/")
	io.WriteString(h, t.String())
	return h.Sum64()
}

// componentTable is the Registry's fixed component universe. It is populated
// once during NewRegistry and read-only afterwards.
type componentTable struct {
	typeToID map[reflect.Type]ComponentID
	types    [maxComponentTypes]reflect.Type
	sizes    [maxComponentTypes]int
	hashes   [maxComponentTypes]uint64
	count    int
}

func newComponentTable(types []ComponentType) componentTable {
	if len(types) > maxComponentTypes {
		panic(fmt.Sprintf("fiecs: %d component types declared, maximum is %d", len(types), maxComponentTypes))
	}
	ct := componentTable{
		typeToID: make(map[reflect.Type]ComponentID, len(types)),
	}
	for _, t := range types {
		if _, ok := ct.typeToID[t.typ]; ok {
			panic(fmt.Sprintf("fiecs: component type %s declared twice", t.typ))
		}
		id := ComponentID(ct.count)
		ct.typeToID[t.typ] = id
		ct.types[id] = t.typ
		ct.sizes[id] = t.size
		ct.hashes[id] = t.hash
		ct.count++
	}
	return ct
}

func (ct *componentTable) idOf(t reflect.Type) (ComponentID, bool) {
	id, ok := ct.typeToID[t]
	return id, ok
}

// mustID resolves T to its ComponentID in r's universe. Using a type that was
// never declared breaks the fixed-universe precondition and panics.
func mustID[T any](r *Registry) ComponentID {
	t := reflect.TypeOf((*T)(nil)).Elem()
	id, ok := r.components.idOf(t)
	if !ok {
		panic(fmt.Sprintf("fiecs: component type %s was not declared for this registry", t))
	}
	return id
}
