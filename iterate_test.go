package fiecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljpetersen/fiecs"
)

func TestForEachFiltersBySuperset(t *testing.T) {
	r := newRegistry(t)
	fiecs.CreateEntity2(r, Position{X: 1}, Velocity{VX: 10})
	fiecs.CreateEntity2(r, Position{X: 2}, Health{Max: 5})
	fiecs.CreateEntity(r, Position{X: 3})
	fiecs.CreateEntity(r, Health{Max: 1})

	// Position matches three entities across three groups.
	got := []float32{}
	fiecs.ForEach(r, func(_ fiecs.Entity, p *Position) {
		got = append(got, p.X)
	})
	assert.ElementsMatch(t, []float32{1, 2, 3}, got)

	// Position+Velocity matches exactly one.
	visited := 0
	fiecs.ForEach2(r, func(_ fiecs.Entity, p *Position, v *Velocity) {
		visited++
		assert.Equal(t, float32(1), p.X)
		assert.Equal(t, float32(10), v.VX)
	})
	assert.Equal(t, 1, visited)
}

func TestForEachWritesThroughPointers(t *testing.T) {
	r := newRegistry(t)
	e1 := fiecs.CreateEntity2(r, Position{X: 1}, Velocity{VX: 2})
	e2 := fiecs.CreateEntity2(r, Position{X: 10}, Velocity{VX: 20})

	fiecs.ForEach2(r, func(_ fiecs.Entity, p *Position, v *Velocity) {
		p.X += v.VX
	})

	p, _ := fiecs.GetComponent[Position](r, &e1)
	assert.Equal(t, float32(3), p.X)
	p, _ = fiecs.GetComponent[Position](r, &e2)
	assert.Equal(t, float32(30), p.X)
}

func TestForEachHandlesAreValidDuringSweep(t *testing.T) {
	r := newRegistry(t)
	e := fiecs.CreateEntity2(r, Position{X: 4}, Velocity{})

	fiecs.ForEach(r, func(it fiecs.Entity, p *Position) {
		assert.True(t, it.Is(e))
		assert.True(t, it.Alive())
		assert.Equal(t, float32(4), p.X)
	})
}

func TestForEach3FiltersAndWiresColumns(t *testing.T) {
	r := newRegistry(t)
	// Declaration order varies per entity so column lookup, not positional
	// luck, has to pair each type with its data.
	fiecs.CreateEntity3(r, Position{X: 1}, Velocity{VX: 10}, Health{Current: 100})
	fiecs.CreateEntity3(r, Health{Current: 200}, Position{X: 2}, Velocity{VX: 20})
	fiecs.CreateEntity4(r, Velocity{VX: 30}, Health{Current: 300}, Position{X: 3}, Tag{})
	fiecs.CreateEntity2(r, Position{X: 9}, Velocity{VX: 90}) // no Health, filtered out

	got := map[float32]bool{}
	fiecs.ForEach3(r, func(_ fiecs.Entity, p *Position, v *Velocity, h *Health) {
		got[p.X] = true
		assert.Equal(t, p.X*10, v.VX)
		assert.Equal(t, int(p.X)*100, h.Current)
	})
	assert.Equal(t, map[float32]bool{1: true, 2: true, 3: true}, got)
}

func TestForEach4FiltersAndWiresColumns(t *testing.T) {
	r := newRegistry(t)
	fiecs.CreateEntity4(r, Position{X: 1}, Velocity{VX: 10}, Health{Current: 100}, Tag{})
	fiecs.CreateEntity4(r, Tag{}, Health{Current: 200}, Velocity{VX: 20}, Position{X: 2})
	fiecs.CreateEntity3(r, Position{X: 9}, Velocity{VX: 90}, Health{Current: 900}) // no Tag

	visited := 0
	fiecs.ForEach4(r, func(_ fiecs.Entity, p *Position, v *Velocity, h *Health, _ *Tag) {
		visited++
		assert.Equal(t, p.X*10, v.VX)
		assert.Equal(t, int(p.X)*100, h.Current)
	})
	assert.Equal(t, 2, visited)

	g, ok := fiecs.GroupOf4[Position, Velocity, Health, Tag](r)
	require.True(t, ok)
	assert.Equal(t, 2, g.Len())
	g2, ok := fiecs.GroupOf4[Tag, Health, Velocity, Position](r)
	require.True(t, ok)
	assert.Same(t, g, g2)
}

func TestForEachUntilStopsAtFirstMatch(t *testing.T) {
	r := newRegistry(t)
	for i := 1; i <= 5; i++ {
		fiecs.CreateEntity(r, Health{Current: i})
	}

	visited := 0
	found := fiecs.ForEachUntil(r, func(_ fiecs.Entity, h *Health) bool {
		visited++
		return h.Current == 3
	})
	assert.True(t, found)
	assert.Equal(t, 3, visited)

	found = fiecs.ForEachUntil(r, func(_ fiecs.Entity, h *Health) bool {
		return h.Current == 99
	})
	assert.False(t, found)
}

func TestForEachUntil2FiltersAndStops(t *testing.T) {
	r := newRegistry(t)
	fiecs.CreateEntity2(r, Position{X: 1}, Health{Current: 10})
	fiecs.CreateEntity2(r, Position{X: 2}, Health{Current: 20})
	fiecs.CreateEntity(r, Health{Current: 20}) // no Position, never visited

	visited := 0
	found := fiecs.ForEachUntil2(r, func(_ fiecs.Entity, p *Position, h *Health) bool {
		visited++
		assert.Equal(t, int(p.X)*10, h.Current)
		return h.Current == 10
	})
	assert.True(t, found)
	assert.Equal(t, 1, visited)

	found = fiecs.ForEachUntil2(r, func(_ fiecs.Entity, _ *Position, h *Health) bool {
		return h.Current == 99
	})
	assert.False(t, found)
}

func TestMutationDuringIterationPanics(t *testing.T) {
	r := newRegistry(t)
	e := fiecs.CreateEntity2(r, Position{}, Velocity{})
	other := fiecs.CreateEntity(r, Health{})

	require.Panics(t, func() {
		fiecs.ForEach(r, func(fiecs.Entity, *Position) {
			fiecs.CreateEntity(r, Position{})
		})
	})
	require.Panics(t, func() {
		fiecs.ForEach(r, func(fiecs.Entity, *Position) {
			r.DestroyEntity(&other)
		})
	})
	require.Panics(t, func() {
		fiecs.ForEach(r, func(fiecs.Entity, *Position) {
			fiecs.AddComponent(r, &e, Health{})
		})
	})
	require.Panics(t, func() {
		fiecs.ForEach(r, func(fiecs.Entity, *Position) {
			fiecs.RemoveComponent[Velocity](r, &e)
		})
	})
	require.Panics(t, func() {
		r.ForEachEntity(func(fiecs.Entity) {
			fiecs.CreateEntity(r, Position{})
		})
	})

	// The iterating state never leaks past a sweep, panicking or not.
	fiecs.CreateEntity(r, Position{X: 1})
}

func TestIterationStateClearsOnEarlyExit(t *testing.T) {
	r := newRegistry(t)
	fiecs.CreateEntity(r, Position{})
	fiecs.CreateEntity(r, Position{})

	fiecs.ForEachUntil(r, func(fiecs.Entity, *Position) bool {
		return true // bail on the first entity
	})

	require.NotPanics(t, func() { fiecs.CreateEntity(r, Position{}) })
}

func TestForEachGroupSkipsEmptyGroups(t *testing.T) {
	r := newRegistry(t)
	e := fiecs.CreateEntity(r, Position{})
	fiecs.CreateEntity2(r, Position{}, Velocity{})
	require.True(t, fiecs.AddComponent(r, &e, Velocity{})) // {Position} is now empty

	var keys []uint64
	r.ForEachGroup(func(g *fiecs.ComponentGroup) {
		keys = append(keys, g.Key())
		assert.Positive(t, g.Len())
		assert.Equal(t, 2, g.ComponentCount())
	})
	assert.Len(t, keys, 1)
	assert.Equal(t, 2, r.GroupCount())
}

func TestForEachEntityVisitsEveryLiveEntity(t *testing.T) {
	r := newRegistry(t)
	fiecs.CreateEntity(r, Position{})
	fiecs.CreateEntity2(r, Position{}, Velocity{})
	e := fiecs.CreateEntity(r, Health{})
	r.DestroyEntity(&e)

	seen := map[uint64]bool{}
	r.ForEachEntity(func(it fiecs.Entity) {
		assert.True(t, it.Alive())
		seen[it.Version()] = true
	})
	assert.Len(t, seen, 2)
}
