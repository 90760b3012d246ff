package fiecs_test

import (
	"testing"

	"github.com/danieljpetersen/fiecs"
)

type bpos struct{ X, Y float64 }
type bvel struct{ VX, VY float64 }
type bhp struct{ HP int64 }

func benchRegistry() *fiecs.Registry {
	return fiecs.NewRegistry(
		fiecs.Component[bpos](),
		fiecs.Component[bvel](),
		fiecs.Component[bhp](),
	)
}

// go test -bench BenchmarkCreateEntity -benchmem . -count 1
func BenchmarkCreateEntity(b *testing.B) {
	r := benchRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fiecs.CreateEntity2(r, bpos{X: 1}, bvel{VX: 1})
	}
}

func BenchmarkGetComponent(b *testing.B) {
	r := benchRegistry()
	e := fiecs.CreateEntity2(r, bpos{X: 1}, bvel{VX: 1})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, _ := fiecs.GetComponent[bpos](r, &e)
		p.X += 1
	}
}

// The hot path the grouping scheme exists for: a flat sweep over one group.
func BenchmarkForEach2(b *testing.B) {
	r := benchRegistry()
	for i := 0; i < 10000; i++ {
		fiecs.CreateEntity2(r, bpos{}, bvel{VX: 1, VY: 1})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fiecs.ForEach2(r, func(_ fiecs.Entity, p *bpos, v *bvel) {
			p.X += v.VX
			p.Y += v.VY
		})
	}
}

// Relocation is the expensive path: two groups and up to two remap entries
// per add/remove pair.
func BenchmarkAddRemoveComponent(b *testing.B) {
	r := benchRegistry()
	entities := make([]fiecs.Entity, 1000)
	for i := range entities {
		entities[i] = fiecs.CreateEntity2(r, bpos{}, bvel{})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := &entities[i%len(entities)]
		fiecs.AddComponent(r, e, bhp{HP: 100})
		fiecs.RemoveComponent[bhp](r, e)
	}
}

// Worst-case resolution: a fresh stale copy every access, so every call
// pays the remap hop instead of amortizing it away.
func BenchmarkStaleHandleResolution(b *testing.B) {
	r := benchRegistry()
	entities := make([]fiecs.Entity, 1000)
	for i := range entities {
		entities[i] = fiecs.CreateEntity(r, bpos{X: float64(i)})
	}
	stale := entities
	for i := 0; i < 500; i++ {
		r.DestroyEntity(&entities[i])
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := stale[500+i%500]
		fiecs.GetComponent[bpos](r, &e)
	}
}
