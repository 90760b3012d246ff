// Profiling:
// go build ./profile/churn
// go tool pprof -http=":8000" -nodefraction=0.001 ./churn mem.pprof

package main

import (
	"github.com/pkg/profile"

	"github.com/danieljpetersen/fiecs"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

// run stresses the relocation and remap machinery: create, widen, narrow,
// sweep, destroy, every iteration.
func run(rounds, iters, numEntities int) {
	for round := 0; round < rounds; round++ {
		r := fiecs.NewRegistry(
			fiecs.Component[comp1](),
			fiecs.Component[comp2](),
			fiecs.Component[comp3](),
		)
		handles := make([]fiecs.Entity, 0, numEntities)
		for iter := 0; iter < iters; iter++ {
			handles = handles[:0]
			for i := 0; i < numEntities; i++ {
				handles = append(handles, fiecs.CreateEntity2(r, comp1{V: int64(i)}, comp2{W: int64(i)}))
			}
			for i := range handles {
				fiecs.AddComponent(r, &handles[i], comp3{V: 1})
			}
			fiecs.ForEach2(r, func(_ fiecs.Entity, a *comp1, b *comp2) {
				a.V += b.V
				a.W += b.W
			})
			for i := range handles {
				fiecs.RemoveComponent[comp3](r, &handles[i])
			}
			for i := range handles {
				r.DestroyEntity(&handles[i])
			}
		}
	}
}
