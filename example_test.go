package ecs_test

import (
	"fmt"

	ecs "github.com/wrenforge/ecsframe"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }
type Name struct{ Value string }

// Example_basic shows spawning entities, attaching components, and
// iterating a two-component query.
func Example_basic() {
	w := ecs.NewWorld()

	for i := 0; i < 3; i++ {
		e := w.Spawn()
		ecs.Insert(w, e, Position{})
	}

	player := w.Spawn()
	ecs.Insert(w, player, Position{X: 10, Y: 20})
	ecs.Insert(w, player, Velocity{X: 1, Y: 2})
	ecs.Insert(w, player, Name{Value: "Player"})

	q := ecs.NewQuery2[Position, Velocity]()
	fmt.Printf("entities with position and velocity: %d\n", q.Count(w))

	for e, row := range q.Iter(w) {
		row.A.X += row.B.X
		row.A.Y += row.B.Y
		name, err := ecs.Get[Name](w, e)
		if err != nil {
			continue
		}
		fmt.Printf("updated %s to position (%.1f, %.1f)\n", name.Value, row.A.X, row.A.Y)
	}

	// Output:
	// entities with position and velocity: 1
	// updated Player to position (11.0, 22.0)
}

// Example_queries shows With/Without filters narrowing a query.
func Example_queries() {
	w := ecs.NewWorld()

	for i := 0; i < 3; i++ {
		e := w.Spawn()
		ecs.Insert(w, e, Position{})
	}
	for i := 0; i < 2; i++ {
		e := w.Spawn()
		ecs.Insert(w, e, Position{})
		ecs.Insert(w, e, Velocity{})
	}

	withVelocity := ecs.NewQuery1[Position]().With(ecs.ComponentIDOf[Velocity]())
	fmt.Printf("with velocity: %d\n", withVelocity.Count(w))

	withoutVelocity := ecs.NewQuery1[Position]().Without(ecs.ComponentIDOf[Velocity]())
	fmt.Printf("without velocity: %d\n", withoutVelocity.Count(w))

	// Output:
	// with velocity: 2
	// without velocity: 3
}
