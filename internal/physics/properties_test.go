package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/numeric"
	"github.com/san-kum/fluidballs/internal/physics"
	"github.com/san-kum/fluidballs/internal/rng"
)

type kernel interface {
	dynamo.System
	Collide() int
	Confine()
	Integrate()
	Place(i int, b dynamo.Body)
	Body(i int) dynamo.Body
}

func crowded(e float64) physics.Params {
	return physics.Params{
		Width: 144, Height: 168, Count: 60, MaxRadius: 12, Restitution: e,
		InitialSpeed: 3, Acceleration: dynamo.Vec2{X: 0.05, Y: 0.2},
	}
}

func build(backend string, p physics.Params, seed int64) kernel {
	sys, err := physics.NewSystem(backend, p, rng.FromSeed(seed))
	Expect(err).NotTo(HaveOccurred())
	k, ok := sys.(kernel)
	Expect(ok).To(BeTrue())
	return k
}

var _ = Describe("World", func() {
	for _, backend := range numeric.Backends() {
		backend := backend

		Context("on the "+backend+" backend", func() {
			It("keeps every ball inside the arena after confinement", func() {
				k := build(backend, crowded(0.97), 3)
				w, h := k.Bounds()
				tol := 1e-9
				var bodies []dynamo.Body
				for tick := 0; tick < 300; tick++ {
					k.Collide()
					k.Confine()
					bodies = k.Bodies(bodies)
					for i, b := range bodies {
						Expect(b.X).To(BeNumerically(">=", b.Radius-tol), "ball %d tick %d", i, tick)
						Expect(b.X).To(BeNumerically("<=", w-b.Radius+tol), "ball %d tick %d", i, tick)
						Expect(b.Y).To(BeNumerically(">=", b.Radius-tol), "ball %d tick %d", i, tick)
						Expect(b.Y).To(BeNumerically("<=", h-b.Radius+tol), "ball %d tick %d", i, tick)
					}
					k.Integrate()
				}
			})

			It("never changes radius or mass", func() {
				k := build(backend, crowded(0.9), 5)
				initial := k.Bodies(nil)
				var bodies []dynamo.Body
				for tick := 0; tick < 200; tick++ {
					k.Step()
				}
				bodies = k.Bodies(bodies)
				Expect(bodies).To(HaveLen(len(initial)))
				for i := range bodies {
					Expect(bodies[i].Radius).To(Equal(initial[i].Radius))
					Expect(bodies[i].Mass).To(Equal(initial[i].Mass))
					Expect(bodies[i].Mass).To(BeNumerically(">", 0))
				}
			})

			It("is deterministic for a given seed", func() {
				a := build(backend, crowded(0.97), 11)
				b := build(backend, crowded(0.97), 11)
				for tick := 0; tick < 150; tick++ {
					Expect(a.Step()).To(Equal(b.Step()))
				}
				Expect(a.Bodies(nil)).To(Equal(b.Bodies(nil)))
			})
		})
	}

	Describe("collision response", func() {
		var k kernel

		BeforeEach(func() {
			p := physics.Params{Width: 100, Height: 100, Count: 2, MaxRadius: 10, Restitution: 1}
			k = build(numeric.BackendFloat, p, 0)
		})

		It("swaps normal velocities of equal masses when lossless", func() {
			angle := 0.7
			nx, ny := math.Cos(angle), math.Sin(angle)
			k.Place(0, dynamo.Body{X: 40, Y: 40, VX: 2, VY: -1, Radius: 6})
			k.Place(1, dynamo.Body{X: 40 + 10*nx, Y: 40 + 10*ny, VX: -0.5, VY: 1.5, Radius: 6})
			before := k.Bodies(nil)

			Expect(k.Collide()).To(Equal(1))
			after := k.Bodies(nil)

			normal := func(b dynamo.Body) float64 { return b.VX*nx + b.VY*ny }
			tangent := func(b dynamo.Body) float64 { return -b.VX*ny + b.VY*nx }
			Expect(normal(after[0])).To(BeNumerically("~", normal(before[1]), 1e-9))
			Expect(normal(after[1])).To(BeNumerically("~", normal(before[0]), 1e-9))
			Expect(tangent(after[0])).To(BeNumerically("~", tangent(before[0]), 1e-9))
			Expect(tangent(after[1])).To(BeNumerically("~", tangent(before[1]), 1e-9))
		})

		It("removes exactly the overlap along the line of centres", func() {
			k.Place(0, dynamo.Body{X: 30, Y: 30, Radius: 7})
			k.Place(1, dynamo.Body{X: 36, Y: 38, Radius: 5})
			Expect(k.Collide()).To(Equal(1))

			a, b := k.Body(0), k.Body(1)
			Expect(math.Hypot(b.X-a.X, b.Y-a.Y)).To(BeNumerically("~", 12, 1e-9))
			// overlap 2, each centre moves 1 along (0.6, 0.8)
			Expect(a.X).To(BeNumerically("~", 29.4, 1e-9))
			Expect(a.Y).To(BeNumerically("~", 29.2, 1e-9))
			Expect(b.X).To(BeNumerically("~", 36.6, 1e-9))
			Expect(b.Y).To(BeNumerically("~", 38.8, 1e-9))
		})
	})

	Describe("energy", func() {
		It("does not increase across collision resolution when e < 1", func() {
			k := build(numeric.BackendFloat, crowded(0.8), 21)
			var bodies []dynamo.Body
			for tick := 0; tick < 200; tick++ {
				bodies = k.Bodies(bodies)
				before := dynamo.TotalKineticEnergy(bodies)
				k.Collide()
				bodies = k.Bodies(bodies)
				after := dynamo.TotalKineticEnergy(bodies)
				Expect(after).To(BeNumerically("<=", before*(1+1e-12)+1e-12), "tick %d", tick)
				k.Confine()
				k.Integrate()
			}
		})

		It("strictly decreases when approaching balls collide", func() {
			p := physics.Params{Width: 100, Height: 100, Count: 3, MaxRadius: 10, Restitution: 0.9}
			k := build(numeric.BackendFloat, p, 0)
			k.Place(0, dynamo.Body{X: 30, Y: 50, VX: 2, Radius: 5})
			k.Place(1, dynamo.Body{X: 38, Y: 52, VX: -1, VY: 0.5, Radius: 7})
			k.Place(2, dynamo.Body{X: 80, Y: 80, VY: 1, Radius: 3})

			before := dynamo.TotalKineticEnergy(k.Bodies(nil))
			Expect(k.Collide()).To(Equal(1))
			after := dynamo.TotalKineticEnergy(k.Bodies(nil))
			Expect(after).To(BeNumerically("<", before))
		})
	})
})
