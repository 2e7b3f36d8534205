package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/integrators"
	"github.com/san-kum/tripend/internal/models"
)

func mustNew(opts ...Option) *Simulation {
	s, err := New(opts...)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func energyDrift(m dynamo.Method, dt float64, steps int) float64 {
	s := mustNew(WithMethod(m))
	e0 := s.TotalEnergy()
	maxDrift := 0.0
	for i := 0; i < steps; i++ {
		Expect(s.Move(dt)).To(Succeed())
		maxDrift = math.Max(maxDrift, math.Abs(s.TotalEnergy()-e0))
	}
	return maxDrift
}

var _ = Describe("Simulation", func() {
	var s *Simulation

	BeforeEach(func() {
		s = mustNew()
	})

	Describe("construction", func() {
		It("starts at the canonical initial condition", func() {
			Expect(s.State()).To(Equal(dynamo.CanonicalState()))
			Expect(s.Params()).To(Equal(dynamo.DefaultParams()))
			Expect(s.Method()).To(Equal(dynamo.Euler))
			Expect(s.Steps()).To(BeZero())
		})

		It("rejects degenerate parameters", func() {
			p := dynamo.DefaultParams()
			p.Length[0] = 0
			_, err := New(WithParams(p))
			Expect(err).To(MatchError(dynamo.ErrDegenerateParams))

			p = dynamo.DefaultParams()
			p.Mass[1] = -1
			_, err = New(WithParams(p))
			Expect(err).To(MatchError(dynamo.ErrDegenerateParams))
		})

		It("rejects an unknown initial method", func() {
			_, err := New(WithMethod(dynamo.Method(0)))
			Expect(err).To(MatchError(dynamo.ErrInvalidMethod))
		})
	})

	Describe("Move", func() {
		It("rejects non-positive and non-finite timesteps", func() {
			for _, dt := range []float64{0, -0.01, math.NaN(), math.Inf(1)} {
				Expect(s.Move(dt)).To(MatchError(dynamo.ErrInvalidArgument))
			}
			Expect(s.State()).To(Equal(dynamo.CanonicalState()))
			Expect(s.Steps()).To(BeZero())
		})

		It("advances time and the step counter", func() {
			Expect(s.Move(0.01)).To(Succeed())
			Expect(s.Move(0.01)).To(Succeed())
			Expect(s.Steps()).To(Equal(2))
			Expect(s.Time()).To(BeNumerically("~", 0.02, 1e-15))
			Expect(s.State()).NotTo(Equal(dynamo.CanonicalState()))
		})

		It("keeps every angle in [0, 2π)", func() {
			for _, m := range dynamo.Methods {
				Expect(s.SetIntegrateMethod(m)).To(Succeed())
				s.Initialize()
				for i := 0; i < 3000; i++ {
					Expect(s.Move(0.0016)).To(Succeed())
					for _, th := range s.State().Theta {
						Expect(th).To(BeNumerically(">=", 0))
						Expect(th).To(BeNumerically("<", 2*math.Pi))
					}
				}
			}
		})

		It("leaves the bottom equilibrium unchanged", func() {
			for _, m := range dynamo.Methods {
				Expect(s.SetIntegrateMethod(m)).To(Succeed())
				Expect(s.SetState(dynamo.State{})).To(Succeed())
				for i := 0; i < 200; i++ {
					Expect(s.Move(0.01)).To(Succeed())
				}
				Expect(s.State()).To(Equal(dynamo.State{}))
			}
		})
	})

	Describe("Initialize", func() {
		It("resets state but keeps the method", func() {
			Expect(s.SetIntegrateMethod(dynamo.RungeKutta4)).To(Succeed())
			for i := 0; i < 50; i++ {
				Expect(s.Move(0.01)).To(Succeed())
			}

			s.Initialize()
			Expect(s.State()).To(Equal(dynamo.CanonicalState()))
			Expect(s.Method()).To(Equal(dynamo.RungeKutta4))
			Expect(s.Time()).To(BeZero())
		})
	})

	Describe("SetIntegrateMethod", func() {
		It("rejects an invalid selector and keeps the previous method", func() {
			Expect(s.SetIntegrateMethod(dynamo.Heun)).To(Succeed())
			Expect(s.SetIntegrateMethod(dynamo.Method(4))).To(MatchError(dynamo.ErrInvalidMethod))
			Expect(s.Method()).To(Equal(dynamo.Heun))
			Expect(s.ActiveMethodLabel()).To(Equal("Heun's Method"))
		})

		It("labels each method", func() {
			labels := map[dynamo.Method]string{
				dynamo.Euler:       "Euler Method",
				dynamo.Heun:        "Heun's Method",
				dynamo.RungeKutta4: "Runge-Kutta Method",
			}
			for m, label := range labels {
				Expect(s.SetIntegrateMethod(m)).To(Succeed())
				Expect(s.ActiveMethodLabel()).To(Equal(label))
				Expect(s.Stages()).To(Equal(map[dynamo.Method]int{dynamo.Euler: 1, dynamo.Heun: 2, dynamo.RungeKutta4: 4}[m]))
			}
		})

		It("hot-swaps without perturbing the state", func() {
			Expect(s.Move(0.01)).To(Succeed())
			before := s.State()

			Expect(s.SetIntegrateMethod(dynamo.RungeKutta4)).To(Succeed())
			Expect(s.State()).To(Equal(before))

			model, err := models.NewTriplePendulum(dynamo.DefaultParams(), models.GaussJordan{})
			Expect(err).NotTo(HaveOccurred())
			want, err := integrators.NewRK4().Step(model, before, 0.01)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Move(0.01)).To(Succeed())
			Expect(s.State()).To(Equal(want))
		})
	})

	Describe("SetState", func() {
		It("normalises angles and rejects NaN", func() {
			Expect(s.SetState(dynamo.State{Theta: [3]float64{-math.Pi / 2, 7 * math.Pi, 0}})).To(Succeed())
			Expect(s.State().Theta[0]).To(BeNumerically("~", 1.5*math.Pi, 1e-12))
			Expect(s.State().Theta[1]).To(BeNumerically("~", math.Pi, 1e-12))

			Expect(s.SetState(dynamo.State{Omega: [3]float64{math.NaN(), 0, 0}})).To(MatchError(dynamo.ErrInvalidArgument))
		})
	})

	Describe("Vertices", func() {
		It("starts at the base and spans each rod length", func() {
			l := s.Params().Length
			for i := 0; i < 500; i++ {
				pts := s.Vertices()
				Expect(pts[0]).To(Equal(dynamo.Point{}))
				for j := 0; j < dynamo.Links; j++ {
					d := math.Hypot(pts[j+1].X-pts[j].X, pts[j+1].Y-pts[j].Y)
					Expect(d).To(BeNumerically("~", l[j], 1e-12))
				}
				Expect(s.Move(0.005)).To(Succeed())
			}
		})
	})

	Describe("energy", func() {
		It("sums kinetic and potential", func() {
			Expect(s.TotalEnergy()).To(BeNumerically("~", s.KineticEnergy()+s.PotentialEnergy(), 1e-12))
			Expect(s.KineticEnergy()).To(BeNumerically(">", 0))
		})

		It("is near-conserved by RK4 and drifts under Euler", func() {
			rk4 := energyDrift(dynamo.RungeKutta4, 0.001, 10000)
			euler := energyDrift(dynamo.Euler, 0.001, 10000)

			Expect(rk4).To(BeNumerically("<", 1e-3))
			Expect(euler).To(BeNumerically(">", 10*rk4))
		})
	})

	Describe("determinism", func() {
		It("reproduces identical trajectories", func() {
			a := mustNew(WithMethod(dynamo.RungeKutta4))
			b := mustNew(WithMethod(dynamo.RungeKutta4))
			dts := []float64{0.001, 0.002, 0.0016, 0.0005}
			for i := 0; i < 2000; i++ {
				dt := dts[i%len(dts)]
				Expect(a.Move(dt)).To(Succeed())
				Expect(b.Move(dt)).To(Succeed())
				Expect(a.State()).To(Equal(b.State()))
			}
		})

		It("matches between solvers for valid parameters", func() {
			a := mustNew(WithMethod(dynamo.RungeKutta4))
			b := mustNew(WithMethod(dynamo.RungeKutta4), WithSolver(models.LU{}))
			for i := 0; i < 500; i++ {
				Expect(a.Move(0.001)).To(Succeed())
				Expect(b.Move(0.001)).To(Succeed())
			}
			for i := 0; i < dynamo.Links; i++ {
				Expect(a.State().Theta[i]).To(BeNumerically("~", b.State().Theta[i], 1e-9))
				Expect(a.State().Omega[i]).To(BeNumerically("~", b.State().Omega[i], 1e-9))
			}
		})
	})
})
