package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
)

var _ = Describe("Euler", func() {
	var integ *integrators.Euler

	Context("with a scalar decay problem", func() {
		BeforeEach(func() {
			integ = integrators.New(dynamo.ScalarFunc(func(_, u float64) float64 { return -u }))
			integ.SetScalarInitialCondition(1)
		})

		It("reports a single equation", func() {
			Expect(integ.Dim()).To(Equal(1))
		})

		It("pins the first grid point to the initial condition", func() {
			sol, err := integ.Solve([2]float64{0.5, 2.5}, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.T[0]).To(Equal(0.5))
			Expect(sol.U[0]).To(Equal(dynamo.State{1}))
		})

		It("lays out a uniform grid of N+1 points", func() {
			sol, err := integ.Solve([2]float64{0, 2}, 16)
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.T).To(HaveLen(17))
			Expect(sol.U).To(HaveLen(17))
			for n := 1; n < len(sol.T); n++ {
				Expect(sol.T[n] - sol.T[n-1]).To(BeNumerically("~", sol.Dt, 1e-12))
				Expect(sol.T[n]).To(BeNumerically(">", sol.T[n-1]))
			}
			Expect(sol.T[16]).To(BeNumerically("~", 2, 1e-12))
		})

		It("stays monotone and positive when dt is below the stability limit", func() {
			sol, err := integ.Solve([2]float64{0, 10}, 100)
			Expect(err).NotTo(HaveOccurred())
			u, err := sol.Scalar()
			Expect(err).NotTo(HaveOccurred())
			for n := 1; n < len(u); n++ {
				Expect(u[n]).To(BeNumerically("<", u[n-1]))
				Expect(u[n]).To(BeNumerically(">", 0))
			}
		})

		It("approaches the exact solution from below", func() {
			sol, err := integ.Solve([2]float64{0, 1}, 1000)
			Expect(err).NotTo(HaveOccurred())
			final := sol.Final()[0]
			Expect(final).To(BeNumerically("<", math.Exp(-1)))
			Expect(final).To(BeNumerically("~", math.Exp(-1), 1e-3))
		})
	})

	Context("with a vector initial condition", func() {
		BeforeEach(func() {
			integ = integrators.New(dynamo.SystemFunc(func(_ float64, u dynamo.State) dynamo.State {
				return dynamo.State{u[1], -u[0]}
			}))
			Expect(integ.SetInitialCondition(dynamo.State{1, 0})).To(Succeed())
		})

		It("produces rows of the initial condition's width", func() {
			sol, err := integ.Solve([2]float64{0, 1}, 10)
			Expect(err).NotTo(HaveOccurred())
			for _, u := range sol.U {
				Expect(u).To(HaveLen(2))
			}
			rows, cols := sol.Matrix().Dims()
			Expect(rows).To(Equal(11))
			Expect(cols).To(Equal(2))
		})

		It("gains energy on the harmonic oscillator", func() {
			sol, err := integ.Solve([2]float64{0, 10}, 1000)
			Expect(err).NotTo(HaveOccurred())
			final := sol.Final()
			Expect(final[0]*final[0] + final[1]*final[1]).To(BeNumerically(">", 1))
		})
	})

	Context("without an initial condition", func() {
		It("fails with a precondition error", func() {
			integ = integrators.New(dynamo.ScalarFunc(func(_, u float64) float64 { return u }))
			sol, err := integ.Solve([2]float64{0, 1}, 10)
			Expect(err).To(MatchError(dynamo.ErrNoInitialCondition))
			Expect(sol).To(BeNil())
		})
	})
})
