package montecarlo_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sirstab/internal/dynamo"
	"github.com/san-kum/sirstab/internal/epidemic"
	"github.com/san-kum/sirstab/internal/montecarlo"
)

func quickOptions(mode montecarlo.Mode) montecarlo.Options {
	opts := montecarlo.DefaultOptions(mode)
	opts.Samples = 10
	opts.Seed = 42
	opts.Points = 200
	return opts
}

var _ = Describe("Driver", func() {
	Describe("eigenvalue mode", func() {
		var res *montecarlo.Result

		BeforeEach(func(ctx SpecContext) {
			var err error
			res, err = montecarlo.New(quickOptions(montecarlo.ModeEigenvalues), nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("accounts for every draw", func() {
			Expect(res.Drawn).To(Equal(10))
			Expect(res.Retained() + res.Rejected).To(Equal(res.Drawn))
			Expect(res.Seed).To(Equal(int64(42)))
		})

		It("only retains samples above the threshold", func() {
			for _, rec := range res.Records {
				Expect(rec.R0).To(BeNumerically(">", 1.25))
				Expect(rec.R0).To(Equal(epidemic.R0(rec.Params(0.01, 0.01))))
				Expect(rec.Beta).To(And(BeNumerically(">=", 0.4), BeNumerically("<", 1)))
				Expect(rec.U).To(And(BeNumerically(">=", 0.01), BeNumerically("<", 0.4)))
			}
		})

		It("keeps one eigenvalue pair per record", func() {
			Expect(res.Eigenvalues).To(HaveLen(len(res.Records)))
			for i, rec := range res.Records {
				j := epidemic.Jacobian(rec.S, rec.I, rec.Params(0.01, 0.01))
				eigs, err := epidemic.Eigenvalues(j)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Eigenvalues[i]).To(Equal(eigs))
			}
			Expect(res.Ratios).To(BeEmpty())
		})

		It("ends inside the unit square", func() {
			for _, rec := range res.Records {
				Expect(rec.S).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
				Expect(rec.I).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
			}
		})

		It("integrates the example trajectory", func() {
			Expect(res.Example.States).To(HaveLen(200))
			Expect(res.Example.Times[199]).To(Equal(500.0))
			Expect(res.Example.States[0]).To(Equal(dynamo.State{0.05, 0.01}))
		})
	})

	Describe("stability ratio mode", func() {
		It("counts every retained sample as stable", func(ctx SpecContext) {
			res, err := montecarlo.New(quickOptions(montecarlo.ModeRatio), nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Eigenvalues).To(BeEmpty())
			Expect(res.StableCount).To(Equal(res.Retained()))
			Expect(res.Ratios).To(HaveLen(res.Retained()))
			for _, r := range res.Ratios {
				Expect(r).To(Equal(1.0))
			}
			for _, rec := range res.Records {
				Expect(rec.R0).To(BeNumerically(">", 1.0))
			}
		})
	})

	Describe("reproducibility", func() {
		It("returns identical data for the same seed", func(ctx SpecContext) {
			opts := quickOptions(montecarlo.ModeEigenvalues)

			a, err := montecarlo.New(opts, nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			b, err := montecarlo.New(opts, nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(b.Records).To(Equal(a.Records))
			Expect(b.Eigenvalues).To(Equal(a.Eigenvalues))
		})

		It("draws and reports a seed when none is given", func(ctx SpecContext) {
			opts := quickOptions(montecarlo.ModeRatio)
			opts.Seed = 0
			opts.Samples = 2

			res, err := montecarlo.New(opts, nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Seed).NotTo(BeZero())
		})
	})

	Describe("edge cases", func() {
		It("succeeds with nothing retained", func(ctx SpecContext) {
			opts := quickOptions(montecarlo.ModeEigenvalues)
			opts.Threshold = 1e9

			res, err := montecarlo.New(opts, nil).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Records).To(BeEmpty())
			Expect(res.Rejected).To(Equal(10))
			Expect(res.Example).NotTo(BeNil())
		})

		It("notifies observers for every draw", func(ctx SpecContext) {
			seen := 0
			retained := 0
			d := montecarlo.New(quickOptions(montecarlo.ModeRatio), nil)
			d.AddObserver(montecarlo.ObserverFunc(func(s montecarlo.Sample) {
				Expect(s.Index).To(Equal(seen))
				seen++
				if s.Retained {
					retained++
				}
			}))

			res, err := d.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal(10))
			Expect(retained).To(Equal(res.Retained()))
		})

		It("rejects an unknown integrator", func(ctx SpecContext) {
			opts := quickOptions(montecarlo.ModeRatio)
			opts.Integrator = "leapfrog"
			_, err := montecarlo.New(opts, nil).Run(ctx)
			Expect(err).To(MatchError(ContainSubstring("unknown integrator")))
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := montecarlo.New(quickOptions(montecarlo.ModeRatio), nil).Run(ctx)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})

		It("validates options", func() {
			opts := quickOptions(montecarlo.ModeRatio)
			opts.Points = 1
			Expect(opts.Validate()).To(HaveOccurred())

			opts = quickOptions(montecarlo.Mode("bogus"))
			Expect(errors.Is(opts.Validate(), montecarlo.ErrUnknownMode)).To(BeTrue())
		})
	})
})

var _ = DescribeTable("ParseMode",
	func(in string, want montecarlo.Mode, ok bool) {
		got, err := montecarlo.ParseMode(in)
		if !ok {
			Expect(errors.Is(err, montecarlo.ErrUnknownMode)).To(BeTrue())
			return
		}
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(got.FigureName()).To(HaveSuffix(".svg"))
	},
	Entry("eigenvalues", "eigenvalues", montecarlo.ModeEigenvalues, true),
	Entry("short eigen", "eig", montecarlo.ModeEigenvalues, true),
	Entry("ratio", "Ratio", montecarlo.ModeRatio, true),
	Entry("stability ratio", "stability-ratio", montecarlo.ModeRatio, true),
	Entry("unknown", "lyapunov", montecarlo.Mode(""), false),
)
