package finance_test

import (
	"github.com/jortega/finanzas/internal/finance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Prediction Heuristic", func() {
	Context("without history", func() {
		It("floors the one-time estimate at 20% of recurring spend", func() {
			p := finance.Predict(1000, nil, 0)
			Expect(p.EstimatedOneTime).To(BeNumerically("~", 200, 1e-9))
			Expect(p.Total).To(BeNumerically("~", 1200, 1e-9))
			Expect(p.Confidence).To(BeNumerically("<=", 70))
			Expect(p.Trend).To(Equal(finance.TrendStable))
		})

		It("keeps confidence low but nonzero with some recurring expenses", func() {
			p := finance.Predict(500, nil, 3)
			Expect(p.Confidence).To(Equal(60))
		})

		It("drops to the minimum confidence with nothing to go on", func() {
			p := finance.Predict(0, nil, 0)
			Expect(p.Confidence).To(Equal(50))
			Expect(p.Total).To(BeZero())
		})
	})

	Context("with history", func() {
		It("inflates the historical average by 10%", func() {
			p := finance.Predict(0, []float64{1000, 1000}, 5)
			Expect(p.EstimatedOneTime).To(BeNumerically("~", 1100, 1e-9))
		})

		It("prefers the 20% floor when history is lower", func() {
			p := finance.Predict(10000, []float64{100}, 5)
			Expect(p.EstimatedOneTime).To(BeNumerically("~", 2000, 1e-9))
		})

		It("grows confidence with years of history, capped at 90", func() {
			Expect(finance.Predict(100, []float64{50}, 1).Confidence).To(Equal(65))
			Expect(finance.Predict(100, []float64{50, 60}, 1).Confidence).To(Equal(80))
			Expect(finance.Predict(100, []float64{50, 60, 70}, 1).Confidence).To(Equal(90))
			Expect(finance.Predict(100, []float64{50, 60, 70, 80}, 1).Confidence).To(Equal(90))
		})

		It("classifies the trend against the historical average", func() {
			// total 1100+0=1100 vs average 1000: +10% is within threshold
			Expect(finance.Predict(0, []float64{1000}, 0).Trend).To(Equal(finance.TrendStable))
			// total 1320 vs average 1000: clearly up
			Expect(finance.Predict(200, []float64{1000}, 0).Trend).To(Equal(finance.TrendUp))
		})

		It("stays stable when the historical average is zero", func() {
			p := finance.Predict(100, []float64{0, 0}, 0)
			Expect(p.Trend).To(Equal(finance.TrendStable))
		})
	})
})
