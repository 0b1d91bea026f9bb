/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus_test

import (
	"github.com/hyperledger/tomcrypt/common/metrics"
	"github.com/hyperledger/tomcrypt/common/metrics/prometheus"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var _ = Describe("Provider", func() {
	var (
		registry *prom.Registry
		p        *prometheus.Provider
	)

	BeforeEach(func() {
		registry = prom.NewRegistry()
		p = &prometheus.Provider{Registerer: registry}
	})

	find := func(name string) *dto.MetricFamily {
		families, err := registry.Gather()
		Expect(err).NotTo(HaveOccurred())
		for _, f := range families {
			if f.GetName() == name {
				return f
			}
		}
		return nil
	}

	It("creates counters with labels", func() {
		c := p.NewCounter(metrics.CounterOpts{
			Namespace:  "tomcrypt",
			Subsystem:  "bccsp",
			Name:       "operations",
			Help:       "help",
			LabelNames: []string{"operation", "result"},
		})
		c.With("operation", "sign", "result", "success").Add(2)
		c.With("operation", "sign", "result", "success").Add(1)

		f := find("tomcrypt_bccsp_operations")
		Expect(f).NotTo(BeNil())
		Expect(f.GetMetric()).To(HaveLen(1))
		Expect(f.GetMetric()[0].GetCounter().GetValue()).To(Equal(3.0))
		Expect(f.GetMetric()[0].GetLabel()).To(HaveLen(2))
	})

	It("creates gauges", func() {
		g := p.NewGauge(metrics.GaugeOpts{Name: "keys", Help: "help"})
		g.Set(4)
		g.Add(1)

		f := find("keys")
		Expect(f).NotTo(BeNil())
		Expect(f.GetMetric()[0].GetGauge().GetValue()).To(Equal(5.0))
	})

	It("creates histograms with buckets", func() {
		h := p.NewHistogram(metrics.HistogramOpts{
			Name:       "duration",
			Help:       "help",
			Buckets:    []float64{0.1, 1},
			LabelNames: []string{"operation"},
		})
		h.With("operation", "encrypt").Observe(0.5)

		f := find("duration")
		Expect(f).NotTo(BeNil())
		hist := f.GetMetric()[0].GetHistogram()
		Expect(hist.GetSampleCount()).To(Equal(uint64(1)))
		Expect(hist.GetBucket()).To(HaveLen(2))
	})

	It("panics on duplicate registration", func() {
		p.NewCounter(metrics.CounterOpts{Name: "dup", Help: "help"})
		Expect(func() { p.NewCounter(metrics.CounterOpts{Name: "dup", Help: "help"}) }).To(Panic())
	})
})
