/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package disabled_test

import (
	"github.com/hyperledger/tomcrypt/common/metrics"
	"github.com/hyperledger/tomcrypt/common/metrics/disabled"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Provider", func() {
	var p metrics.Provider

	BeforeEach(func() {
		p = &disabled.Provider{}
	})

	It("creates counters that accept observations", func() {
		c := p.NewCounter(metrics.CounterOpts{Name: "operations"})
		Expect(c).NotTo(BeNil())

		c.Add(1)
		labelled := c.With("operation", "sign", "result", "success")
		Expect(labelled).To(BeIdenticalTo(c))
		labelled.Add(2)
	})

	It("creates gauges that accept observations", func() {
		g := p.NewGauge(metrics.GaugeOpts{})
		Expect(g).NotTo(BeNil())

		g.Set(1)
		g.Add(1)
		Expect(g.With("whatever")).To(BeIdenticalTo(g))
	})

	It("creates histograms that accept observations", func() {
		h := p.NewHistogram(metrics.HistogramOpts{})
		Expect(h).NotTo(BeNil())

		h.Observe(1)
		Expect(h.With("operation", "encrypt")).To(BeIdenticalTo(h))
	})
})
