/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package goruntime_test

import (
	"time"

	"github.com/hyperledger/tomcrypt/common/metrics"
	"github.com/hyperledger/tomcrypt/common/metrics/goruntime"
	"github.com/hyperledger/tomcrypt/common/metrics/metricsfakes"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Collector", func() {
	var (
		fakeProvider *metricsfakes.Provider
		fakeGauges   map[string]*metricsfakes.Gauge

		collector *goruntime.Collector
	)

	BeforeEach(func() {
		fakeGauges = map[string]*metricsfakes.Gauge{}
		fakeProvider = &metricsfakes.Provider{}
		fakeProvider.NewGaugeStub = func(o metrics.GaugeOpts) metrics.Gauge {
			if _, ok := fakeGauges[o.Name]; !ok {
				fakeGauges[o.Name] = &metricsfakes.Gauge{}
			}
			return fakeGauges[o.Name]
		}

		collector = goruntime.NewCollector(fakeProvider)
	})

	It("constructs a collector with the appropriate gauges", func() {
		Expect(fakeProvider.NewGaugeCallCount()).To(Equal(8))
		Expect(collector).To(Equal(&goruntime.Collector{
			GoRoutines:   fakeGauges["goroutines"],
			HeapAlloc:    fakeGauges["heap_alloc_bytes"],
			TotalAlloc:   fakeGauges["total_alloc_bytes"],
			Mallocs:      fakeGauges["mallocs"],
			Frees:        fakeGauges["frees"],
			HeapObjects:  fakeGauges["heap_objects"],
			NumGC:        fakeGauges["gc_completed"],
			PauseTotalNs: fakeGauges["gc_pause_total_ns"],
		}))
	})

	It("acquires runtime statistics", func() {
		stats := goruntime.CollectStats()
		Expect(stats.GoRoutines).To(BeNumerically(">", 0))
		Expect(stats.MemStats.HeapAlloc).To(BeNumerically(">", 0))
	})

	It("collects and publishes statistics", func() {
		ticks := make(chan time.Time, 3)
		ticks <- time.Now()
		ticks <- time.Now().Add(time.Second)
		ticks <- time.Now().Add(2 * time.Second)
		close(ticks)

		collector.CollectAndPublish(ticks)
		for _, gauge := range fakeGauges {
			Expect(gauge.SetCallCount()).To(Equal(3))
		}
	})

	DescribeTable("Publish",
		func(name string, stats goruntime.Stats, expected float64) {
			collector.Publish(stats)

			Expect(fakeGauges[name]).NotTo(BeNil())
			Expect(fakeGauges[name].SetCallCount()).To(Equal(1))
			Expect(fakeGauges[name].SetArgsForCall(0)).To(Equal(expected))
		},
		Entry("goroutines", "goroutines", goruntime.Stats{GoRoutines: 2}, float64(2)),
		Entry("heap alloc", "heap_alloc_bytes", withMem(func(s *goruntime.Stats) { s.MemStats.HeapAlloc = 4 }), float64(4)),
		Entry("total alloc", "total_alloc_bytes", withMem(func(s *goruntime.Stats) { s.MemStats.TotalAlloc = 5 }), float64(5)),
		Entry("mallocs", "mallocs", withMem(func(s *goruntime.Stats) { s.MemStats.Mallocs = 6 }), float64(6)),
		Entry("frees", "frees", withMem(func(s *goruntime.Stats) { s.MemStats.Frees = 7 }), float64(7)),
		Entry("heap objects", "heap_objects", withMem(func(s *goruntime.Stats) { s.MemStats.HeapObjects = 12 }), float64(12)),
		Entry("completed GCs", "gc_completed", withMem(func(s *goruntime.Stats) { s.MemStats.NumGC = 27 }), float64(27)),
		Entry("GC pause", "gc_pause_total_ns", withMem(func(s *goruntime.Stats) { s.MemStats.PauseTotalNs = 24 }), float64(24)),
	)
})

func withMem(f func(*goruntime.Stats)) goruntime.Stats {
	var s goruntime.Stats
	f(&s)
	return s
}
