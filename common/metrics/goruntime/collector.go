/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package goruntime

import (
	"runtime"
	"time"

	"github.com/hyperledger/tomcrypt/common/metrics"
)

var (
	goRoutinesGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "goroutines",
		Help:      "The number of goroutines that currently exist.",
	}
	heapAllocGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "heap_alloc_bytes",
		Help:      "Bytes of allocated heap objects.",
	}
	totalAllocGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "total_alloc_bytes",
		Help:      "Cumulative bytes allocated for heap objects.",
	}
	mallocsGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "mallocs",
		Help:      "Cumulative count of heap objects allocated.",
	}
	freesGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "frees",
		Help:      "Cumulative count of heap objects freed.",
	}
	heapObjectsGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "heap_objects",
		Help:      "Number of allocated heap objects.",
	}
	numGCGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "gc_completed",
		Help:      "Number of completed GC cycles.",
	}
	pauseTotalNsGaugeOpts = metrics.GaugeOpts{
		Namespace: "tomcrypt",
		Subsystem: "runtime",
		Name:      "gc_pause_total_ns",
		Help:      "Cumulative nanoseconds in GC stop-the-world pauses.",
	}
)

// Collector publishes Go runtime statistics as gauges.
type Collector struct {
	GoRoutines   metrics.Gauge
	HeapAlloc    metrics.Gauge
	TotalAlloc   metrics.Gauge
	Mallocs      metrics.Gauge
	Frees        metrics.Gauge
	HeapObjects  metrics.Gauge
	NumGC        metrics.Gauge
	PauseTotalNs metrics.Gauge
}

func NewCollector(p metrics.Provider) *Collector {
	return &Collector{
		GoRoutines:   p.NewGauge(goRoutinesGaugeOpts),
		HeapAlloc:    p.NewGauge(heapAllocGaugeOpts),
		TotalAlloc:   p.NewGauge(totalAllocGaugeOpts),
		Mallocs:      p.NewGauge(mallocsGaugeOpts),
		Frees:        p.NewGauge(freesGaugeOpts),
		HeapObjects:  p.NewGauge(heapObjectsGaugeOpts),
		NumGC:        p.NewGauge(numGCGaugeOpts),
		PauseTotalNs: p.NewGauge(pauseTotalNsGaugeOpts),
	}
}

// CollectAndPublish publishes fresh statistics on every tick until the
// channel is closed.
func (c *Collector) CollectAndPublish(ticks <-chan time.Time) {
	for range ticks {
		c.Publish(CollectStats())
	}
}

func (c *Collector) Publish(stats Stats) {
	c.GoRoutines.Set(float64(stats.GoRoutines))
	c.HeapAlloc.Set(float64(stats.MemStats.HeapAlloc))
	c.TotalAlloc.Set(float64(stats.MemStats.TotalAlloc))
	c.Mallocs.Set(float64(stats.MemStats.Mallocs))
	c.Frees.Set(float64(stats.MemStats.Frees))
	c.HeapObjects.Set(float64(stats.MemStats.HeapObjects))
	c.NumGC.Set(float64(stats.MemStats.NumGC))
	c.PauseTotalNs.Set(float64(stats.MemStats.PauseTotalNs))
}

type Stats struct {
	GoRoutines int
	MemStats   runtime.MemStats
}

func CollectStats() Stats {
	stats := Stats{GoRoutines: runtime.NumGoroutine()}
	runtime.ReadMemStats(&stats.MemStats)
	return stats
}
