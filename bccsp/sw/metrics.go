/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sw

import (
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/hyperledger/tomcrypt/common/metrics"
)

var (
	OperationsCounterOpts = metrics.CounterOpts{
		Namespace:  "tomcrypt",
		Subsystem:  "bccsp",
		Name:       "operations",
		Help:       "The number of cryptographic operations performed by the software provider.",
		LabelNames: []string{"operation", "result"},
		LabelHelp: map[string]string{
			"operation": "The provider method, such as sign or encrypt.",
			"result":    "Either success or failure.",
		},
	}

	OperationDurationOpts = metrics.HistogramOpts{
		Namespace:  "tomcrypt",
		Subsystem:  "bccsp",
		Name:       "operation_duration",
		Help:       "The time to complete a cryptographic operation in seconds.",
		LabelNames: []string{"operation"},
		Buckets:    []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}
)

// Metrics are the meters updated by the software provider.
type Metrics struct {
	Operations        metrics.Counter
	OperationDuration metrics.Histogram
}

// NewMetrics creates the provider meters from p.
func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		Operations:        p.NewCounter(OperationsCounterOpts),
		OperationDuration: p.NewHistogram(OperationDurationOpts),
	}
}

// operationObserver records the outcome of a single provider call.
type operationObserver struct {
	metrics *Metrics
	clock   clock.Clock
}

func (o *operationObserver) start() time.Time {
	if o == nil {
		return time.Time{}
	}
	return o.clock.Now()
}

func (o *operationObserver) observe(operation string, start time.Time, err error) {
	if o == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	o.metrics.Operations.With("operation", operation, "result", result).Add(1)
	o.metrics.OperationDuration.With("operation", operation).Observe(o.clock.Since(start).Seconds())
}
