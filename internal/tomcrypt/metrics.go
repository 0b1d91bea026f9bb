/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tomcrypt

import (
	"io"

	"github.com/hyperledger/tomcrypt/common/metrics/prometheus"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// NewMetricsProvider returns a Prometheus provider backed by a private
// registry, so repeated calls never collide on metric names.
func NewMetricsProvider() (*prometheus.Provider, *prom.Registry) {
	registry := prom.NewRegistry()
	return &prometheus.Provider{Registerer: registry}, registry
}

// WriteMetrics writes every metric gathered by g in the Prometheus text
// exposition format.
func WriteMetrics(w io.Writer, g prom.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "failed gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "failed encoding metrics")
		}
	}
	return nil
}
