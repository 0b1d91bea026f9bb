/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"github.com/hyperledger/tomcrypt/common/metrics"
	"go.uber.org/zap/zapcore"
)

var (
	CheckedCountOpts = metrics.CounterOpts{
		Namespace:  "tomcrypt",
		Subsystem:  "logging",
		Name:       "entries_checked",
		Help:       "Number of log entries checked against the active logging level.",
		LabelNames: []string{"logger", "level"},
	}

	WriteCountOpts = metrics.CounterOpts{
		Namespace:  "tomcrypt",
		Subsystem:  "logging",
		Name:       "entries_written",
		Help:       "Number of log entries that are written.",
		LabelNames: []string{"logger", "level"},
	}
)

// Observer counts log entries by logger name and level as they pass through
// the logging core. Loggers without a name are counted as "root".
type Observer struct {
	CheckedCounter metrics.Counter
	WrittenCounter metrics.Counter
}

func NewObserver(provider metrics.Provider) *Observer {
	return &Observer{
		CheckedCounter: provider.NewCounter(CheckedCountOpts),
		WrittenCounter: provider.NewCounter(WriteCountOpts),
	}
}

func (m *Observer) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) {
	m.CheckedCounter.With("logger", loggerName(e), "level", e.Level.String()).Add(1)
}

func (m *Observer) WriteEntry(e zapcore.Entry, fields []zapcore.Field) {
	m.WrittenCounter.With("logger", loggerName(e), "level", e.Level.String()).Add(1)
}

func loggerName(e zapcore.Entry) string {
	if e.LoggerName == "" {
		return "root"
	}
	return e.LoggerName
}
