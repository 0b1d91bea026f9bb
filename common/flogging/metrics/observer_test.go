/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics_test

import (
	"bytes"
	"testing"

	"github.com/hyperledger/tomcrypt/common/flogging"
	"github.com/hyperledger/tomcrypt/common/flogging/metrics"
	commonmetrics "github.com/hyperledger/tomcrypt/common/metrics"
	"github.com/hyperledger/tomcrypt/common/metrics/metricsfakes"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewObserver(t *testing.T) {
	provider := &metricsfakes.Provider{}
	checkedCounter := &metricsfakes.Counter{}
	writtenCounter := &metricsfakes.Counter{}
	provider.NewCounterStub = func(c commonmetrics.CounterOpts) commonmetrics.Counter {
		switch c.Name {
		case "entries_checked":
			assert.Equal(t, metrics.CheckedCountOpts, c)
			return checkedCounter
		case "entries_written":
			assert.Equal(t, metrics.WriteCountOpts, c)
			return writtenCounter
		default:
			return nil
		}
	}

	expectedObserver := &metrics.Observer{
		CheckedCounter: checkedCounter,
		WrittenCounter: writtenCounter,
	}
	m := metrics.NewObserver(provider)
	assert.Equal(t, expectedObserver, m)
	assert.Equal(t, 2, provider.NewCounterCallCount())
}

func TestCheck(t *testing.T) {
	counter := &metricsfakes.Counter{}
	counter.WithReturns(counter)

	m := metrics.Observer{CheckedCounter: counter}
	entry := zapcore.Entry{Level: zapcore.DebugLevel, LoggerName: "bccsp_sw"}
	checkedEntry := &zapcore.CheckedEntry{}
	m.Check(entry, checkedEntry)

	assert.Equal(t, 1, counter.WithCallCount())
	assert.Equal(t, []string{"logger", "bccsp_sw", "level", "debug"}, counter.WithArgsForCall(0))

	assert.Equal(t, 1, counter.AddCallCount())
	assert.Equal(t, float64(1), counter.AddArgsForCall(0))
}

func TestWrite(t *testing.T) {
	counter := &metricsfakes.Counter{}
	counter.WithReturns(counter)

	m := metrics.Observer{WrittenCounter: counter}
	entry := zapcore.Entry{Level: zapcore.WarnLevel}
	m.WriteEntry(entry, nil)

	assert.Equal(t, 1, counter.WithCallCount())
	assert.Equal(t, []string{"logger", "root", "level", "warn"}, counter.WithArgsForCall(0))

	assert.Equal(t, 1, counter.AddCallCount())
	assert.Equal(t, float64(1), counter.AddArgsForCall(0))
}

func TestObserverWithLogging(t *testing.T) {
	provider := &metricsfakes.Provider{}
	checked := &metricsfakes.Counter{}
	checked.WithReturns(checked)
	written := &metricsfakes.Counter{}
	written.WithReturns(written)
	provider.NewCounterStub = func(c commonmetrics.CounterOpts) commonmetrics.Counter {
		if c.Name == "entries_checked" {
			return checked
		}
		return written
	}

	logging, err := flogging.New(flogging.Config{LogSpec: "tomcrypt=info:debug", Writer: &bytes.Buffer{}})
	assert.NoError(t, err)
	logging.SetObserver(metrics.NewObserver(provider))

	logger := logging.Logger("tomcrypt")
	logger.Debug("not written")
	logger.Info("written")

	assert.Equal(t, 2, checked.AddCallCount())
	assert.Equal(t, 1, written.AddCallCount())
	assert.Equal(t, []string{"logger", "tomcrypt", "level", "info"}, written.WithArgsForCall(0))
}
