/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package flogging

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hyperledger/tomcrypt/common/flogging/fabenc"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SpecEnvVar names the environment variable holding the logging spec used
// when Config.LogSpec is empty.
const SpecEnvVar = "TOMCRYPT_LOGGING_SPEC"

// Config holds the settings applied by Logging.Apply. Zero values select
// the defaults.
type Config struct {
	// Format is "json", "logfmt" or a console format spec understood by
	// fabenc.ParseFormat.
	Format string

	// LogSpec is an ActivateSpec level spec. When empty, the value of
	// SpecEnvVar is used, then INFO.
	LogSpec string

	// Writer receives encoded records. Defaults to os.Stderr.
	Writer io.Writer
}

// Logging is the state shared by every logger it creates. Level, format
// and writer changes apply to existing loggers.
type Logging struct {
	*LoggerLevels

	mutex          sync.RWMutex
	encoding       Encoding
	encoderConfig  zapcore.EncoderConfig
	multiFormatter *fabenc.MultiFormatter
	writer         zapcore.WriteSyncer
	observer       Observer
}

// New creates a logging system and applies c to it.
func New(c Config) (*Logging, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.NameKey = "name"

	s := &Logging{
		LoggerLevels:   &LoggerLevels{defaultLevel: defaultLevel},
		encoderConfig:  encoderConfig,
		multiFormatter: fabenc.NewMultiFormatter(),
	}
	if err := s.Apply(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply replaces the format, levels and writer of the logging system.
func (s *Logging) Apply(c Config) error {
	if err := s.SetFormat(c.Format); err != nil {
		return err
	}

	spec := cmp.Or(c.LogSpec, os.Getenv(SpecEnvVar), defaultLevel.String())
	if err := s.LoggerLevels.ActivateSpec(spec); err != nil {
		return err
	}

	if c.Writer == nil {
		c.Writer = os.Stderr
	}
	s.SetWriter(c.Writer)
	return nil
}

// SetFormat selects the encoding used by every logger, including loggers
// created before the call. An unparsable console format is an error and
// leaves the previous format active.
func (s *Logging) SetFormat(format string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch format {
	case "json":
		s.encoding = JSON
	case "logfmt":
		s.encoding = LOGFMT
	default:
		formatters, err := fabenc.ParseFormat(cmp.Or(format, defaultFormat))
		if err != nil {
			return err
		}
		s.multiFormatter.SetFormatters(formatters)
		s.encoding = CONSOLE
	}
	return nil
}

// SetWriter installs w as the sink and returns the previous sink. Writers
// other than *os.File must be safe for concurrent use.
func (s *Logging) SetWriter(w io.Writer) io.Writer {
	var sw zapcore.WriteSyncer
	switch t := w.(type) {
	case *os.File:
		sw = zapcore.Lock(t)
	case zapcore.WriteSyncer:
		sw = t
	default:
		sw = zapcore.AddSync(w)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	prev := s.writer
	s.writer = sw
	return prev
}

// SetObserver installs the single observer notified of checked and written
// entries and returns the previous one.
func (s *Logging) SetObserver(observer Observer) Observer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	prev := s.observer
	s.observer = observer
	return prev
}

func (s *Logging) sink() zapcore.WriteSyncer {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.writer
}

func (s *Logging) currentObserver() Observer {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.observer
}

// Write sends an encoded record to the current writer.
func (s *Logging) Write(b []byte) (int, error) {
	return s.sink().Write(b)
}

// Sync flushes the current writer.
func (s *Logging) Sync() error {
	return s.sink().Sync()
}

// Encoding reports the encoding selected by the last SetFormat.
func (s *Logging) Encoding() Encoding {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.encoding
}

func (s *Logging) encoders() map[Encoding]zapcore.Encoder {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return map[Encoding]zapcore.Encoder{
		JSON:    zapcore.NewJSONEncoder(s.encoderConfig),
		CONSOLE: fabenc.NewFormatEncoder(s.multiFormatter),
		LOGFMT:  zaplogfmt.NewEncoder(s.encoderConfig),
	}
}

// ZapLogger returns a zap.Logger whose levels follow the active spec for
// name. It panics on an invalid name.
func (s *Logging) ZapLogger(name string) *zap.Logger {
	if !isValidLoggerName(name) {
		panic(fmt.Sprintf("invalid logger name: %s", name))
	}

	core := &Core{
		LevelEnabler: s.LoggerLevels,
		Levels:       s.LoggerLevels,
		Encoders:     s.encoders(),
		Selector:     s,
		Output:       s,
		Observer:     s,
	}
	return NewZapLogger(core).Named(name)
}

func (s *Logging) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) {
	if observer := s.currentObserver(); observer != nil {
		observer.Check(e, ce)
	}
}

func (s *Logging) WriteEntry(e zapcore.Entry, fields []zapcore.Field) {
	if observer := s.currentObserver(); observer != nil {
		observer.WriteEntry(e, fields)
	}
}

// Logger returns a Logger for name. See ZapLogger.
func (s *Logging) Logger(name string) *Logger {
	return NewLogger(s.ZapLogger(name))
}
