// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingDelegateTransparent(t *testing.T) {
	wire := frameSequence(t)
	want := decodeAll(t, wire).raw()

	core, logs := observer.New(zapcore.DebugLevel)
	rec := new(recorder)
	d := NewDecoder(Version, rec, WithLogger(zap.New(core)))
	d.Decode(wire)

	// The wrapped delegate sees the identical event sequence.
	wantEvents(t, rec.raw(), want)

	// Every event produced a log entry.
	if got := logs.Len(); got != len(want) {
		t.Errorf("log entries = %d; want %d", got, len(want))
	}
	if n := logs.FilterMessage("frame error").Len(); n != 1 {
		t.Errorf("frame error entries = %d; want 1", n)
	}
}

func TestLoggingDelegateFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := new(recorder)
	d := NewDecoder(Version, &LoggingDelegate{Next: rec, Logger: zap.New(core)})
	d.Decode(concat(controlHeader(3, TypePing, 0, 4), []byte{0, 0, 0, 42}))

	entries := logs.FilterMessage("ping frame").All()
	if len(entries) != 1 {
		t.Fatalf("ping entries = %d; want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if got, ok := fields["id"]; !ok || got != uint64(42) {
		t.Errorf("id field = %v; want 42", got)
	}
}
