// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentedDelegateTransparent(t *testing.T) {
	wire := frameSequence(t)
	want := decodeAll(t, wire).raw()

	rec := new(recorder)
	d := NewDecoder(Version, &InstrumentedDelegate{Next: rec})
	d.Decode(wire)
	wantEvents(t, rec.raw(), want)
}

func TestInstrumentedDelegateCounters(t *testing.T) {
	pingBefore := testutil.ToFloat64(decoderEvents.WithLabelValues("ping"))
	errBefore := testutil.ToFloat64(decoderFrameErrors)
	dataBytesBefore := testutil.ToFloat64(decoderDataBytes)

	wire := concat(
		controlHeader(3, TypePing, 0, 4), []byte{0, 0, 0, 1},
		controlHeader(3, TypePing, 0, 8), testPayload(8), // invalid
		dataHeader(1, 0, 32), testPayload(32),
	)
	d := NewDecoder(Version, &InstrumentedDelegate{Next: NopDelegate{}})
	d.Decode(wire)

	if got := testutil.ToFloat64(decoderEvents.WithLabelValues("ping")) - pingBefore; got != 1 {
		t.Errorf("ping events delta = %v; want 1", got)
	}
	if got := testutil.ToFloat64(decoderFrameErrors) - errBefore; got != 1 {
		t.Errorf("frame errors delta = %v; want 1", got)
	}
	if got := testutil.ToFloat64(decoderDataBytes) - dataBytesBefore; got != 32 {
		t.Errorf("data bytes delta = %v; want 32", got)
	}
}
