// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import (
	"bytes"
	"testing"
)

func TestFramerGoldenBytes(t *testing.T) {
	tests := []struct {
		name  string
		write func(*Framer) error
		want  []byte
	}{
		{
			"data",
			func(f *Framer) error { return f.WriteData(42, false, testPayload(4)) },
			concat([]byte{0x00, 0x00, 0x00, 0x2a, 0x00, 0x00, 0x00, 0x04}, testPayload(4)),
		},
		{
			"empty data with fin",
			func(f *Framer) error { return f.WriteData(42, true, nil) },
			[]byte{0x00, 0x00, 0x00, 0x2a, 0x01, 0x00, 0x00, 0x00},
		},
		{
			"syn_stream",
			func(f *Framer) error {
				return f.WriteSynStream(SynStreamParam{StreamID: 3, Priority: 4})
			},
			[]byte{
				0x80, 0x03, 0x00, 0x01, 0x00, 0x00, 0x00, 0x0a,
				0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x80, 0x00,
			},
		},
		{
			"settings",
			func(f *Framer) error {
				return f.WriteSettings(false,
					Setting{ID: SettingsInitialWindowSize, Value: 65535},
					Setting{ID: SettingsInitialWindowSize, Value: 65535})
			},
			[]byte{
				0x80, 0x03, 0x00, 0x04, 0x00, 0x00, 0x00, 0x14,
				0x00, 0x00, 0x00, 0x02,
				0x00, 0x00, 0x00, 0x07, 0x00, 0x00, 0xff, 0xff,
				0x00, 0x00, 0x00, 0x07, 0x00, 0x00, 0xff, 0xff,
			},
		},
		{
			"ping",
			func(f *Framer) error { return f.WritePing(42) },
			[]byte{0x80, 0x03, 0x00, 0x06, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x2a},
		},
		{
			"window_update",
			func(f *Framer) error { return f.WriteWindowUpdate(10, 1) },
			[]byte{
				0x80, 0x03, 0x00, 0x09, 0x00, 0x00, 0x00, 0x08,
				0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x01,
			},
		},
		{
			"rst_stream",
			func(f *Framer) error { return f.WriteRstStream(5, Cancel) },
			[]byte{
				0x80, 0x03, 0x00, 0x03, 0x00, 0x00, 0x00, 0x08,
				0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x05,
			},
		},
		{
			"goaway",
			func(f *Framer) error { return f.WriteGoAway(11, GoAwayInternalError) },
			[]byte{
				0x80, 0x03, 0x00, 0x07, 0x00, 0x00, 0x00, 0x08,
				0x00, 0x00, 0x00, 0x0b, 0x00, 0x00, 0x00, 0x02,
			},
		},
		{
			"headers",
			func(f *Framer) error { return f.WriteHeaders(9, true, []byte{0xca, 0xfe}) },
			[]byte{
				0x80, 0x03, 0x00, 0x08, 0x01, 0x00, 0x00, 0x06,
				0x00, 0x00, 0x00, 0x09, 0xca, 0xfe,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.write(NewFramer(&buf)); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("wire = %x; want %x", buf.Bytes(), tt.want)
			}
		})
	}
}

func TestFramerRejectsInvalidFields(t *testing.T) {
	var buf bytes.Buffer
	f := NewFramer(&buf)

	tests := []struct {
		name  string
		write func() error
	}{
		{"data zero stream", func() error { return f.WriteData(0, false, nil) }},
		{"syn_stream zero stream", func() error { return f.WriteSynStream(SynStreamParam{}) }},
		{"syn_stream priority range", func() error {
			return f.WriteSynStream(SynStreamParam{StreamID: 1, Priority: 8})
		}},
		{"syn_reply zero stream", func() error { return f.WriteSynReply(0, false, nil) }},
		{"headers zero stream", func() error { return f.WriteHeaders(0, false, nil) }},
		{"rst zero stream", func() error { return f.WriteRstStream(0, Cancel) }},
		{"rst zero status", func() error { return f.WriteRstStream(1, 0) }},
		{"window_update zero delta", func() error { return f.WriteWindowUpdate(1, 0) }},
		{"window_update delta range", func() error { return f.WriteWindowUpdate(1, 1<<31) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.write(); err == nil {
				t.Error("err = nil; want error")
			}
		})
	}
}

func TestFramerRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	f := NewFramer(&buf)
	if err := f.WriteData(1, false, make([]byte, maxFrameLength+1)); err == nil {
		t.Error("err = nil; want error")
	}
}

// TestRoundTrip drives Framer output through the Decoder and checks
// that every field survives.
func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	fr := NewFramer(&buf)

	writes := []error{
		fr.WriteSynStream(SynStreamParam{
			StreamID:       101,
			AssocStreamID:  1,
			Priority:       7,
			Unidirectional: true,
			HeaderBlock:    testPayload(200),
		}),
		fr.WriteSynReply(101, false, testPayload(33)),
		fr.WriteHeaders(101, true, testPayload(5)),
		fr.WriteData(101, false, testPayload(64)),
		fr.WriteSettings(true, Setting{Flags: SettingsFlagPersistValue, ID: SettingsMaxConcurrentStreams, Value: 100}),
		fr.WritePing(7),
		fr.WriteGoAway(99, GoAwayProtocolError),
		fr.WriteWindowUpdate(0, 1<<20),
		fr.WriteRstStream(101, RefusedStream),
		fr.WriteData(101, true, nil),
	}
	for i, err := range writes {
		if err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	rec := decodeAll(t, buf.Bytes())
	wantEvents(t, rec.raw(), []string{
		"SYN_STREAM stream=101 assoc=1 pri=7 fin=false uni=true",
		"HEADER_BLOCK " + hexPayload(200),
		"HEADER_BLOCK_END",
		"SYN_REPLY stream=101 fin=false",
		"HEADER_BLOCK " + hexPayload(33),
		"HEADER_BLOCK_END",
		"HEADERS stream=101 fin=true",
		"HEADER_BLOCK " + hexPayload(5),
		"HEADER_BLOCK_END",
		"DATA stream=101 fin=false " + hexPayload(64),
		"SETTINGS clear=true",
		"SETTING id=4 value=100 persist=true persisted=false",
		"SETTINGS_END",
		"PING id=7",
		"GOAWAY last=99 status=1",
		"WINDOW_UPDATE stream=0 delta=1048576",
		"RST_STREAM stream=101 status=3",
		"DATA stream=101 fin=true ",
	})
}

func hexPayload(n int) string {
	const hexdigits = "0123456789abcdef"
	p := testPayload(n)
	out := make([]byte, 0, 2*n)
	for _, b := range p {
		out = append(out, hexdigits[b>>4], hexdigits[b&0x0f])
	}
	return string(out)
}
