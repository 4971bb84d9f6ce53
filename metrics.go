// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for decoded traffic. Registered on the default
// registry; expose them with promhttp the usual way.
var (
	decoderEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spdy_decoder_events_total",
			Help: "Frame events emitted by the decoder, by event kind.",
		},
		[]string{"event"},
	)

	decoderFrameErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spdy_decoder_frame_errors_total",
			Help: "Structurally invalid frames reported by the decoder.",
		},
	)

	decoderDataBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spdy_decoder_data_bytes_total",
			Help: "Data frame payload bytes delivered.",
		},
	)

	decoderHeaderBlockBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spdy_decoder_header_block_bytes_total",
			Help: "Compressed header block bytes delivered.",
		},
	)
)

// An InstrumentedDelegate counts events in the package's Prometheus
// collectors and forwards every event unchanged to Next. Frame and
// setting events are counted by kind, frame errors and payload bytes in
// their own counters; OnSettingsEnd and OnHeaderBlockEnd are forwarded
// without being counted.
type InstrumentedDelegate struct {
	Next FrameDelegate
}

var _ FrameDelegate = (*InstrumentedDelegate)(nil)

func (m *InstrumentedDelegate) OnDataFrame(streamID uint32, fin bool, data []byte) {
	decoderEvents.WithLabelValues("data").Inc()
	decoderDataBytes.Add(float64(len(data)))
	m.Next.OnDataFrame(streamID, fin, data)
}

func (m *InstrumentedDelegate) OnSynStreamFrame(streamID, assocStreamID uint32, priority uint8, fin, unidirectional bool) {
	decoderEvents.WithLabelValues("syn_stream").Inc()
	m.Next.OnSynStreamFrame(streamID, assocStreamID, priority, fin, unidirectional)
}

func (m *InstrumentedDelegate) OnSynReplyFrame(streamID uint32, fin bool) {
	decoderEvents.WithLabelValues("syn_reply").Inc()
	m.Next.OnSynReplyFrame(streamID, fin)
}

func (m *InstrumentedDelegate) OnRstStreamFrame(streamID uint32, status RstStreamStatus) {
	decoderEvents.WithLabelValues("rst_stream").Inc()
	m.Next.OnRstStreamFrame(streamID, status)
}

func (m *InstrumentedDelegate) OnSettingsFrame(clearPersisted bool) {
	decoderEvents.WithLabelValues("settings").Inc()
	m.Next.OnSettingsFrame(clearPersisted)
}

func (m *InstrumentedDelegate) OnSetting(id SettingsID, value uint32, persistValue, persisted bool) {
	decoderEvents.WithLabelValues("setting").Inc()
	m.Next.OnSetting(id, value, persistValue, persisted)
}

func (m *InstrumentedDelegate) OnSettingsEnd() {
	m.Next.OnSettingsEnd()
}

func (m *InstrumentedDelegate) OnPingFrame(id uint32) {
	decoderEvents.WithLabelValues("ping").Inc()
	m.Next.OnPingFrame(id)
}

func (m *InstrumentedDelegate) OnGoAwayFrame(lastGoodStreamID uint32, status GoAwayStatus) {
	decoderEvents.WithLabelValues("goaway").Inc()
	m.Next.OnGoAwayFrame(lastGoodStreamID, status)
}

func (m *InstrumentedDelegate) OnHeadersFrame(streamID uint32, fin bool) {
	decoderEvents.WithLabelValues("headers").Inc()
	m.Next.OnHeadersFrame(streamID, fin)
}

func (m *InstrumentedDelegate) OnWindowUpdateFrame(streamID, deltaWindowSize uint32) {
	decoderEvents.WithLabelValues("window_update").Inc()
	m.Next.OnWindowUpdateFrame(streamID, deltaWindowSize)
}

func (m *InstrumentedDelegate) OnHeaderBlock(chunk []byte) {
	decoderHeaderBlockBytes.Add(float64(len(chunk)))
	m.Next.OnHeaderBlock(chunk)
}

func (m *InstrumentedDelegate) OnHeaderBlockEnd() {
	m.Next.OnHeaderBlockEnd()
}

func (m *InstrumentedDelegate) OnFrameError(reason string) {
	decoderFrameErrors.Inc()
	m.Next.OnFrameError(reason)
}
