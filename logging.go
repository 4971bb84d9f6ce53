// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import "go.uber.org/zap"

// A LoggingDelegate logs every event before forwarding it unchanged to
// Next: frame errors at warn level, all other events at debug level. Wire it in when diagnosing a misbehaving peer:
//
//	d := spdy.NewDecoder(spdy.Version, &spdy.LoggingDelegate{Next: sink, Logger: logger})
type LoggingDelegate struct {
	Next   FrameDelegate
	Logger *zap.Logger
}

var _ FrameDelegate = (*LoggingDelegate)(nil)

func (l *LoggingDelegate) OnDataFrame(streamID uint32, fin bool, data []byte) {
	l.Logger.Debug("data frame",
		zap.Uint32("stream_id", streamID),
		zap.Bool("fin", fin),
		zap.Int("len", len(data)))
	l.Next.OnDataFrame(streamID, fin, data)
}

func (l *LoggingDelegate) OnSynStreamFrame(streamID, assocStreamID uint32, priority uint8, fin, unidirectional bool) {
	l.Logger.Debug("syn_stream frame",
		zap.Uint32("stream_id", streamID),
		zap.Uint32("assoc_stream_id", assocStreamID),
		zap.Uint8("priority", priority),
		zap.Bool("fin", fin),
		zap.Bool("unidirectional", unidirectional))
	l.Next.OnSynStreamFrame(streamID, assocStreamID, priority, fin, unidirectional)
}

func (l *LoggingDelegate) OnSynReplyFrame(streamID uint32, fin bool) {
	l.Logger.Debug("syn_reply frame",
		zap.Uint32("stream_id", streamID),
		zap.Bool("fin", fin))
	l.Next.OnSynReplyFrame(streamID, fin)
}

func (l *LoggingDelegate) OnRstStreamFrame(streamID uint32, status RstStreamStatus) {
	l.Logger.Debug("rst_stream frame",
		zap.Uint32("stream_id", streamID),
		zap.Stringer("status", status))
	l.Next.OnRstStreamFrame(streamID, status)
}

func (l *LoggingDelegate) OnSettingsFrame(clearPersisted bool) {
	l.Logger.Debug("settings frame", zap.Bool("clear_persisted", clearPersisted))
	l.Next.OnSettingsFrame(clearPersisted)
}

func (l *LoggingDelegate) OnSetting(id SettingsID, value uint32, persistValue, persisted bool) {
	l.Logger.Debug("setting",
		zap.Stringer("id", id),
		zap.Uint32("value", value),
		zap.Bool("persist_value", persistValue),
		zap.Bool("persisted", persisted))
	l.Next.OnSetting(id, value, persistValue, persisted)
}

func (l *LoggingDelegate) OnSettingsEnd() {
	l.Logger.Debug("settings end")
	l.Next.OnSettingsEnd()
}

func (l *LoggingDelegate) OnPingFrame(id uint32) {
	l.Logger.Debug("ping frame", zap.Uint32("id", id))
	l.Next.OnPingFrame(id)
}

func (l *LoggingDelegate) OnGoAwayFrame(lastGoodStreamID uint32, status GoAwayStatus) {
	l.Logger.Debug("goaway frame",
		zap.Uint32("last_good_stream_id", lastGoodStreamID),
		zap.Stringer("status", status))
	l.Next.OnGoAwayFrame(lastGoodStreamID, status)
}

func (l *LoggingDelegate) OnHeadersFrame(streamID uint32, fin bool) {
	l.Logger.Debug("headers frame",
		zap.Uint32("stream_id", streamID),
		zap.Bool("fin", fin))
	l.Next.OnHeadersFrame(streamID, fin)
}

func (l *LoggingDelegate) OnWindowUpdateFrame(streamID, deltaWindowSize uint32) {
	l.Logger.Debug("window_update frame",
		zap.Uint32("stream_id", streamID),
		zap.Uint32("delta", deltaWindowSize))
	l.Next.OnWindowUpdateFrame(streamID, deltaWindowSize)
}

func (l *LoggingDelegate) OnHeaderBlock(chunk []byte) {
	l.Logger.Debug("header block chunk", zap.Int("len", len(chunk)))
	l.Next.OnHeaderBlock(chunk)
}

func (l *LoggingDelegate) OnHeaderBlockEnd() {
	l.Logger.Debug("header block end")
	l.Next.OnHeaderBlockEnd()
}

func (l *LoggingDelegate) OnFrameError(reason string) {
	l.Logger.Warn("frame error", zap.String("reason", reason))
	l.Next.OnFrameError(reason)
}

// WithLogger wraps the decoder's delegate in a LoggingDelegate.
func WithLogger(logger *zap.Logger) DecoderOption {
	return func(d *Decoder) {
		d.delegate = &LoggingDelegate{Next: d.delegate, Logger: logger}
	}
}
