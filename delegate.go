// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

// A FrameDelegate receives decoded frame events from a Decoder.
//
// Callbacks are synchronous and must not block; the Decoder does not
// continue until the callback returns. Byte slices passed to a callback
// alias the buffer given to Decode and are only valid for the duration
// of the call; a delegate that needs the bytes afterwards must copy
// them.
//
// For SYN_STREAM, SYN_REPLY and HEADERS frames the frame callback is
// followed by zero or more OnHeaderBlock calls carrying the compressed
// name/value block, terminated by exactly one OnHeaderBlockEnd. For
// SETTINGS frames OnSettingsFrame is followed by one OnSetting per
// entry and a terminating OnSettingsEnd. A data frame spanning several
// Decode calls produces one OnDataFrame per available chunk; fin is
// reported on the chunk that completes the frame.
type FrameDelegate interface {
	OnDataFrame(streamID uint32, fin bool, data []byte)
	OnSynStreamFrame(streamID, assocStreamID uint32, priority uint8, fin, unidirectional bool)
	OnSynReplyFrame(streamID uint32, fin bool)
	OnRstStreamFrame(streamID uint32, status RstStreamStatus)
	OnSettingsFrame(clearPersisted bool)
	OnSetting(id SettingsID, value uint32, persistValue, persisted bool)
	OnSettingsEnd()
	OnPingFrame(id uint32)
	OnGoAwayFrame(lastGoodStreamID uint32, status GoAwayStatus)
	OnHeadersFrame(streamID uint32, fin bool)
	OnWindowUpdateFrame(streamID, deltaWindowSize uint32)
	OnHeaderBlock(chunk []byte)
	OnHeaderBlockEnd()

	// OnFrameError reports a structurally invalid frame. The decoder
	// discards the remainder of the offending frame and resumes at the
	// next frame header; the reason string is informational only.
	OnFrameError(reason string)
}

// NopDelegate discards every event. Embed it to implement only the
// callbacks a delegate cares about.
type NopDelegate struct{}

func (NopDelegate) OnDataFrame(streamID uint32, fin bool, data []byte)       {}
func (NopDelegate) OnSynStreamFrame(_, _ uint32, _ uint8, _, _ bool)         {}
func (NopDelegate) OnSynReplyFrame(streamID uint32, fin bool)                {}
func (NopDelegate) OnRstStreamFrame(streamID uint32, status RstStreamStatus) {}
func (NopDelegate) OnSettingsFrame(clearPersisted bool)                      {}
func (NopDelegate) OnSetting(id SettingsID, value uint32, _, _ bool)         {}
func (NopDelegate) OnSettingsEnd()                                           {}
func (NopDelegate) OnPingFrame(id uint32)                                    {}
func (NopDelegate) OnGoAwayFrame(last uint32, status GoAwayStatus)           {}
func (NopDelegate) OnHeadersFrame(streamID uint32, fin bool)                 {}
func (NopDelegate) OnWindowUpdateFrame(streamID, delta uint32)               {}
func (NopDelegate) OnHeaderBlock(chunk []byte)                               {}
func (NopDelegate) OnHeaderBlockEnd()                                        {}
func (NopDelegate) OnFrameError(reason string)                               {}

var _ FrameDelegate = NopDelegate{}
