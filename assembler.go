// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import "github.com/valyala/bytebufferpool"

// An Assembler sits on top of a Decoder and re-materializes complete
// typed frames from the streamed events, for callers that do not want
// chunk-level granularity. Header-block chunks are accumulated in
// pooled buffers; the assembled frame owns its bytes and may be
// retained.
//
// Data frames are the exception: each OnDataFrame chunk is delivered as
// its own DataFrame (with Fin set only on the last), since the framing
// layer has no reason to buffer stream payloads it does not interpret.
type Assembler struct {
	handle  func(Frame)
	onError func(reason string)

	pending  Frame // *SynStreamFrame, *SynReplyFrame or *HeadersFrame
	block    *bytebufferpool.ByteBuffer
	settings *SettingsFrame
}

// NewAssembler returns an Assembler delivering each complete frame to
// handle. onError, if non-nil, receives the reason of every frame
// error; the corresponding frame is dropped.
func NewAssembler(handle func(Frame), onError func(reason string)) *Assembler {
	return &Assembler{handle: handle, onError: onError}
}

var _ FrameDelegate = (*Assembler)(nil)

func cfHeader(t ControlFrameType, flags ControlFlags, length uint32) ControlFrameHeader {
	return ControlFrameHeader{Version: Version, Type: t, Flags: flags, Length: length}
}

func (a *Assembler) OnDataFrame(streamID uint32, fin bool, data []byte) {
	var flags DataFlags
	if fin {
		flags |= DataFlagFin
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	a.handle(&DataFrame{StreamID: streamID, Flags: flags, Data: owned})
}

func (a *Assembler) OnSynStreamFrame(streamID, assocStreamID uint32, priority uint8, fin, unidirectional bool) {
	var flags ControlFlags
	if fin {
		flags |= ControlFlagFin
	}
	if unidirectional {
		flags |= ControlFlagUnidirectional
	}
	a.pending = &SynStreamFrame{
		CFHeader:      cfHeader(TypeSynStream, flags, 0),
		StreamID:      streamID,
		AssocStreamID: assocStreamID,
		Priority:      priority,
	}
	a.block = bytebufferpool.Get()
}

func (a *Assembler) OnSynReplyFrame(streamID uint32, fin bool) {
	var flags ControlFlags
	if fin {
		flags |= ControlFlagFin
	}
	a.pending = &SynReplyFrame{
		CFHeader: cfHeader(TypeSynReply, flags, 0),
		StreamID: streamID,
	}
	a.block = bytebufferpool.Get()
}

func (a *Assembler) OnHeadersFrame(streamID uint32, fin bool) {
	var flags ControlFlags
	if fin {
		flags |= ControlFlagFin
	}
	a.pending = &HeadersFrame{
		CFHeader: cfHeader(TypeHeaders, flags, 0),
		StreamID: streamID,
	}
	a.block = bytebufferpool.Get()
}

func (a *Assembler) OnHeaderBlock(chunk []byte) {
	if a.block != nil {
		a.block.Write(chunk)
	}
}

func (a *Assembler) OnHeaderBlockEnd() {
	if a.pending == nil {
		return
	}
	hb := make([]byte, a.block.Len())
	copy(hb, a.block.B)
	bytebufferpool.Put(a.block)
	a.block = nil

	switch f := a.pending.(type) {
	case *SynStreamFrame:
		f.HeaderBlock = hb
		f.CFHeader.Length = 10 + uint32(len(hb))
	case *SynReplyFrame:
		f.HeaderBlock = hb
		f.CFHeader.Length = 4 + uint32(len(hb))
	case *HeadersFrame:
		f.HeaderBlock = hb
		f.CFHeader.Length = 4 + uint32(len(hb))
	}
	frame := a.pending
	a.pending = nil
	a.handle(frame)
}

func (a *Assembler) OnRstStreamFrame(streamID uint32, status RstStreamStatus) {
	a.handle(&RstStreamFrame{
		CFHeader: cfHeader(TypeRstStream, 0, 8),
		StreamID: streamID,
		Status:   status,
	})
}

func (a *Assembler) OnSettingsFrame(clearPersisted bool) {
	var flags ControlFlags
	if clearPersisted {
		flags |= ControlFlagSettingsClearSettings
	}
	a.settings = &SettingsFrame{CFHeader: cfHeader(TypeSettings, flags, 4)}
}

func (a *Assembler) OnSetting(id SettingsID, value uint32, persistValue, persisted bool) {
	if a.settings == nil {
		return
	}
	var flags SettingsFlags
	if persistValue {
		flags |= SettingsFlagPersistValue
	}
	if persisted {
		flags |= SettingsFlagPersisted
	}
	a.settings.Settings = append(a.settings.Settings, Setting{Flags: flags, ID: id, Value: value})
}

func (a *Assembler) OnSettingsEnd() {
	if a.settings == nil {
		return
	}
	f := a.settings
	a.settings = nil
	f.CFHeader.Length = 4 + 8*uint32(len(f.Settings))
	a.handle(f)
}

func (a *Assembler) OnPingFrame(id uint32) {
	a.handle(&PingFrame{CFHeader: cfHeader(TypePing, 0, 4), ID: id})
}

func (a *Assembler) OnGoAwayFrame(lastGoodStreamID uint32, status GoAwayStatus) {
	a.handle(&GoAwayFrame{
		CFHeader:         cfHeader(TypeGoAway, 0, 8),
		LastGoodStreamID: lastGoodStreamID,
		Status:           status,
	})
}

func (a *Assembler) OnWindowUpdateFrame(streamID, deltaWindowSize uint32) {
	a.handle(&WindowUpdateFrame{
		CFHeader:        cfHeader(TypeWindowUpdate, 0, 8),
		StreamID:        streamID,
		DeltaWindowSize: deltaWindowSize,
	})
}

func (a *Assembler) OnFrameError(reason string) {
	if a.block != nil {
		bytebufferpool.Put(a.block)
		a.block = nil
	}
	a.pending = nil
	a.settings = nil
	if a.onError != nil {
		a.onError(reason)
	}
}
