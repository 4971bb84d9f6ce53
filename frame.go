// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import (
	"bytes"
	"fmt"
)

// A ControlFrameHeader is the common header of a control frame as it
// appeared on the wire: 15-bit version, 16-bit type, 8-bit flags and
// 24-bit payload length.
type ControlFrameHeader struct {
	Version uint16
	Type    ControlFrameType
	Flags   ControlFlags
	Length  uint32
}

func (h ControlFrameHeader) String() string {
	var buf bytes.Buffer
	buf.WriteString("[ControlFrameHeader ")
	buf.WriteString(h.Type.String())
	if h.Flags != 0 {
		fmt.Fprintf(&buf, " flags=0x%x", uint8(h.Flags))
	}
	fmt.Fprintf(&buf, " v=%d len=%d]", h.Version, h.Length)
	return buf.String()
}

// A Frame is a single decoded SPDY frame: either a *DataFrame or one of
// the control frame types. Callers will generally type-assert the
// specific type.
type Frame interface {
	isFrame()
}

// A DataFrame carries application bytes for one stream.
//
// A frame whose payload was delivered to the decoder in several chunks
// is re-emitted by the Assembler as several DataFrames; Fin is set only
// on the last of them. See SPDY/3 section 2.2.2.
type DataFrame struct {
	StreamID uint32
	Flags    DataFlags
	Data     []byte
}

func (f *DataFrame) isFrame() {}

func (f *DataFrame) String() string {
	return fmt.Sprintf("[DATA stream=%d flags=0x%x len=%d]", f.StreamID, uint8(f.Flags), len(f.Data))
}

// A SynStreamFrame opens a stream. The HeaderBlock bytes are the
// stream's name/value block, still compressed; inflating them is the
// caller's concern.
type SynStreamFrame struct {
	CFHeader      ControlFrameHeader
	StreamID      uint32
	AssocStreamID uint32
	Priority      uint8
	HeaderBlock   []byte
}

func (f *SynStreamFrame) isFrame() {}

func (f *SynStreamFrame) String() string {
	return fmt.Sprintf("[SYN_STREAM stream=%d assoc=%d pri=%d flags=0x%x]",
		f.StreamID, f.AssocStreamID, f.Priority, uint8(f.CFHeader.Flags))
}

// A SynReplyFrame accepts a stream initiated by the remote endpoint.
type SynReplyFrame struct {
	CFHeader    ControlFrameHeader
	StreamID    uint32
	HeaderBlock []byte
}

func (f *SynReplyFrame) isFrame() {}

func (f *SynReplyFrame) String() string {
	return fmt.Sprintf("[SYN_REPLY stream=%d flags=0x%x]", f.StreamID, uint8(f.CFHeader.Flags))
}

// A RstStreamFrame abnormally terminates a stream.
type RstStreamFrame struct {
	CFHeader ControlFrameHeader
	StreamID uint32
	Status   RstStreamStatus
}

func (f *RstStreamFrame) isFrame() {}

func (f *RstStreamFrame) String() string {
	return fmt.Sprintf("[RST_STREAM stream=%d status=%v]", f.StreamID, f.Status)
}

// A Setting is one id/value entry of a SETTINGS frame.
type Setting struct {
	Flags SettingsFlags
	ID    SettingsID
	Value uint32
}

// A SettingsFrame conveys configuration parameters.
type SettingsFrame struct {
	CFHeader ControlFrameHeader
	Settings []Setting
}

func (f *SettingsFrame) isFrame() {}

func (f *SettingsFrame) String() string {
	return fmt.Sprintf("[SETTINGS flags=0x%x n=%d]", uint8(f.CFHeader.Flags), len(f.Settings))
}

// ClearSettings reports whether the frame asks the receiver to clear
// previously persisted settings.
func (f *SettingsFrame) ClearSettings() bool {
	return f.CFHeader.Flags.Has(ControlFlagSettingsClearSettings)
}

// A PingFrame measures a minimal round-trip time. The ID is opaque to
// the framing layer.
type PingFrame struct {
	CFHeader ControlFrameHeader
	ID       uint32
}

func (f *PingFrame) isFrame() {}

func (f *PingFrame) String() string {
	return fmt.Sprintf("[PING id=%d]", f.ID)
}

// A GoAwayFrame tells the remote peer to stop creating streams.
type GoAwayFrame struct {
	CFHeader         ControlFrameHeader
	LastGoodStreamID uint32
	Status           GoAwayStatus
}

func (f *GoAwayFrame) isFrame() {}

func (f *GoAwayFrame) String() string {
	return fmt.Sprintf("[GOAWAY last=%d status=%v]", f.LastGoodStreamID, f.Status)
}

// A HeadersFrame carries additional headers for an existing stream.
type HeadersFrame struct {
	CFHeader    ControlFrameHeader
	StreamID    uint32
	HeaderBlock []byte
}

func (f *HeadersFrame) isFrame() {}

func (f *HeadersFrame) String() string {
	return fmt.Sprintf("[HEADERS stream=%d flags=0x%x]", f.StreamID, uint8(f.CFHeader.Flags))
}

// A WindowUpdateFrame is used to implement per-stream flow control.
type WindowUpdateFrame struct {
	CFHeader        ControlFrameHeader
	StreamID        uint32
	DeltaWindowSize uint32
}

func (f *WindowUpdateFrame) isFrame() {}

func (f *WindowUpdateFrame) String() string {
	return fmt.Sprintf("[WINDOW_UPDATE stream=%d delta=%d]", f.StreamID, f.DeltaWindowSize)
}
