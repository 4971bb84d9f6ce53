// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import (
	"encoding/binary"

	"go.uber.org/atomic"
)

// decoderState is the resting state of the decode state machine between
// two consumed byte ranges.
type decoderState int

const (
	stateCommonHeader decoderState = iota
	stateControlPayload
	stateSettings
	stateHeaderBlock
	stateDataPayload
	stateDiscard
	stateFrameError
)

const streamIDMask = 1<<31 - 1

// A Decoder is a resumable push-style parser for one SPDY connection.
//
// Bytes are fed in with Decode in whatever chunks the transport
// delivers them; the Decoder emits events to its FrameDelegate as soon
// as they are decodable. A structurally invalid frame produces a single
// OnFrameError event and the remainder of that frame is discarded;
// decoding then resumes at the next frame header, so one bad frame
// never desynchronizes the connection.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	delegate FrameDelegate
	version  uint16

	state    decoderState
	scratch  [frameHeaderLen + 8]byte
	scratchN int

	// Scratch for the frame being decoded.
	frameType       ControlFrameType
	flags           uint8
	length          uint32 // payload bytes still to consume
	streamID        uint32
	numSettings     uint32
	settingsCounted bool
	errReason       string

	frames *atomic.Int64
	errs   *atomic.Int64
}

// A DecoderOption configures a Decoder at construction time.
type DecoderOption func(*Decoder)

// NewDecoder returns a Decoder for the given protocol version (3 for
// SPDY/3.1) that emits events to delegate.
func NewDecoder(version uint16, delegate FrameDelegate, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		delegate: delegate,
		version:  version,
		frames:   atomic.NewInt64(0),
		errs:     atomic.NewInt64(0),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// FrameCount returns the number of frames accepted so far. It is safe
// to call from any goroutine.
func (d *Decoder) FrameCount() int64 { return d.frames.Load() }

// ErrorCount returns the number of frame errors reported so far. It is
// safe to call from any goroutine.
func (d *Decoder) ErrorCount() int64 { return d.errs.Load() }

// Decode consumes all of p, emitting events to the delegate for
// everything that became decodable. The only bytes retained across
// calls are a partial common header or fixed frame prefix, held in the
// Decoder's own scratch; slices passed to the delegate alias p and must
// not be retained by the delegate.
func (d *Decoder) Decode(p []byte) {
	for {
		switch d.state {
		case stateCommonHeader:
			buf, rest, ok := d.take(p, frameHeaderLen)
			p = rest
			if !ok {
				return
			}
			d.readCommonHeader(buf)

		case stateControlPayload:
			need := controlFixedLen(d.frameType)
			buf, rest, ok := d.take(p, need)
			p = rest
			if !ok {
				return
			}
			d.length -= uint32(need)
			d.readControlPayload(buf)

		case stateSettings:
			rest, ok := d.readSettings(p)
			p = rest
			if !ok {
				return
			}

		case stateHeaderBlock:
			if len(p) == 0 {
				return
			}
			n := len(p)
			if uint32(n) > d.length {
				n = int(d.length)
			}
			d.length -= uint32(n)
			d.delegate.OnHeaderBlock(p[:n])
			p = p[n:]
			if d.length == 0 {
				d.delegate.OnHeaderBlockEnd()
				d.state = stateCommonHeader
			}

		case stateDataPayload:
			if len(p) == 0 {
				return
			}
			n := len(p)
			if uint32(n) > d.length {
				n = int(d.length)
			}
			d.length -= uint32(n)
			fin := DataFlags(d.flags).Has(DataFlagFin) && d.length == 0
			d.delegate.OnDataFrame(d.streamID, fin, p[:n])
			p = p[n:]
			if d.length == 0 {
				d.state = stateCommonHeader
			}

		case stateDiscard:
			if d.length == 0 {
				d.state = stateCommonHeader
				continue
			}
			if len(p) == 0 {
				return
			}
			n := len(p)
			if uint32(n) > d.length {
				n = int(d.length)
			}
			d.length -= uint32(n)
			p = p[n:]

		case stateFrameError:
			d.errs.Inc()
			d.delegate.OnFrameError(d.errReason)
			d.errReason = ""
			d.state = stateDiscard
		}
	}
}

// take returns the next n bytes of the current frame, accumulating
// across Decode calls in the scratch buffer when p is short. When the
// fast path applies the returned buf aliases p and nothing is copied.
func (d *Decoder) take(p []byte, n int) (buf, rest []byte, ok bool) {
	if d.scratchN == 0 && len(p) >= n {
		return p[:n], p[n:], true
	}
	c := copy(d.scratch[d.scratchN:n], p)
	d.scratchN += c
	if d.scratchN < n {
		return nil, p[c:], false
	}
	d.scratchN = 0
	return d.scratch[:n], p[c:], true
}

func (d *Decoder) readCommonHeader(b []byte) {
	d.flags = b[4]
	d.length = uint32(b[5])<<16 | uint32(b[6])<<8 | uint32(b[7])

	if b[0]&0x80 == 0 {
		// Data frame: 31-bit stream id, top bit reserved.
		d.streamID = binary.BigEndian.Uint32(b[0:4]) & streamIDMask
		if d.streamID == 0 {
			d.frameError("Invalid data frame")
			return
		}
		d.frames.Inc()
		if d.length == 0 {
			d.delegate.OnDataFrame(d.streamID, DataFlags(d.flags).Has(DataFlagFin), nil)
			return
		}
		d.state = stateDataPayload
		return
	}

	version := uint16(b[0]&0x7f)<<8 | uint16(b[1])
	d.frameType = ControlFrameType(binary.BigEndian.Uint16(b[2:4]))
	if version != d.version {
		d.frameError("Unsupported version")
		return
	}

	switch d.frameType {
	case TypeSynStream:
		if d.length < 10 {
			d.frameError("Invalid SYN_STREAM")
			return
		}
		d.state = stateControlPayload
	case TypeSynReply:
		if d.length < 4 {
			d.frameError("Invalid SYN_REPLY")
			return
		}
		d.state = stateControlPayload
	case TypeRstStream:
		if d.flags != 0 || d.length != 8 {
			d.frameError("Invalid RST_STREAM")
			return
		}
		d.state = stateControlPayload
	case TypeSettings:
		if d.length < 4 || (d.length-4)%8 != 0 {
			d.frameError("Invalid SETTINGS")
			return
		}
		d.settingsCounted = false
		d.state = stateSettings
	case TypePing:
		if d.length != 4 {
			d.frameError("Invalid PING")
			return
		}
		d.state = stateControlPayload
	case TypeGoAway:
		if d.length != 8 {
			d.frameError("Invalid GOAWAY")
			return
		}
		d.state = stateControlPayload
	case TypeHeaders:
		if d.length < 4 {
			d.frameError("Invalid HEADERS")
			return
		}
		d.state = stateControlPayload
	case TypeWindowUpdate:
		if d.length != 8 {
			d.frameError("Invalid WINDOW_UPDATE")
			return
		}
		d.state = stateControlPayload
	default:
		// Unrecognized control type: skip the payload, emit nothing.
		d.state = stateDiscard
	}
}

// controlFixedLen is the number of fixed payload bytes preceding any
// variable part, per control frame type.
func controlFixedLen(t ControlFrameType) int {
	switch t {
	case TypeSynStream:
		return 10
	case TypeSynReply, TypeHeaders, TypePing:
		return 4
	default: // RST_STREAM, GOAWAY, WINDOW_UPDATE
		return 8
	}
}

func (d *Decoder) readControlPayload(b []byte) {
	flags := ControlFlags(d.flags)
	switch d.frameType {
	case TypeSynStream:
		streamID := binary.BigEndian.Uint32(b[0:4]) & streamIDMask
		assocID := binary.BigEndian.Uint32(b[4:8]) & streamIDMask
		priority := b[8] >> 5 & 0x07
		if streamID == 0 {
			d.frameError("Invalid SYN_STREAM")
			return
		}
		d.frames.Inc()
		d.delegate.OnSynStreamFrame(streamID, assocID, priority,
			flags.Has(ControlFlagFin), flags.Has(ControlFlagUnidirectional))
		d.startHeaderBlock()

	case TypeSynReply:
		streamID := binary.BigEndian.Uint32(b[0:4]) & streamIDMask
		if streamID == 0 {
			d.frameError("Invalid SYN_REPLY")
			return
		}
		d.frames.Inc()
		d.delegate.OnSynReplyFrame(streamID, flags.Has(ControlFlagFin))
		d.startHeaderBlock()

	case TypeRstStream:
		streamID := binary.BigEndian.Uint32(b[0:4]) & streamIDMask
		status := RstStreamStatus(binary.BigEndian.Uint32(b[4:8]))
		if streamID == 0 || status == 0 {
			d.frameError("Invalid RST_STREAM")
			return
		}
		d.frames.Inc()
		d.delegate.OnRstStreamFrame(streamID, status)
		d.state = stateCommonHeader

	case TypePing:
		d.frames.Inc()
		d.delegate.OnPingFrame(binary.BigEndian.Uint32(b[0:4]))
		d.state = stateCommonHeader

	case TypeGoAway:
		last := binary.BigEndian.Uint32(b[0:4]) & streamIDMask
		status := GoAwayStatus(binary.BigEndian.Uint32(b[4:8]))
		d.frames.Inc()
		d.delegate.OnGoAwayFrame(last, status)
		d.state = stateCommonHeader

	case TypeHeaders:
		streamID := binary.BigEndian.Uint32(b[0:4]) & streamIDMask
		if streamID == 0 {
			d.frameError("Invalid HEADERS")
			return
		}
		d.frames.Inc()
		d.delegate.OnHeadersFrame(streamID, flags.Has(ControlFlagFin))
		d.startHeaderBlock()

	case TypeWindowUpdate:
		streamID := binary.BigEndian.Uint32(b[0:4]) & streamIDMask
		delta := binary.BigEndian.Uint32(b[4:8]) & streamIDMask
		if delta == 0 {
			d.frameError("Invalid WINDOW_UPDATE")
			return
		}
		d.frames.Inc()
		d.delegate.OnWindowUpdateFrame(streamID, delta)
		d.state = stateCommonHeader
	}
}

// startHeaderBlock begins streaming the variable tail of a SYN_STREAM,
// SYN_REPLY or HEADERS frame.
func (d *Decoder) startHeaderBlock() {
	if d.length == 0 {
		d.delegate.OnHeaderBlockEnd()
		d.state = stateCommonHeader
		return
	}
	d.state = stateHeaderBlock
}

// readSettings consumes the 4-byte entry count and then the 8-byte
// entries of a SETTINGS payload. It reports false when it ran out of
// input.
func (d *Decoder) readSettings(p []byte) (rest []byte, ok bool) {
	if !d.settingsCounted {
		buf, rest, ok := d.take(p, 4)
		if !ok {
			return rest, false
		}
		p = rest
		d.length -= 4
		d.numSettings = binary.BigEndian.Uint32(buf)
		if uint64(d.numSettings)*8 != uint64(d.length) {
			d.frameError("Invalid SETTINGS")
			return p, true
		}
		d.settingsCounted = true
		d.frames.Inc()
		d.delegate.OnSettingsFrame(ControlFlags(d.flags).Has(ControlFlagSettingsClearSettings))
	}
	for d.numSettings > 0 {
		buf, rest, ok := d.take(p, 8)
		if !ok {
			return rest, false
		}
		p = rest
		d.length -= 8
		entryFlags := SettingsFlags(buf[0])
		id := SettingsID(uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]))
		value := binary.BigEndian.Uint32(buf[4:8])
		d.numSettings--
		d.delegate.OnSetting(id, value,
			entryFlags&SettingsFlagPersistValue != 0,
			entryFlags&SettingsFlagPersisted != 0)
	}
	d.delegate.OnSettingsEnd()
	d.state = stateCommonHeader
	return p, true
}

// frameError records a structural violation; the FrameError state emits
// the event and hands the rest of the frame to DiscardFrame.
func (d *Decoder) frameError(reason string) {
	d.errReason = reason
	d.state = stateFrameError
}
