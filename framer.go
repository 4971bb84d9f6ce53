// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import "io"

// A Framer writes SPDY frames to an io.Writer, producing the byte
// stream the Decoder consumes. Header blocks are taken as opaque bytes;
// compressing them is the caller's concern.
//
// Each Write method performs exactly one Write to the underlying
// Writer. A Framer is not safe for concurrent use.
type Framer struct {
	w    io.Writer
	wbuf []byte
}

// NewFramer returns a Framer that writes frames to w.
func NewFramer(w io.Writer) *Framer {
	return &Framer{w: w}
}

func (f *Framer) startControlWrite(t ControlFrameType, flags ControlFlags) {
	// Control bit, 15-bit version, 16-bit type, flags, then 3 bytes of
	// length filled in by endWrite.
	f.wbuf = append(f.wbuf[:0],
		0x80|byte(Version>>8),
		byte(Version),
		byte(t>>8),
		byte(t),
		byte(flags),
		0,
		0,
		0)
}

func (f *Framer) startDataWrite(streamID uint32, flags DataFlags) {
	f.wbuf = append(f.wbuf[:0],
		byte(streamID>>24)&0x7f,
		byte(streamID>>16),
		byte(streamID>>8),
		byte(streamID),
		byte(flags),
		0,
		0,
		0)
}

func (f *Framer) endWrite() error {
	length := len(f.wbuf) - frameHeaderLen
	if length > maxFrameLength {
		return errFrameTooLarge
	}
	f.wbuf[5] = byte(length >> 16)
	f.wbuf[6] = byte(length >> 8)
	f.wbuf[7] = byte(length)
	n, err := f.w.Write(f.wbuf)
	if err == nil && n != len(f.wbuf) {
		err = io.ErrShortWrite
	}
	return err
}

func (f *Framer) writeUint32(v uint32) {
	f.wbuf = append(f.wbuf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WriteData writes a data frame. An empty data frame with fin set is
// the usual way to half-close a stream.
func (f *Framer) WriteData(streamID uint32, fin bool, data []byte) error {
	if streamID == 0 {
		return errZeroStreamID
	}
	var flags DataFlags
	if fin {
		flags |= DataFlagFin
	}
	f.startDataWrite(streamID, flags)
	f.wbuf = append(f.wbuf, data...)
	return f.endWrite()
}

// SynStreamParam populates a SYN_STREAM frame.
type SynStreamParam struct {
	StreamID       uint32
	AssocStreamID  uint32
	Priority       uint8 // 0 (highest) through 7
	Fin            bool
	Unidirectional bool
	HeaderBlock    []byte
}

// WriteSynStream writes a SYN_STREAM frame.
func (f *Framer) WriteSynStream(p SynStreamParam) error {
	if p.StreamID == 0 {
		return errZeroStreamID
	}
	if p.Priority > 7 {
		return newError("priority %d out of range", p.Priority)
	}
	var flags ControlFlags
	if p.Fin {
		flags |= ControlFlagFin
	}
	if p.Unidirectional {
		flags |= ControlFlagUnidirectional
	}
	f.startControlWrite(TypeSynStream, flags)
	f.writeUint32(p.StreamID & streamIDMask)
	f.writeUint32(p.AssocStreamID & streamIDMask)
	f.wbuf = append(f.wbuf, p.Priority<<5, 0)
	f.wbuf = append(f.wbuf, p.HeaderBlock...)
	return f.endWrite()
}

// WriteSynReply writes a SYN_REPLY frame.
func (f *Framer) WriteSynReply(streamID uint32, fin bool, headerBlock []byte) error {
	if streamID == 0 {
		return errZeroStreamID
	}
	var flags ControlFlags
	if fin {
		flags |= ControlFlagFin
	}
	f.startControlWrite(TypeSynReply, flags)
	f.writeUint32(streamID & streamIDMask)
	f.wbuf = append(f.wbuf, headerBlock...)
	return f.endWrite()
}

// WriteRstStream writes a RST_STREAM frame.
func (f *Framer) WriteRstStream(streamID uint32, status RstStreamStatus) error {
	if streamID == 0 {
		return errZeroStreamID
	}
	if status == 0 {
		return errZeroStatus
	}
	f.startControlWrite(TypeRstStream, 0)
	f.writeUint32(streamID & streamIDMask)
	f.writeUint32(uint32(status))
	return f.endWrite()
}

// WriteSettings writes a SETTINGS frame carrying the given entries.
func (f *Framer) WriteSettings(clearPersisted bool, settings ...Setting) error {
	var flags ControlFlags
	if clearPersisted {
		flags |= ControlFlagSettingsClearSettings
	}
	f.startControlWrite(TypeSettings, flags)
	f.writeUint32(uint32(len(settings)))
	for _, s := range settings {
		if s.ID > 0xffffff {
			return newError("setting id %d exceeds 24 bits", uint32(s.ID))
		}
		f.wbuf = append(f.wbuf,
			byte(s.Flags),
			byte(s.ID>>16),
			byte(s.ID>>8),
			byte(s.ID))
		f.writeUint32(s.Value)
	}
	return f.endWrite()
}

// WritePing writes a PING frame.
func (f *Framer) WritePing(id uint32) error {
	f.startControlWrite(TypePing, 0)
	f.writeUint32(id)
	return f.endWrite()
}

// WriteGoAway writes a GOAWAY frame.
func (f *Framer) WriteGoAway(lastGoodStreamID uint32, status GoAwayStatus) error {
	f.startControlWrite(TypeGoAway, 0)
	f.writeUint32(lastGoodStreamID & streamIDMask)
	f.writeUint32(uint32(status))
	return f.endWrite()
}

// WriteHeaders writes a HEADERS frame.
func (f *Framer) WriteHeaders(streamID uint32, fin bool, headerBlock []byte) error {
	if streamID == 0 {
		return errZeroStreamID
	}
	var flags ControlFlags
	if fin {
		flags |= ControlFlagFin
	}
	f.startControlWrite(TypeHeaders, flags)
	f.writeUint32(streamID & streamIDMask)
	f.wbuf = append(f.wbuf, headerBlock...)
	return f.endWrite()
}

// WriteWindowUpdate writes a WINDOW_UPDATE frame. A streamID of zero
// updates the connection-level window.
func (f *Framer) WriteWindowUpdate(streamID, deltaWindowSize uint32) error {
	if deltaWindowSize == 0 {
		return errZeroDeltaWindow
	}
	if deltaWindowSize > streamIDMask {
		return newError("delta window size %d out of range", deltaWindowSize)
	}
	f.startControlWrite(TypeWindowUpdate, 0)
	f.writeUint32(streamID & streamIDMask)
	f.writeUint32(deltaWindowSize)
	return f.endWrite()
}
