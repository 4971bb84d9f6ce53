// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

// Package spdy implements the SPDY/3.1 framing layer.
//
// The package is built around a push-style Decoder: callers feed it
// arbitrarily chunked bytes from the transport and it emits validated
// frame events to a FrameDelegate. Large payloads (data frames and
// compressed header blocks) are forwarded as zero-copy slices of the
// caller's buffer. A Framer writes the inverse byte stream.
//
// See http://www.chromium.org/spdy/spdy-protocol/spdy-protocol-draft3-1
package spdy

import "fmt"

// Version is the SPDY protocol version this package targets. SPDY/3.1
// kept the wire version field of SPDY/3.
const Version = 3

// frameHeaderLen is the length of the common header that starts every
// frame, control or data.
const frameHeaderLen = 8

// maxFrameLength is the largest payload a frame can declare; the length
// field is 24 bits.
const maxFrameLength = 1<<24 - 1

// A ControlFrameType is a registered SPDY control frame type.
// See SPDY/3 section 2.6.
type ControlFrameType uint16

const (
	TypeSynStream    ControlFrameType = 0x0001
	TypeSynReply     ControlFrameType = 0x0002
	TypeRstStream    ControlFrameType = 0x0003
	TypeSettings     ControlFrameType = 0x0004
	TypePing         ControlFrameType = 0x0006
	TypeGoAway       ControlFrameType = 0x0007
	TypeHeaders      ControlFrameType = 0x0008
	TypeWindowUpdate ControlFrameType = 0x0009

	// TypeCredential was removed in SPDY/3.1; frames carrying it are
	// skipped like any other unrecognized type.
	TypeCredential ControlFrameType = 0x000A
)

var frameName = map[ControlFrameType]string{
	TypeSynStream:    "SYN_STREAM",
	TypeSynReply:     "SYN_REPLY",
	TypeRstStream:    "RST_STREAM",
	TypeSettings:     "SETTINGS",
	TypePing:         "PING",
	TypeGoAway:       "GOAWAY",
	TypeHeaders:      "HEADERS",
	TypeWindowUpdate: "WINDOW_UPDATE",
	TypeCredential:   "CREDENTIAL",
}

func (t ControlFrameType) String() string {
	if s, ok := frameName[t]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN_FRAME_TYPE_%d", uint16(t))
}

// ControlFlags is the flags byte of a control frame. The meaning of
// each bit depends on the frame type.
type ControlFlags uint8

const (
	ControlFlagFin                   ControlFlags = 0x01
	ControlFlagUnidirectional        ControlFlags = 0x02
	ControlFlagSettingsClearSettings ControlFlags = 0x01
)

// Has reports whether f contains all (0 or more) flags in v.
func (f ControlFlags) Has(v ControlFlags) bool {
	return (f & v) == v
}

// DataFlags is the flags byte of a data frame.
type DataFlags uint8

const (
	DataFlagFin DataFlags = 0x01
)

func (f DataFlags) Has(v DataFlags) bool {
	return (f & v) == v
}

// A SettingsID identifies one parameter in a SETTINGS frame.
// See SPDY/3 section 2.6.4.
type SettingsID uint32

const (
	SettingsUploadBandwidth             SettingsID = 1
	SettingsDownloadBandwidth           SettingsID = 2
	SettingsRoundTripTime               SettingsID = 3
	SettingsMaxConcurrentStreams        SettingsID = 4
	SettingsCurrentCwnd                 SettingsID = 5
	SettingsDownloadRetransRate         SettingsID = 6
	SettingsInitialWindowSize           SettingsID = 7
	SettingsClientCertificateVectorSize SettingsID = 8
)

var settingName = map[SettingsID]string{
	SettingsUploadBandwidth:             "UPLOAD_BANDWIDTH",
	SettingsDownloadBandwidth:           "DOWNLOAD_BANDWIDTH",
	SettingsRoundTripTime:               "ROUND_TRIP_TIME",
	SettingsMaxConcurrentStreams:        "MAX_CONCURRENT_STREAMS",
	SettingsCurrentCwnd:                 "CURRENT_CWND",
	SettingsDownloadRetransRate:         "DOWNLOAD_RETRANS_RATE",
	SettingsInitialWindowSize:           "INITIAL_WINDOW_SIZE",
	SettingsClientCertificateVectorSize: "CLIENT_CERTIFICATE_VECTOR_SIZE",
}

func (s SettingsID) String() string {
	if v, ok := settingName[s]; ok {
		return v
	}
	return fmt.Sprintf("UNKNOWN_SETTING_%d", uint32(s))
}

// SettingsFlags is the per-entry flags byte of one SETTINGS parameter.
type SettingsFlags uint8

const (
	SettingsFlagPersistValue SettingsFlags = 0x01
	SettingsFlagPersisted    SettingsFlags = 0x02
)

// A RstStreamStatus is the status code carried by a RST_STREAM frame.
// See SPDY/3 section 2.6.3.
type RstStreamStatus uint32

const (
	ProtocolError RstStreamStatus = iota + 1
	InvalidStream
	RefusedStream
	UnsupportedVersion
	Cancel
	InternalError
	FlowControlError
	StreamInUse
	StreamAlreadyClosed
	InvalidCredentials
	FrameTooLarge
)

var rstStatusName = map[RstStreamStatus]string{
	ProtocolError:       "PROTOCOL_ERROR",
	InvalidStream:       "INVALID_STREAM",
	RefusedStream:       "REFUSED_STREAM",
	UnsupportedVersion:  "UNSUPPORTED_VERSION",
	Cancel:              "CANCEL",
	InternalError:       "INTERNAL_ERROR",
	FlowControlError:    "FLOW_CONTROL_ERROR",
	StreamInUse:         "STREAM_IN_USE",
	StreamAlreadyClosed: "STREAM_ALREADY_CLOSED",
	InvalidCredentials:  "INVALID_CREDENTIALS",
	FrameTooLarge:       "FRAME_TOO_LARGE",
}

func (s RstStreamStatus) String() string {
	if v, ok := rstStatusName[s]; ok {
		return v
	}
	return fmt.Sprintf("UNKNOWN_STATUS_%d", uint32(s))
}

// A GoAwayStatus is the status code carried by a GOAWAY frame.
type GoAwayStatus uint32

const (
	GoAwayOK GoAwayStatus = iota
	GoAwayProtocolError
	GoAwayInternalError
)

func (s GoAwayStatus) String() string {
	switch s {
	case GoAwayOK:
		return "OK"
	case GoAwayProtocolError:
		return "PROTOCOL_ERROR"
	case GoAwayInternalError:
		return "INTERNAL_ERROR"
	}
	return fmt.Sprintf("UNKNOWN_STATUS_%d", uint32(s))
}
