// Copyright 2014 The Go Authors.
// See https://code.google.com/p/go/source/browse/CONTRIBUTORS
// Licensed under the same terms as Go itself:
// https://code.google.com/p/go/source/browse/LICENSE

package spdy

import "github.com/pkg/errors"

// The Decoder never returns errors; everything malformed on the read
// side becomes an OnFrameError event. These are the write-side errors
// returned by the Framer for frames that a conforming decoder would
// reject.

func newError(format string, args ...interface{}) error {
	return errors.Errorf("spdy: "+format, args...)
}

var (
	errZeroStreamID    = newError("zero stream id")
	errZeroStatus      = newError("zero status code")
	errZeroDeltaWindow = newError("zero delta window size")
	errFrameTooLarge   = newError("frame payload exceeds 24-bit length field")
)
