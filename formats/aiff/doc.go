// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format files with
// github.com/go-audio/aiff.
//
// Big-endian integer PCM at 8, 16, 24 and 32 bits is supported:
//
//	f, _ := os.Open("loop.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// The Source reports the duration stored in the COMM chunk. go-audio needs to
// seek, so non-seekable inputs are read into memory first.
package aiff
