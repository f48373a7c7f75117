// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
//	f, _ := os.Open("take.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Channel count and sample rate are taken from the identification header, so
// mono, stereo and surround files all decode with their own layout. Seekable
// inputs report a Duration.
package vorbis
