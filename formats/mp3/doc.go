// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with github.com/hajimehoshi/go-mp3.
//
// Output is always interleaved stereo float32; mono files are duplicated by the
// underlying decoder. The sample rate is that of the file.
//
//	f, _ := os.Open("song.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// When the input is seekable (a file, bytes.Reader) the decoder scans frame
// headers up front and the Source reports its Duration; streamed input has a
// zero duration.
//
// To feed a mono pipeline, wrap the source:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
package mp3
