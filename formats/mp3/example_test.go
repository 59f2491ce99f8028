// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/mp3"
)

// ExampleLoadSample loads an MP3 file and converts it for a 48 kHz mixer.
func ExampleLoadSample() {
	f, err := os.Open("music/theme.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	s, err := mp3.LoadSample(f)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := s.Convert(audio.AudioFormat{Rate: 48000, Encoding: audio.S16LE, Channels: 2}); err != nil {
		log.Fatal(err)
	}
	fmt.Println(s.Format())
}

// ExampleDecoder_Decode registers the decoder for lookup by extension.
func ExampleDecoder_Decode() {
	registry := audio.NewRegistry()
	registry.Register("mp3", mp3.Decoder{})

	dec, _ := registry.ForPath("music/theme.mp3")
	f, err := os.Open("music/theme.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Decoded MP3: %d Hz, %d channels\n", src.SampleRate(), src.Channels())
}
