// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

// DefaultRegistry knows every format this module decodes.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry with the WAV, MP3, Ogg Vorbis and AIFF
// decoders registered under their usual file extensions.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}

// LoadFile decodes the file at path into memory, picking the decoder from
// DefaultRegistry by extension.
func LoadFile(path string) (*audio.Sample, error) {
	return loadFile(DefaultRegistry, path)
}

func loadFile(reg *audio.Registry, path string) (*audio.Sample, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	dec, ok := reg.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	s, err := audio.ReadSample(src)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

// OpenStream opens path for playback. 8 and 16-bit WAV files are read from
// disk as they play and the file is closed with the stream; every other
// file is decoded into memory first.
func OpenStream(path string) (audio.Stream, error) {
	if !isWAV(path) {
		s, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return audio.NewSampleStream(s), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := wav.OpenStream(f, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return st, nil
}

func isWAV(path string) bool {
	dec, ok := DefaultRegistry.ForPath(path)
	if !ok {
		return false
	}
	_, ok = dec.(wav.Decoder)
	return ok
}

// FileBank is a mixer.SampleBank over files on disk. Effect id i is
// Paths[i].
type FileBank struct {
	Paths []string
	// Registry picks decoders. nil means DefaultRegistry.
	Registry *audio.Registry
}

var _ mixer.SampleBank = FileBank{}

func (b FileBank) Len() int { return len(b.Paths) }

func (b FileBank) LoadSample(id int) (*audio.Sample, error) {
	if id < 0 || id >= len(b.Paths) {
		return nil, fmt.Errorf("%w: effect %d", ErrUnknownID, id)
	}
	return loadFile(b.Registry, b.Paths[id])
}

// FileMusic is a mixer.MusicLoader over files on disk.
type FileMusic struct {
	Paths map[int]string
	// Registry picks decoders. nil means DefaultRegistry.
	Registry *audio.Registry
}

var _ mixer.MusicLoader = FileMusic{}

func (m FileMusic) LoadMusic(id int) (*audio.Sample, error) {
	path, ok := m.Paths[id]
	if !ok {
		return nil, fmt.Errorf("%w: music %d", ErrUnknownID, id)
	}
	return loadFile(m.Registry, path)
}
