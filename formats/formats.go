// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder of this module into one registry.
package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/formats/aiff"
	"github.com/ik5/audkern/formats/mp3"
	"github.com/ik5/audkern/formats/vorbis"
	"github.com/ik5/audkern/formats/wav"
)

// ErrUnknownFormat is returned for file extensions no decoder claims.
var ErrUnknownFormat = errors.New("unknown audio format")

// NewRegistry returns a registry holding every decoder, keyed by the file
// extensions they accept.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})

	return r
}

// KeyForPath derives the registry key from a file name.
func KeyForPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Open decodes the file at path with the decoder registered for its
// extension. Closing the returned source closes the file.
func Open(r *audio.Registry, path string) (audio.Source, error) {
	key := KeyForPath(path)

	dec, ok := r.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("decoding %s: %w", path, err), f.Close())
	}

	return &fileSource{Source: src, file: f}, nil
}

type fileSource struct {
	audio.Source
	file *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.file.Close())
}
