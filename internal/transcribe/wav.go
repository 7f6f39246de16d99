package transcribe

import (
	"fmt"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"
)

// ReadWAV decodes a wav file into a PCM buffer.
func ReadWAV(fs afero.Fs, path string) (*audio.IntBuffer, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	return buf, nil
}

// Samples16 converts a decoded PCM buffer to 16-bit samples, clamping
// out-of-range values.
func Samples16(buf *audio.IntBuffer) []int16 {
	if buf == nil {
		return nil
	}
	out := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		switch {
		case s > 32767:
			out[i] = 32767
		case s < -32768:
			out[i] = -32768
		default:
			out[i] = int16(s)
		}
	}
	return out
}
