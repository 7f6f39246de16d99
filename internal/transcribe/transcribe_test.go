package transcribe

import (
	"io"
	"testing"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSegments struct {
	texts []string
	i     int
}

func (s *scriptedSegments) NextSegment() (whisper.Segment, error) {
	if s.i >= len(s.texts) {
		return whisper.Segment{}, io.EOF
	}
	text := s.texts[s.i]
	s.i++
	return whisper.Segment{Num: s.i, Text: text}, nil
}

func TestCollectSegmentsFiltersHallucinations(t *testing.T) {
	src := &scriptedSegments{texts: []string{
		" click five ",
		"(wind howling)",
		"[BLANK_AUDIO]",
		"click five",
		"scroll down",
		"",
	}}

	texts, err := collectSegments(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"click five", "scroll down"}, texts)
}

func TestFloat32Samples(t *testing.T) {
	out := Float32Samples([]int16{0, 16384, -32768, 32767})
	require.Len(t, out, 4)
	assert.Zero(t, out[0])
	assert.InDelta(t, 0.5, out[1], 0.0001)
	assert.InDelta(t, -1.0, out[2], 0.0001)
	assert.InDelta(t, 1.0, out[3], 0.001)
}

func TestReadWAVRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, err := fs.Create("/utterance.wav")
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	src := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 16000},
		SourceBitDepth: 16,
		Data:           []int{0, 1000, -1000, 32767, -32768},
	}
	require.NoError(t, enc.Write(src))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	buf, err := ReadWAV(fs, "/utterance.wav")
	require.NoError(t, err)
	assert.Equal(t, 16000, buf.Format.SampleRate)
	assert.Equal(t, []int16{0, 1000, -1000, 32767, -32768}, Samples16(buf))
}

func TestReadWAVRejectsGarbage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.wav", []byte("not audio"), 0644))

	_, err := ReadWAV(fs, "/bad.wav")
	assert.Error(t, err)

	_, err = ReadWAV(fs, "/missing.wav")
	assert.Error(t, err)
}
