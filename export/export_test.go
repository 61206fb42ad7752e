package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonecap/tonecap/net/tcn"
)

func TestBinaryRoundtrip(t *testing.T) {
	src := tcn.MustNew(4, 2, 3, 2)
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, src, 44100))

	dst, rate, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, 44100, rate)
	assert.Equal(t, src.ReceptiveField(), dst.ReceptiveField())

	in := []float32{1, -1, 0.5, 0.25, -0.75, 2, 0, -0.5}
	want := src.Process(in)
	got := dst.Process(in)
	for i := range want {
		assert.Equal(t, want[i], got[i], "sample %d", i)
	}
}

func TestBinaryRejectsGarbage(t *testing.T) {
	_, _, err := ReadBinary(bytes.NewReader([]byte("RIFFxxxx")))
	assert.Error(t, err)

	_, _, err = ReadBinary(bytes.NewReader([]byte("TC")))
	assert.Error(t, err)
}

func TestBinaryRejectsTruncated(t *testing.T) {
	src := tcn.MustNew(4, 2, 3, 2)
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, src, 48000))
	_, _, err := ReadBinary(bytes.NewReader(buf.Bytes()[:buf.Len()-10]))
	assert.Error(t, err)
}

func TestGoSource(t *testing.T) {
	n := tcn.MustNew(2, 1, 3, 1)
	b, err := GoSource(n, "capture", "Overdrive", 48000)
	require.NoError(t, err)
	src := b.String()

	assert.True(t, strings.HasPrefix(src, "// Code generated by tonecap. DO NOT EDIT."))
	assert.Contains(t, src, "package capture")
	assert.Contains(t, src, "const OverdriveChannels = 2")
	assert.Contains(t, src, "const OverdriveBlocks = 1")
	assert.Contains(t, src, "const OverdriveKernel = 3")
	assert.Contains(t, src, "const OverdriveSampleRate = 48000")
	assert.Contains(t, src, "var OverdriveWeights = []float32{")
	assert.True(t, strings.HasSuffix(src, "}\n"))
}

func TestGoSourceRejectsBadNames(t *testing.T) {
	n := tcn.MustNew(2, 1, 3, 1)
	_, err := GoSource(n, "capture", "bad name", 44100)
	assert.Error(t, err)
	_, err = GoSource(n, "bad-pkg", "Model", 44100)
	assert.Error(t, err)
	_, err = GoSource(n, "capture", "", 44100)
	assert.Error(t, err)
}
