package wavio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// TestRoundtrip checks a saved clip loads back within 16-bit precision
func TestRoundtrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "clip.wav")
	src := make([]float32, 2048)
	for i := range src {
		src[i] = float32(0.7 * math.Sin(2*math.Pi*0.01*float64(i)))
	}

	if err := Save(name, src, 44100); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, rate, err := Load(name)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rate != 44100 {
		t.Errorf("rate = %d, want 44100", rate)
	}
	if len(got) != len(src) {
		t.Fatalf("length = %d, want %d", len(got), len(src))
	}
	for i := range src {
		if math.Abs(float64(got[i]-src[i])) > 1.0/32000 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], src[i])
		}
	}
}

// TestSaveClamps checks out-of-range samples clamp instead of wrapping
func TestSaveClamps(t *testing.T) {
	name := filepath.Join(t.TempDir(), "hot.wav")
	if err := Save(name, []float32{2, -2, 0}, 48000); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _, err := Load(name)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[0] < 0.99 || got[1] > -0.99 {
		t.Errorf("clamping failed: %v", got)
	}
}

// TestLoadMissing checks a missing file errors
func TestLoadMissing(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("missing file loaded without error")
	}
}

// TestLoadInvalid checks a non-WAV file errors
func TestLoadInvalid(t *testing.T) {
	name := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(name, []byte("not a wav"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(name); err == nil {
		t.Error("invalid file loaded without error")
	}
}

// TestSaveEmpty checks an empty clip errors
func TestSaveEmpty(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "empty.wav"), nil, 44100); err == nil {
		t.Error("empty clip saved without error")
	}
}
