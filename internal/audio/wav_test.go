package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// writeWAV writes a minimal RIFF/WAVE file with the given format and no
// sample data.
func writeWAV(t *testing.T, format Format, leadingChunk bool) string {
	t.Helper()

	var buf []byte
	appendU16 := func(v uint16) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], v)
		buf = append(buf, b[:]...)
	}
	appendU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}

	buf = append(buf, "RIFF"...)
	appendU32(0) // size unused by the probe
	buf = append(buf, "WAVE"...)

	if leadingChunk {
		// An odd-sized chunk before fmt, to exercise word-aligned skipping.
		buf = append(buf, "LIST"...)
		appendU32(3)
		buf = append(buf, 'a', 'b', 'c', 0)
	}

	buf = append(buf, "fmt "...)
	appendU32(16)
	appendU16(format.AudioFormat)
	appendU16(format.Channels)
	appendU32(format.SampleRate)
	appendU32(format.SampleRate * uint32(format.Channels) * uint32(format.BitsPerSample) / 8)
	appendU16(format.Channels * format.BitsPerSample / 8)
	appendU16(format.BitsPerSample)

	path := filepath.Join(t.TempDir(), "probe.wav")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write test wav: %v", err)
	}
	return path
}

func TestProbeWAV_TargetFormat(t *testing.T) {
	want := Format{AudioFormat: 1, Channels: TargetChannels, SampleRate: TargetSampleRate, BitsPerSample: TargetBitDepth}
	path := writeWAV(t, want, false)

	got, err := ProbeWAV(path)
	if err != nil {
		t.Fatalf("ProbeWAV: %v", err)
	}
	if *got != want {
		t.Errorf("format = %v, want %v", got, want)
	}
}

func TestProbeWAV_SkipsLeadingChunks(t *testing.T) {
	want := Format{AudioFormat: 1, Channels: 2, SampleRate: 44100, BitsPerSample: 16}
	path := writeWAV(t, want, true)

	got, err := ProbeWAV(path)
	if err != nil {
		t.Fatalf("ProbeWAV: %v", err)
	}
	if *got != want {
		t.Errorf("format = %v, want %v", got, want)
	}
}

func TestProbeWAV_NotWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notwav.bin")
	if err := os.WriteFile(path, []byte("this is definitely not audio data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ProbeWAV(path); err == nil {
		t.Error("ProbeWAV should reject a non-WAV file")
	}
}

func TestProbeWAV_MissingFmtChunk(t *testing.T) {
	buf := append([]byte("RIFF"), 0, 0, 0, 0)
	buf = append(buf, "WAVE"...)
	path := filepath.Join(t.TempDir(), "nofmt.wav")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ProbeWAV(path); err == nil {
		t.Error("ProbeWAV should fail without a fmt chunk")
	}
}
