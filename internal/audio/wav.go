package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Format describes the PCM encoding of a WAV file.
type Format struct {
	AudioFormat   uint16 // 1 = linear PCM
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// String renders the format for error messages.
func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch %dbit (fmt=%d)", f.SampleRate, f.Channels, f.BitsPerSample, f.AudioFormat)
}

// ProbeWAV parses the RIFF header of a WAV file and returns its format.
// Only the fmt chunk is inspected; sample data is not read.
func ProbeWAV(path string) (*Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return nil, fmt.Errorf("short WAV header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}

	// Walk chunks until the fmt chunk.
	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(f, chunkHeader[:]); err != nil {
			return nil, errors.New("WAV file has no fmt chunk")
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		if chunkID != "fmt " {
			// Chunks are word-aligned.
			skip := int64(chunkSize)
			if chunkSize%2 == 1 {
				skip++
			}
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return nil, err
			}
			continue
		}

		if chunkSize < 16 {
			return nil, fmt.Errorf("fmt chunk too small: %d bytes", chunkSize)
		}
		var fmtData [16]byte
		if _, err := io.ReadFull(f, fmtData[:]); err != nil {
			return nil, fmt.Errorf("short fmt chunk: %w", err)
		}

		return &Format{
			AudioFormat:   binary.LittleEndian.Uint16(fmtData[0:2]),
			Channels:      binary.LittleEndian.Uint16(fmtData[2:4]),
			SampleRate:    binary.LittleEndian.Uint32(fmtData[4:8]),
			BitsPerSample: binary.LittleEndian.Uint16(fmtData[14:16]),
		}, nil
	}
}
