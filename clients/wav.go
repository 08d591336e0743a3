package clients

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// probeWAV reads sample rate, channels and duration straight from the WAV
// header. Fallback for hosts without ffprobe; only handles .wav input.
func probeWAV(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("read wav header %s: %w", path, err)
	}
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid wav file", path)
	}

	info := &AudioInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Format:     "wav",
	}
	if dur, err := dec.Duration(); err == nil {
		info.Duration = dur.Seconds()
	}
	return info, nil
}
