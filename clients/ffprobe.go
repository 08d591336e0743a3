package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// AudioInfo is the probed metadata of one audio file.
type AudioInfo struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration"`
	Format     string  `json:"format"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

type ffprobeFormat struct {
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

type ffprobeResult struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

// ProbeAudio extracts sample rate, channel count, duration and container
// format via ffprobe. When ffprobe is not installed the WAV header is read
// directly instead.
func ProbeAudio(ctx context.Context, path string) (*AudioInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return probeWAV(path)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet", "-print_format", "json",
		"-show_format", "-show_streams", path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var result ffprobeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("ffprobe decode: %w", err)
	}

	var audio *ffprobeStream
	for i := range result.Streams {
		if result.Streams[i].CodecType == "audio" {
			audio = &result.Streams[i]
			break
		}
	}
	if audio == nil {
		return nil, errors.New("ffprobe: no audio stream found in " + path)
	}

	info := &AudioInfo{
		Channels: audio.Channels,
		Format:   result.Format.FormatName,
	}
	if rate, err := strconv.Atoi(strings.TrimSpace(audio.SampleRate)); err == nil {
		info.SampleRate = rate
	}
	if dur, err := strconv.ParseFloat(strings.TrimSpace(result.Format.Duration), 64); err == nil {
		info.Duration = dur
	}
	return info, nil
}
