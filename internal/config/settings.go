package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the tool-level knobs read from the optional TOML settings
// file. CLI flags never override these; they configure the environment the
// tool runs in, not a single run.
type Settings struct {
	Tools ToolSettings  `toml:"tools"`
	Audio AudioSettings `toml:"audio"`
	Log   LogSettings   `toml:"log"`
}

// ToolSettings points at the external engine binaries.
type ToolSettings struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// AudioSettings control the canonical intermediate format and MP3 output.
type AudioSettings struct {
	SampleRate int `toml:"sample_rate"` // intermediate PCM rate
	MP3Quality int `toml:"mp3_quality"` // libmp3lame -q:a value
}

// LogSettings configure the optional rotating log file sink.
type LogSettings struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// DefaultSettings returns the built-in settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Tools: ToolSettings{FFmpeg: "ffmpeg", FFprobe: "ffprobe"},
		Audio: AudioSettings{SampleRate: 44100, MP3Quality: 2},
		Log:   LogSettings{MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 14},
	}
}

// DefaultSettingsPath is ~/.config/audioscrub/config.toml, following the
// XDG base directory convention.
func DefaultSettingsPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "audioscrub", "config.toml")
}

// LoadSettings reads the settings file at path, falling back to defaults
// when path is empty or the file does not exist. A present-but-broken file
// is an error; silently ignoring it would hide typos.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsPath()
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}

	if s.Tools.FFmpeg == "" {
		s.Tools.FFmpeg = "ffmpeg"
	}
	if s.Tools.FFprobe == "" {
		s.Tools.FFprobe = "ffprobe"
	}
	if s.Audio.SampleRate <= 0 {
		s.Audio.SampleRate = 44100
	}
	return s, nil
}
