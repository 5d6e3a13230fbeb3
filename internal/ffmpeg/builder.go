package ffmpeg

import "strconv"

// ExtractAudioArgs demuxes/converts any supported input into the canonical
// intermediate: signed 16-bit PCM at the configured rate. Applied to every
// input, video or not, so downstream stages see one format.
func ExtractAudioArgs(input, output string, sampleRate int) []string {
	return []string{
		"-y", "-i", input, "-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		output,
	}
}

// FilterArgs applies the whole resolved filter chain in one invocation.
// chain is the comma-joined fragment list; order is significant.
func FilterArgs(input, output, chain string) []string {
	return []string{"-y", "-i", input, "-af", chain, output}
}

// ExtractVideoArgs stream-copies the video track, dropping audio.
func ExtractVideoArgs(input, output string) []string {
	return []string{"-y", "-i", input, "-an", "-c:v", "copy", output}
}

// RotateArgs re-encodes the video through a single rotation filter.
func RotateArgs(input, output, filter string) []string {
	return []string{
		"-y", "-i", input,
		"-vf", filter,
		"-an", "-c:v", "libx264", "-preset", "ultrafast",
		output,
	}
}

// MuxArgs combines the (possibly rotated) video with the processed audio,
// copying video and truncating to the shorter stream.
func MuxArgs(video, audio, output string) []string {
	return []string{
		"-y", "-i", video, "-i", audio,
		"-map", "0:v", "-map", "1:a",
		"-c:v", "copy", "-shortest",
		output,
	}
}

// EncodeMP3Args transcodes the processed audio to MP3 at the given VBR
// quality (lower is better; 2 is the historical default).
func EncodeMP3Args(input, output string, quality int) []string {
	return []string{
		"-y", "-i", input,
		"-codec:a", "libmp3lame", "-q:a", strconv.Itoa(quality),
		output,
	}
}

// StillImageArgs renders the processed audio under a looped still image as
// an H.264/AAC MP4, ending with the audio (shortest stream).
func StillImageArgs(image, audio, output string) []string {
	return []string{
		"-y", "-loop", "1", "-i", image, "-i", audio,
		"-c:v", "libx264", "-tune", "stillimage",
		"-c:a", "aac", "-b:a", "192k",
		"-pix_fmt", "yuv420p", "-shortest",
		output,
	}
}

// AStatsArgs runs the astats overall pass against the null muxer. The
// report lands on stderr and is parsed by the analysis package.
func AStatsArgs(input string) []string {
	return []string{
		"-nostats", "-vn", "-i", input,
		"-af", "astats=measure_overall=1:reset=0",
		"-f", "null", "-",
	}
}

// SpectralArgs runs the per-frame spectral centroid pass; ametadata prints
// each frame's value to stderr for averaging.
func SpectralArgs(input string) []string {
	return []string{
		"-nostats", "-vn", "-i", input,
		"-af", "aspectralstats=measure=centroid,ametadata=mode=print",
		"-f", "null", "-",
	}
}
