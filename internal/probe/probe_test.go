package probe

import "testing"

const videoJSON = `{
  "format": {"format_name": "mov,mp4,m4a,3gp,3g2,mj2", "duration": "183.5"},
  "streams": [
    {"codec_type": "video", "disposition": {"attached_pic": 0}},
    {"codec_type": "audio", "sample_rate": "48000", "channels": 2}
  ]
}`

const flacWithCoverJSON = `{
  "format": {"format_name": "flac", "duration": "240.0"},
  "streams": [
    {"codec_type": "audio", "sample_rate": "44100", "channels": 2},
    {"codec_type": "video", "disposition": {"attached_pic": 1}}
  ]
}`

func TestParseJSON_Video(t *testing.T) {
	r, err := ParseJSON([]byte(videoJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !r.HasVideo {
		t.Error("HasVideo = false, want true")
	}
	if !r.HasAudio || r.SampleRate != 48000 || r.Channels != 2 {
		t.Errorf("audio = %v/%d/%d", r.HasAudio, r.SampleRate, r.Channels)
	}
	if r.Duration != 183.5 {
		t.Errorf("duration = %v", r.Duration)
	}
}

// Cover art embedded in an audio file is not a reattachable video stream.
func TestParseJSON_AttachedPicIsNotVideo(t *testing.T) {
	r, err := ParseJSON([]byte(flacWithCoverJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.HasVideo {
		t.Error("HasVideo = true for attached_pic, want false")
	}
	if r.SampleRate != 44100 {
		t.Errorf("sample rate = %d", r.SampleRate)
	}
}

func TestParseJSON_Garbage(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("want error for invalid JSON")
	}
}
