// Package analysis extracts scalar audio descriptors through the external
// engine and classifies content with ordered threshold rules.
package analysis

import "fmt"

// Descriptors are the three scalar summaries computed once per file.
// All values are non-negative; RMS and ZeroCrossingRate are linear ratios,
// Centroid is in Hz.
type Descriptors struct {
	RMS              float64
	ZeroCrossingRate float64
	Centroid         float64
}

// Label is the guessed content type.
type Label string

const (
	LabelVocals       Label = "vocals"
	LabelInstrumental Label = "instrumental"
	LabelSpeech       Label = "speech/podcast"
	LabelSibilant     Label = "sibilant/harsh (maybe live vocals)"
	LabelMusic        Label = "music/mixed"
)

// Classify applies the rule list in order; the first match wins, so a
// descriptor set matching several rules always takes the earliest label.
func Classify(d Descriptors) Label {
	switch {
	case d.ZeroCrossingRate > 0.08 && d.Centroid > 4000:
		return LabelVocals
	case d.ZeroCrossingRate < 0.04 && d.Centroid < 2500:
		return LabelInstrumental
	case d.RMS < 0.02:
		return LabelSpeech
	case d.Centroid > 6000:
		return LabelSibilant
	}
	return LabelMusic
}

// Recommendation is a preset suggestion. Sibilant content recommends the
// vocals preset plus separate de-essing, which is not a preset of its own;
// WithDeess keeps that distinction instead of flattening it into a name.
type Recommendation struct {
	Preset    string
	WithDeess bool
}

func (r Recommendation) String() string {
	if r.WithDeess {
		return r.Preset + " + de-ess"
	}
	return r.Preset
}

// Recommend maps a content label to its preset recommendation.
func Recommend(label Label) Recommendation {
	switch label {
	case LabelVocals:
		return Recommendation{Preset: "vocals"}
	case LabelInstrumental:
		return Recommendation{Preset: "inst"}
	case LabelSpeech:
		return Recommendation{Preset: "podcast"}
	case LabelSibilant:
		return Recommendation{Preset: "vocals", WithDeess: true}
	}
	return Recommendation{Preset: "music"}
}

// FormatStats renders the descriptor block the way the stats report and
// the suggestion output print it.
func FormatStats(d Descriptors) string {
	return fmt.Sprintf(
		"RMS loudness:       %.5f\nZero-crossing rate: %.5f\nSpectral centroid:  %.2f Hz\n",
		d.RMS, d.ZeroCrossingRate, d.Centroid)
}
