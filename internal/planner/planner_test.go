package planner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/backmassage/audioscrub/internal/analysis"
	"github.com/backmassage/audioscrub/internal/config"
)

func plan(t *testing.T, raw config.Raw) Chain {
	t.Helper()
	opts, err := config.Resolve(&raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	chain, err := Plan(opts, nil, nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return chain
}

func TestPlan_AllSeedsFourStages(t *testing.T) {
	chain := plan(t, config.Raw{Input: "a.wav", All: true})
	want := Chain{
		"highpass=f=80", "lowpass=f=12000",
		"acompressor=threshold=-18dB:ratio=3:attack=20:release=250",
		"loudnorm=I=-14:TP=-1.5:LRA=11",
	}
	if !reflect.DeepEqual(chain, want) {
		t.Errorf("chain = %v, want %v", chain, want)
	}
}

// Individual flags append to --all, duplicating stages rather than
// deduplicating them.
func TestPlan_FlagsAreAdditive(t *testing.T) {
	chain := plan(t, config.Raw{Input: "a.wav", All: true, NormalizeX: true})
	if len(chain) != 5 {
		t.Fatalf("chain length = %d, want 5: %v", len(chain), chain)
	}
	if chain[3] != "loudnorm=I=-14:TP=-1.5:LRA=11" || chain[4] != "loudnorm=I=-14:TP=-1.5:LRA=11" {
		t.Errorf("expected duplicated loudnorm: %v", chain)
	}
}

func TestPlan_FlagOrder(t *testing.T) {
	chain := plan(t, config.Raw{Input: "a.wav", EQ: true, NormalizeX: true, DeEss: true})
	want := Chain{
		"loudnorm=I=-14:TP=-1.5:LRA=11",
		"highpass=f=80", "lowpass=f=12000",
		"deesser",
	}
	if !reflect.DeepEqual(chain, want) {
		t.Errorf("chain = %v, want %v", chain, want)
	}
}

func TestPlan_PresetReplacesEverything(t *testing.T) {
	chain := plan(t, config.Raw{Input: "a.wav", All: true, Compress: true, Preset: "podcast"})
	want := Chain{"highpass=f=100", "lowpass=f=8000", "loudnorm=I=-16:TP=-2:LRA=10"}
	if !reflect.DeepEqual(chain, want) {
		t.Errorf("chain = %v, want %v", chain, want)
	}
}

func TestPlan_PresetSequences(t *testing.T) {
	tests := []struct {
		preset string
		want   Chain
	}{
		{"vocals", Chain{"highpass=f=80", "lowpass=f=12000", "deesser", "loudnorm=I=-14:TP=-1.5:LRA=11"}},
		{"inst", Chain{"highpass=f=60", "lowpass=f=16000", "loudnorm=I=-14:TP=-1.5:LRA=11"}},
		{"music", Chain{"highpass=f=80", "lowpass=f=14000",
			"acompressor=threshold=-18dB:ratio=3:attack=20:release=250", "loudnorm=I=-14:TP=-1.5:LRA=11"}},
		{"podcast", Chain{"highpass=f=100", "lowpass=f=8000", "loudnorm=I=-16:TP=-2:LRA=10"}},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			chain := plan(t, config.Raw{Input: "a.wav", Preset: tt.preset})
			if !reflect.DeepEqual(chain, tt.want) {
				t.Errorf("chain = %v, want %v", chain, tt.want)
			}
		})
	}
}

// An unrecognized preset name leaves the accumulated chain untouched.
func TestPlan_UnknownPresetKeepsChain(t *testing.T) {
	chain := plan(t, config.Raw{Input: "a.wav", Normalize: true, Preset: "loud-bar"})
	want := Chain{"dynaudnorm"}
	if !reflect.DeepEqual(chain, want) {
		t.Errorf("chain = %v, want %v", chain, want)
	}
}

func TestPlan_EmptyChainIsError(t *testing.T) {
	opts, err := config.Resolve(&config.Raw{Input: "a.wav"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := Plan(opts, nil, nil); !errors.Is(err, ErrEmptyFilterChain) {
		t.Errorf("err = %v, want ErrEmptyFilterChain", err)
	}

	// Unknown preset alone resolves to nothing either.
	opts, err = config.Resolve(&config.Raw{Input: "a.wav", Preset: "bar"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := Plan(opts, nil, nil); !errors.Is(err, ErrEmptyFilterChain) {
		t.Errorf("err = %v, want ErrEmptyFilterChain", err)
	}
}

func TestTrebleTaming_Levels(t *testing.T) {
	got, err := TrebleTaming(3)
	if err != nil {
		t.Fatalf("TrebleTaming(3): %v", err)
	}
	want := Chain{
		"equalizer=f=6000:t=q:w=1.5:g=-3",
		"equalizer=f=10000:t=q:w=1.5:g=-4.5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("level 3 = %v, want %v", got, want)
	}

	got, err = TrebleTaming(10)
	if err != nil {
		t.Fatalf("TrebleTaming(10): %v", err)
	}
	want = Chain{
		"equalizer=f=6000:t=q:w=1.5:g=-10",
		"equalizer=f=10000:t=q:w=1.5:g=-15.0",
		"equalizer=f=14000:t=q:w=1.2:g=-7.5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("level 10 = %v, want %v", got, want)
	}

	// The 14 kHz smoothing cut starts at level 6.
	got, _ = TrebleTaming(6)
	if len(got) != 3 {
		t.Errorf("level 6: %d fragments, want 3: %v", len(got), got)
	}
	got, _ = TrebleTaming(5)
	if len(got) != 2 {
		t.Errorf("level 5: %d fragments, want 2: %v", len(got), got)
	}
}

func TestTrebleTaming_RangeEnforced(t *testing.T) {
	for _, lvl := range []int{0, -2, 11} {
		if _, err := TrebleTaming(lvl); !errors.Is(err, ErrInvalidTrebleLevel) {
			t.Errorf("TrebleTaming(%d): err = %v, want ErrInvalidTrebleLevel", lvl, err)
		}
	}
}

func TestAutoChain_BaseSequences(t *testing.T) {
	tests := []struct {
		name string
		d    analysis.Descriptors
		want Chain
	}{
		{
			"vocals base",
			analysis.Descriptors{RMS: 0.1, ZeroCrossingRate: 0.09, Centroid: 4500},
			Chain{"highpass=f=80", "lowpass=f=12000", "deesser", "loudnorm=I=-14:TP=-1.5:LRA=11"},
		},
		{
			"instrumental base",
			analysis.Descriptors{RMS: 0.1, ZeroCrossingRate: 0.03, Centroid: 2000},
			Chain{"highpass=f=60", "lowpass=f=16000", "loudnorm=I=-14:TP=-1.5:LRA=11"},
		},
		{
			"speech base",
			analysis.Descriptors{RMS: 0.01, ZeroCrossingRate: 0.05, Centroid: 3000},
			Chain{"highpass=f=100", "lowpass=f=8000", "loudnorm=I=-16:TP=-2:LRA=10"},
		},
		{
			"music base",
			analysis.Descriptors{RMS: 0.1, ZeroCrossingRate: 0.05, Centroid: 3000},
			Chain{"highpass=f=80", "lowpass=f=14000",
				"acompressor=threshold=-18dB:ratio=3:attack=20:release=250", "loudnorm=I=-14:TP=-1.5:LRA=11"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoChain(tt.d); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AutoChain = %v, want %v", got, tt.want)
			}
		})
	}
}

// Vocals base already contains highpass=f=80 and deesser, so the centroid
// extras must not re-add them; the harshness cuts above 6000 Hz are
// always appended.
func TestAutoChain_StringEqualityDedupe(t *testing.T) {
	d := analysis.Descriptors{RMS: 0.1, ZeroCrossingRate: 0.09, Centroid: 6500}
	got := AutoChain(d)
	want := Chain{
		"highpass=f=80", "lowpass=f=12000", "deesser", "loudnorm=I=-14:TP=-1.5:LRA=11",
		"equalizer=f=6000:t=q:w=1.5:g=-6", "equalizer=f=10000:t=q:w=1.5:g=-8",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoChain = %v, want %v", got, want)
	}
}

// The music base carries highpass=f=80 (suppresses the EQ pair) but no
// deesser, so only the de-esser guard fires between 5000 and 6000 Hz.
func TestAutoChain_GuardsAreIndependent(t *testing.T) {
	d := analysis.Descriptors{RMS: 0.1, ZeroCrossingRate: 0.05, Centroid: 5500}
	got := AutoChain(d)
	want := Chain{
		"highpass=f=80", "lowpass=f=14000",
		"acompressor=threshold=-18dB:ratio=3:attack=20:release=250", "loudnorm=I=-14:TP=-1.5:LRA=11",
		"deesser",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoChain = %v, want %v", got, want)
	}
}

func TestChainJoin(t *testing.T) {
	c := Chain{"highpass=f=80", "lowpass=f=12000"}
	if got := c.Join(); got != "highpass=f=80,lowpass=f=12000" {
		t.Errorf("Join = %q", got)
	}
}
