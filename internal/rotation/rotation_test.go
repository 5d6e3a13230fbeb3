package rotation

import (
	"errors"
	"math"
	"testing"
)

func mustMap(t *testing.T, deg float64, dir Direction) string {
	t.Helper()
	got, err := Map(deg, dir)
	if err != nil {
		t.Fatalf("Map(%v, %s): %v", deg, dir, err)
	}
	return got
}

func TestMap_CanonicalAngles(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		dir  Direction
		want string
	}{
		{"90 cw", 90, Clockwise, "transpose=1"},
		{"270 cw", 270, Clockwise, "transpose=2"},
		{"180 cw", 180, Clockwise, "transpose=2,transpose=2"},
		{"90 ccw is 270", 90, Counterclockwise, "transpose=2"},
		{"270 ccw is 90", 270, Counterclockwise, "transpose=1"},
		{"180 ccw is 180", 180, Counterclockwise, "transpose=2,transpose=2"},
		{"-270 cw is 90", -270, Clockwise, "transpose=1"},
		{"-90 cw is 270", -90, Clockwise, "transpose=2"},
		{"-180 cw is 180", -180, Clockwise, "transpose=2,transpose=2"},
		{"450 cw wraps to 90", 450, Clockwise, "transpose=1"},
		{"-450 ccw wraps to 90", -450, Counterclockwise, "transpose=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustMap(t, tt.deg, tt.dir); got != tt.want {
				t.Errorf("Map(%v, %s) = %q, want %q", tt.deg, tt.dir, got, tt.want)
			}
		})
	}
}

// Map(d, cw) and Map(-d, ccw) must be identical for any angle.
func TestMap_SignNegationSymmetry(t *testing.T) {
	for _, d := range []float64{0, 12.5, 45, 90, 100.1, 180, 269.9, 270, 359, 400, 725.25} {
		cw := mustMap(t, d, Clockwise)
		ccw := mustMap(t, -d, Counterclockwise)
		if cw != ccw {
			t.Errorf("Map(%v, cw) = %q but Map(%v, ccw) = %q", d, cw, -d, ccw)
		}
	}
}

func TestMap_ContinuousFallback(t *testing.T) {
	got := mustMap(t, 45, Clockwise)
	want := "rotate=0.785398:bilinear=1"
	if got != want {
		t.Errorf("Map(45, cw) = %q, want %q", got, want)
	}

	// Normalization happens before the radian conversion.
	if a, b := mustMap(t, 405, Clockwise), mustMap(t, 45, Clockwise); a != b {
		t.Errorf("Map(405) = %q, Map(45) = %q; want equal", a, b)
	}

	// Zero is not a canonical transpose angle.
	if got := mustMap(t, 0, Clockwise); got != "rotate=0.000000:bilinear=1" {
		t.Errorf("Map(0, cw) = %q, want rotate=0.000000:bilinear=1", got)
	}
}

func TestMap_InvalidAngles(t *testing.T) {
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Map(d, Clockwise); !errors.Is(err, ErrInvalidRotationAngle) {
			t.Errorf("Map(%v): err = %v, want ErrInvalidRotationAngle", d, err)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		cwSet   bool
		ccwSet  bool
		wantNil bool
		wantErr bool
		wantDir Direction
	}{
		{"neither", false, false, true, false, ""},
		{"cw only", true, false, false, false, Clockwise},
		{"ccw only", false, true, false, false, Counterclockwise},
		{"both", true, true, true, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Resolve(tt.cwSet, 90, tt.ccwSet, 90)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrConflictingRotation) {
				t.Fatalf("err = %v, want ErrConflictingRotation", err)
			}
			if (req == nil) != tt.wantNil {
				t.Fatalf("req = %v, wantNil %v", req, tt.wantNil)
			}
			if req != nil && req.Direction != tt.wantDir {
				t.Errorf("direction = %s, want %s", req.Direction, tt.wantDir)
			}
		})
	}
}
