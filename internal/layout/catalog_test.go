package layout

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestPlacementText(t *testing.T) {
	tests := []struct {
		in      string
		want    Placement
		wantErr bool
	}{
		{"left", AllowLeft, false},
		{"left, right", AllowLeft | AllowRight, false},
		{"single", AllowAllSingle, false},
		{"spans", AllowAllSpans, false},
		{"Middle+Right", AllowMiddleRight, false},
		{"", 0, false},
		{"diagonal", 0, true},
	}

	for _, tc := range tests {
		var p Placement
		err := p.UnmarshalText([]byte(tc.in))
		if tc.wantErr {
			if err == nil {
				t.Errorf("UnmarshalText(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("UnmarshalText(%q) error: %v", tc.in, err)
			continue
		}
		if p != tc.want {
			t.Errorf("UnmarshalText(%q) = %s, expected %s", tc.in, p, tc.want)
		}
	}

	if got := (AllowLeft | AllowMiddleRight).String(); got != "left,middle+right" {
		t.Errorf("String() = %q", got)
	}
}

func TestCatalogDecodeYAML(t *testing.T) {
	src := `
obstacles:
  - id: crate
    lane_width: 1
    placements: single
  - id: truck
    lane_width: 2
    placements: left+middle,middle+right
coin: true
powerups:
  - id: shield
    kind: invulnerability
    duration_ticks: 600
`
	var c Catalog
	if err := yaml.Unmarshal([]byte(src), &c); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if len(c.singlesFor(Right)) != 1 || len(c.twoWideFor(MiddleRight)) != 1 {
		t.Errorf("decoded catalog lookup mismatch: %+v", c)
	}
	if !c.Coin || len(c.Powerups) != 1 || c.Powerups[0].Kind != PowerupInvulnerability {
		t.Errorf("decoded pickups mismatch: %+v", c)
	}

	data, err := json.Marshal(c.Obstacles[1])
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"placements":"left+middle,middle+right"`) {
		t.Errorf("json placements = %s", data)
	}
}

func TestCatalogValidate(t *testing.T) {
	c := Catalog{
		Obstacles: []ObstacleSpec{
			{ID: "ok", LaneWidth: 1, Placements: AllowLeft},
			{ID: "ok", LaneWidth: 1, Placements: AllowLeft},
			{ID: "", LaneWidth: 1, Placements: AllowLeft},
			{ID: "wide", LaneWidth: 3, Placements: AllowAllSpans},
			{ID: "mismatch", LaneWidth: 2, Placements: AllowLeft},
		},
		Powerups: []PowerupSpec{{ID: "x", Kind: "speed"}},
	}

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"duplicate id", "missing id", "not in {1,2}", "no span placement", "unknown kind"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %q: %v", want, err)
		}
	}

	if err := fullCatalog().Validate(); err != nil {
		t.Errorf("fullCatalog().Validate() error: %v", err)
	}
}
