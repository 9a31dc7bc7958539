package prefabs

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/relicblade/ecs/component"
)

func TestTuningSpecToTuning(t *testing.T) {
	cases := []struct {
		name  string
		yaml  string
		check func(t *testing.T, got *component.BladeTuning)
	}{
		{
			name: "empty_keeps_defaults",
			yaml: "{}",
			check: func(t *testing.T, got *component.BladeTuning) {
				want := component.DefaultBladeTuning()
				if *got != *want {
					t.Fatalf("got %+v, want defaults %+v", got, want)
				}
			},
		},
		{
			name: "partial_overrides",
			yaml: "throw_speed: 500\nquick_swing_ticks: 7",
			check: func(t *testing.T, got *component.BladeTuning) {
				if got.ThrowSpeed != 500 {
					t.Fatalf("ThrowSpeed = %v, want 500", got.ThrowSpeed)
				}
				if got.QuickSwingTicks != 7 {
					t.Fatalf("QuickSwingTicks = %v, want 7", got.QuickSwingTicks)
				}
				if got.RecallSpeed != component.DefaultBladeTuning().RecallSpeed {
					t.Fatalf("untouched field should keep its default")
				}
			},
		},
		{
			name: "arrival_block",
			yaml: "arrival_grace_ticks: 4\narrival_still_ticks: 2\narrival_epsilon: 1.5",
			check: func(t *testing.T, got *component.BladeTuning) {
				if got.ArrivalGraceTicks != 4 || got.ArrivalStillTicks != 2 || got.ArrivalEpsilon != 1.5 {
					t.Fatalf("arrival tuning not applied: %+v", got)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec TuningSpec
			if err := yaml.Unmarshal([]byte(c.yaml), &spec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			c.check(t, spec.ToTuning())
		})
	}
}

func TestLoadBladeSpecEmbedded(t *testing.T) {
	spec, err := LoadBladeSpec()
	if err != nil {
		t.Fatalf("LoadBladeSpec: %v", err)
	}
	if spec.Name == "" {
		t.Fatal("blade.yaml should name the blade")
	}
	tuning := spec.Tuning.ToTuning()
	if tuning.ThrowSpeed <= 0 {
		t.Fatalf("ThrowSpeed = %v, want positive", tuning.ThrowSpeed)
	}
	if tuning.ArrivalStillTicks <= 0 {
		t.Fatalf("ArrivalStillTicks = %v, want positive", tuning.ArrivalStillTicks)
	}
}

func TestPrefabPathCleaning(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"blade.yaml", "blade.yaml"},
		{"prefabs/blade.yaml", "blade.yaml"},
		{"", ""},
	}
	for _, c := range cases {
		if got := cleanPrefabPath(c.in); got != c.want {
			t.Fatalf("cleanPrefabPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if got := cleanScriptPath("prefabs/scripts/blade_hooks.tengo"); got != "blade_hooks.tengo" {
		t.Fatalf("cleanScriptPath = %q, want blade_hooks.tengo", got)
	}
}
