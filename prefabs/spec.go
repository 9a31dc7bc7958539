package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/relicblade/ecs/component"
)

// LoadSpec reads and unmarshals one prefab yaml.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// BladeSpec is the on-disk shape of the blade's tuning and cosmetics.
type BladeSpec struct {
	Name   string       `yaml:"name"`
	Tuning TuningSpec   `yaml:"tuning"`
	Sprite SpriteSpec   `yaml:"sprite"`
	Script string       `yaml:"script"`
	Proxy  ColliderSpec `yaml:"proxy"`
}

type TuningSpec struct {
	HoverOffsetX  float64 `yaml:"hover_offset_x"`
	HoverOffsetY  float64 `yaml:"hover_offset_y"`
	HoverBobAmp   float64 `yaml:"hover_bob_amp"`
	HoverBobTicks int     `yaml:"hover_bob_ticks"`
	FollowRate    float64 `yaml:"follow_rate"`

	HandOffsetX float64 `yaml:"hand_offset_x"`
	HandOffsetY float64 `yaml:"hand_offset_y"`
	BackOffsetX float64 `yaml:"back_offset_x"`
	BackOffsetY float64 `yaml:"back_offset_y"`

	ThrowSpeed  float64 `yaml:"throw_speed"`
	ThrowLift   float64 `yaml:"throw_lift"`
	RecallSpeed float64 `yaml:"recall_speed"`
	ReturnSpeed float64 `yaml:"return_speed"`
	LungeSpeed  float64 `yaml:"lunge_speed"`

	QuickSwingTicks int `yaml:"quick_swing_ticks"`
	HeavySwingTicks int `yaml:"heavy_swing_ticks"`

	ArrivalGraceTicks int     `yaml:"arrival_grace_ticks"`
	ArrivalStillTicks int     `yaml:"arrival_still_ticks"`
	ArrivalEpsilon    float64 `yaml:"arrival_epsilon"`

	PickupDistance float64 `yaml:"pickup_distance"`
	WaitDistance   float64 `yaml:"wait_distance"`
	WaitIdleTicks  int     `yaml:"wait_idle_ticks"`

	LungeMaxTicks int `yaml:"lunge_max_ticks"`
	RepairTicks   int `yaml:"repair_ticks"`
}

type SpriteSpec struct {
	Image  string  `yaml:"image"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

// ToTuning maps the yaml shape onto the runtime component, keeping the
// defaults for any field left at zero so a sparse yaml stays usable.
func (s TuningSpec) ToTuning() *component.BladeTuning {
	t := component.DefaultBladeTuning()
	setF := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setI := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setF(&t.HoverOffsetX, s.HoverOffsetX)
	setF(&t.HoverOffsetY, s.HoverOffsetY)
	setF(&t.HoverBobAmp, s.HoverBobAmp)
	setI(&t.HoverBobTicks, s.HoverBobTicks)
	setF(&t.FollowRate, s.FollowRate)
	setF(&t.HandOffsetX, s.HandOffsetX)
	setF(&t.HandOffsetY, s.HandOffsetY)
	setF(&t.BackOffsetX, s.BackOffsetX)
	setF(&t.BackOffsetY, s.BackOffsetY)
	setF(&t.ThrowSpeed, s.ThrowSpeed)
	setF(&t.ThrowLift, s.ThrowLift)
	setF(&t.RecallSpeed, s.RecallSpeed)
	setF(&t.ReturnSpeed, s.ReturnSpeed)
	setF(&t.LungeSpeed, s.LungeSpeed)
	setI(&t.QuickSwingTicks, s.QuickSwingTicks)
	setI(&t.HeavySwingTicks, s.HeavySwingTicks)
	setI(&t.ArrivalGraceTicks, s.ArrivalGraceTicks)
	setI(&t.ArrivalStillTicks, s.ArrivalStillTicks)
	setF(&t.ArrivalEpsilon, s.ArrivalEpsilon)
	setF(&t.PickupDistance, s.PickupDistance)
	setF(&t.WaitDistance, s.WaitDistance)
	setI(&t.WaitIdleTicks, s.WaitIdleTicks)
	setI(&t.LungeMaxTicks, s.LungeMaxTicks)
	setI(&t.RepairTicks, s.RepairTicks)
	return t
}

// LoadBladeSpec loads blade.yaml.
func LoadBladeSpec() (*BladeSpec, error) {
	spec, err := LoadSpec[BladeSpec]("blade.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
