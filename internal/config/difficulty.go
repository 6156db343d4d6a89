package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// hardTimeScale shortens time limits on the hard preset.
const hardTimeScale = 0.75

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyLifecyclePreset adjusts the time limit for a preset.
// Easy removes the limit and hard shortens it; normal and fixed keep it.
func ApplyLifecyclePreset(cfg *LifecycleConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.TimeLimit = 0
	case DifficultyHard:
		cfg.TimeLimit *= hardTimeScale
	}
}

// ApplyDefragPreset modifies the config based on a difficulty preset.
func ApplyDefragPreset(cfg *DefragConfig, preset DifficultyPreset) {
	ApplyLifecyclePreset(&cfg.Lifecycle, preset)

	// Smaller pieces mean more of them to place
	if preset == DifficultyHard {
		cfg.Generation.MaxGrowth = max(cfg.Generation.MinGrowth, cfg.Generation.MaxGrowth-2)
	}
}

// ApplyDriversPreset modifies the config based on a difficulty preset.
func ApplyDriversPreset(cfg *DriversConfig, preset DifficultyPreset) {
	ApplyLifecyclePreset(&cfg.Lifecycle, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Graph.MaxRingNodes = cfg.Graph.MinRingNodes + 1
	case DifficultyHard:
		cfg.Graph.MinRingNodes = cfg.Graph.MaxRingNodes - 1
	}
}

// ApplyCompressionPreset modifies the config based on a difficulty preset.
func ApplyCompressionPreset(cfg *CompressionConfig, preset DifficultyPreset) {
	ApplyLifecyclePreset(&cfg.Lifecycle, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gravity.Interval *= 1.5
	case DifficultyHard:
		cfg.Target.MinRows += 2
		cfg.Target.MaxRows += 2
		cfg.Gravity.Interval *= 0.7
	}
}
