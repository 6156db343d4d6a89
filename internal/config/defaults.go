package config

import (
	_ "embed"
)

//go:embed defaults/defrag.yaml
var defaultDefragYAML []byte

//go:embed defaults/drivers.yaml
var defaultDriversYAML []byte

//go:embed defaults/compression.yaml
var defaultCompressionYAML []byte

// DefaultLifecycle returns the lifecycle used when a puzzle sets nothing.
func DefaultLifecycle() LifecycleConfig {
	return LifecycleConfig{
		DwellTime: 2,
		TimeLimit: 0,
	}
}

// DefaultDefragConfig returns the default Defragment Disk configuration.
func DefaultDefragConfig() DefragConfig {
	return DefragConfig{
		Lifecycle: LifecycleConfig{
			DwellTime: 2,
			TimeLimit: 120,
		},
		Grid: DefragGrid{
			Size:          8,
			CellWidth:     2,
			CellHeight:    1,
			SnapTolerance: 0.4,
		},
		Generation: DefragGeneration{
			MinGrowth:     1,
			MaxGrowth:     5,
			GrowthRetries: 20,
		},
	}
}

// DefaultDriversConfig returns the default Organise Drivers configuration.
func DefaultDriversConfig() DriversConfig {
	return DriversConfig{
		Lifecycle: DefaultLifecycle(),
		Graph: DriversGraph{
			MinRingNodes:     4,
			MaxRingNodes:     7,
			InteriorNodes:    2,
			InteriorAttempts: 10,
			ChordAttempts:    200,
			ScrambleAttempts: 10000,
		},
		Nodes: DriversNodes{
			RingRadiusX: 30,
			RingRadiusY: 8,
			GrabRadius:  1.5,
		},
	}
}

// DefaultCompressionConfig returns the default Data Compression configuration.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		Lifecycle: LifecycleConfig{
			DwellTime: 2,
			TimeLimit: 500,
		},
		Board: CompressionBoard{
			Width:     11,
			Height:    13,
			CellWidth: 2,
			SpawnX:    4,
		},
		Gravity: CompressionGravity{
			Interval: 0.5,
		},
		Target: CompressionTarget{
			MinRows: 4,
			MaxRows: 6,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a puzzle.
func GetDefaultYAML(puzzleID string) []byte {
	switch puzzleID {
	case "defrag":
		return defaultDefragYAML
	case "drivers":
		return defaultDriversYAML
	case "compression":
		return defaultCompressionYAML
	default:
		return nil
	}
}
