// Package config provides YAML-based puzzle configuration loading and
// difficulty presets for the puzzle suite.
package config

// LifecycleConfig holds the tunables shared by every puzzle session.
type LifecycleConfig struct {
	DwellTime float64 `yaml:"dwell_time"` // Seconds the ending message stays up
	TimeLimit float64 `yaml:"time_limit"` // Seconds to solve, 0 disables the limit
}

// DefragConfig contains all configuration for the Defragment Disk puzzle.
type DefragConfig struct {
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
	Grid       DefragGrid       `yaml:"grid"`
	Generation DefragGeneration `yaml:"generation"`
}

// DefragGrid defines the packing grid and its on-screen cell size.
type DefragGrid struct {
	Size          int     `yaml:"size"`           // Cells per side
	CellWidth     int     `yaml:"cell_width"`     // Terminal columns per cell
	CellHeight    int     `yaml:"cell_height"`    // Terminal rows per cell
	SnapTolerance float64 `yaml:"snap_tolerance"` // Grid inflation in cells for snapping
}

// DefragGeneration defines how the grid is partitioned into pieces.
type DefragGeneration struct {
	MinGrowth     int `yaml:"min_growth"`     // Fewest growth steps per piece
	MaxGrowth     int `yaml:"max_growth"`     // Most growth steps per piece
	GrowthRetries int `yaml:"growth_retries"` // Neighbour proposals per growth step
}

// DriversConfig contains all configuration for the Organise Drivers puzzle.
type DriversConfig struct {
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Graph     DriversGraph    `yaml:"graph"`
	Nodes     DriversNodes    `yaml:"nodes"`
}

// DriversGraph defines graph generation parameters.
type DriversGraph struct {
	MinRingNodes     int `yaml:"min_ring_nodes"`
	MaxRingNodes     int `yaml:"max_ring_nodes"`
	InteriorNodes    int `yaml:"interior_nodes"`
	InteriorAttempts int `yaml:"interior_attempts"` // Connection attempts per interior node
	ChordAttempts    int `yaml:"chord_attempts"`    // Candidate chords tried before giving up
	ScrambleAttempts int `yaml:"scramble_attempts"` // Layouts tried to get a crossing
}

// DriversNodes defines node layout and hit-testing.
type DriversNodes struct {
	RingRadiusX float64 `yaml:"ring_radius_x"`
	RingRadiusY float64 `yaml:"ring_radius_y"`
	GrabRadius  float64 `yaml:"grab_radius"`
}

// CompressionConfig contains all configuration for the Data Compression puzzle.
type CompressionConfig struct {
	Lifecycle LifecycleConfig    `yaml:"lifecycle"`
	Board     CompressionBoard   `yaml:"board"`
	Gravity   CompressionGravity `yaml:"gravity"`
	Target    CompressionTarget  `yaml:"target"`
}

// CompressionBoard defines the well dimensions.
type CompressionBoard struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	CellWidth int `yaml:"cell_width"` // Terminal columns per cell
	SpawnX    int `yaml:"spawn_x"`
}

// CompressionGravity defines the fall rate.
type CompressionGravity struct {
	Interval float64 `yaml:"interval"` // Seconds between gravity steps
}

// CompressionTarget defines how many rows must be cleared to win.
type CompressionTarget struct {
	MinRows int `yaml:"min_rows"`
	MaxRows int `yaml:"max_rows"`
}
