package io

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/spherepack"
)

const ExamplePackingFile = `[Packing]

#######################
# Required Parameters #
#######################

# Width of the cubic box.
BoxWidth = 1
# Number of particles.
Particles = 20
# The run stops once the fraction of the box filled by particles passes this
# value. It cannot be larger than the Kepler density, 0.7405.
TargetFraction = 0.3

# Boundary must be one of [ Periodic | Reflecting ]. Periodic boxes step from
# collision to collision. Reflecting boxes take fixed steps and bounce
# particles off of the walls.
Boundary = Periodic

#######################
# Optional Parameters #
#######################

# If Growth is false, particles keep their initial radius and InitialRadius
# must already be large enough to reach TargetFraction.
# Growth = true
# GrowthRate = 0.01
# InitialRadius = 0

# MaxStep is the longest step allowed between collisions in a periodic box.
# FixedStep is the step size used in reflecting boxes.
# MaxStep = 0.03
# FixedStep = 0.05

# Initial centers are drawn uniformly from [Margin*BoxWidth,
# (1 - Margin)*BoxWidth] and velocity components from [-MaxSpeed, MaxSpeed].
# A Seed of 0 seeds the generator with the current time.
# Margin = 0.1
# MaxSpeed = 0.1
# Seed = 0

# Whitespace-separated table with the columns x y z vx vy vz. If set, it is
# used instead of random initial positions and velocities.
# Input = path/to/initial_state.txt

# The final particle locations are written to Output. If PlotFile is set, a
# plot of the packing fraction against time is written there.
# Output = locations.txt
# PlotFile = fraction.png

# Watch the particles in the terminal while they grow. If the viewer is
# closed early, the particles are written to Output.partial instead.
# Display = false

# Output files which are useful for profiling and debugging. A progress line
# is logged every LogEvery ticks.
# ProfileFile = prof.out
# LogFile = log.out
# LogEvery = 100`

type PackingConfig struct {
	// Required
	BoxWidth       float64
	Particles      int
	TargetFraction float64
	Boundary       string

	// Optional
	Growth                    bool
	GrowthRate, InitialRadius float64
	MaxStep, FixedStep        float64
	Margin, MaxSpeed          float64
	Seed                      int

	Input, Output, PlotFile string
	LogFile, ProfileFile    string
	LogEvery                int
	Display                 bool
}

type PackingWrapper struct {
	Packing PackingConfig
}

func DefaultPackingWrapper() *PackingWrapper {
	con := PackingConfig{}
	con.BoxWidth = 1
	con.Particles = 20
	con.TargetFraction = 0.7
	con.Boundary = "Reflecting"
	con.Growth = true
	con.GrowthRate = 0.01
	con.MaxStep = 0.03
	con.FixedStep = 0.05
	con.Margin = 0.1
	con.MaxSpeed = 0.1
	con.Output = "locations.txt"
	con.LogEvery = 100
	return &PackingWrapper{con}
}

func (con *PackingConfig) ValidBoxWidth() bool {
	return con.BoxWidth > 0
}
func (con *PackingConfig) ValidParticles() bool {
	return con.Particles > 0
}
func (con *PackingConfig) ValidTargetFraction() bool {
	return con.TargetFraction > 0 &&
		con.TargetFraction <= spherepack.KeplerFraction
}
func (con *PackingConfig) ValidBoundary() bool {
	_, err := spherepack.ParseBoundary(con.Boundary)
	return err == nil
}
func (con *PackingConfig) ValidInitialRadius() bool {
	return con.InitialRadius >= 0 && con.InitialRadius <= con.BoxWidth/2
}
func (con *PackingConfig) ValidGrowthRate() bool {
	return con.GrowthRate > 0
}
func (con *PackingConfig) ValidMaxStep() bool {
	return con.MaxStep > 0
}
func (con *PackingConfig) ValidFixedStep() bool {
	return con.FixedStep > 0
}
func (con *PackingConfig) ValidMargin() bool {
	return con.Margin >= 0 && con.Margin < 0.5
}
func (con *PackingConfig) ValidMaxSpeed() bool {
	return con.MaxSpeed >= 0
}
func (con *PackingConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *PackingConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *PackingConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}
func (con *PackingConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *PackingConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}
func (con *PackingConfig) ValidLogEvery() bool {
	return con.LogEvery > 0
}

// TargetRadius is the radius every particle needs to reach TargetFraction.
func (con *PackingConfig) TargetRadius() float64 {
	return spherepack.TargetRadius(
		con.Particles, con.BoxWidth, con.TargetFraction,
	)
}

// CheckInit returns a *spherepack.ConfigurationError describing the first
// invalid or conflicting value in con.
func (con *PackingConfig) CheckInit() error {
	switch {
	case !con.ValidBoxWidth():
		return configErr("BoxWidth", "must be positive, but is %g", con.BoxWidth)
	case !con.ValidParticles():
		return configErr("Particles", "must be positive, but is %d", con.Particles)
	case !con.ValidTargetFraction():
		return configErr(
			"TargetFraction", "must be in range (0, %.4f], but is %g",
			spherepack.KeplerFraction, con.TargetFraction,
		)
	case !con.ValidBoundary():
		return configErr(
			"Boundary", "must be one of [ Periodic | Reflecting ], but is '%s'",
			con.Boundary,
		)
	case !con.ValidInitialRadius():
		return configErr(
			"InitialRadius", "must be in range [0, %g], but is %g",
			con.BoxWidth/2, con.InitialRadius,
		)
	case !con.ValidMargin():
		return configErr(
			"Margin", "must be in range [0, 0.5), but is %g", con.Margin,
		)
	case !con.ValidMaxSpeed():
		return configErr(
			"MaxSpeed", "must be non-negative, but is %g", con.MaxSpeed,
		)
	case !con.ValidOutput():
		return configErr("Output", "must be set")
	case !con.ValidLogEvery():
		return configErr(
			"LogEvery", "must be positive, but is %d", con.LogEvery,
		)
	}

	b, _ := spherepack.ParseBoundary(con.Boundary)
	if b == spherepack.Periodic && !con.ValidMaxStep() {
		return configErr("MaxStep", "must be positive, but is %g", con.MaxStep)
	} else if b == spherepack.Reflecting && !con.ValidFixedStep() {
		return configErr(
			"FixedStep", "must be positive, but is %g", con.FixedStep,
		)
	}

	r := con.TargetRadius()
	if r > con.BoxWidth/2 {
		return configErr(
			"TargetFraction", "%d particles would need radius %g to reach "+
				"%g, more than half of BoxWidth", con.Particles, r,
			con.TargetFraction,
		)
	}

	if con.Growth && !con.ValidGrowthRate() {
		return configErr(
			"GrowthRate", "must be positive when Growth is set, but is %g",
			con.GrowthRate,
		)
	} else if !con.Growth && con.InitialRadius <= r {
		return configErr(
			"Growth", "is false, but InitialRadius %g does not exceed the "+
				"radius %g needed to reach TargetFraction", con.InitialRadius, r,
		)
	}

	return nil
}

func configErr(field, format string, args ...interface{}) error {
	return &spherepack.ConfigurationError{
		Field: field, Reason: fmt.Sprintf(format, args...),
	}
}

// SimConfig converts con into the parameters of a spherepack.Simulation.
func (con *PackingConfig) SimConfig() (*spherepack.Config, error) {
	b, err := spherepack.ParseBoundary(con.Boundary)
	if err != nil {
		return nil, err
	}
	return &spherepack.Config{
		Width: con.BoxWidth, Boundary: b, Growth: con.Growth,
		TargetFraction: con.TargetFraction,
		MaxStep:        con.MaxStep, FixedStep: con.FixedStep,
	}, nil
}

// InitParams converts con into the parameters used to place random
// particles.
func (con *PackingConfig) InitParams() *spherepack.InitParams {
	params := &spherepack.InitParams{
		Width: con.BoxWidth, Radius: con.InitialRadius,
		GrowthRate: con.GrowthRate, MaxSpeed: con.MaxSpeed, Margin: con.Margin,
	}
	if !con.Growth {
		params.GrowthRate = 0
	}
	return params
}

// ReadConfig reads and checks a [Packing] config file. Files ending in .toml
// are read as TOML and everything else as gcfg INI.
func ReadConfig(fname string) (*PackingConfig, error) {
	wrap := DefaultPackingWrapper()

	var err error
	if strings.HasSuffix(strings.ToLower(fname), ".toml") {
		_, err = toml.DecodeFile(fname, wrap)
	} else {
		err = gcfg.ReadFileInto(wrap, fname)
	}
	if err != nil {
		return nil, err
	}

	if err = wrap.Packing.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Packing, nil
}
