package io

import (
	"strings"
)

const (
	ExampleDepositFile = `[Deposit]

#######################
# Required Parameters #
#######################

# Particle snapshot to deposit.
Input = path/to/snapshot.dat
# File the populated grid will be written to.
Output = path/to/grid.dat

# Number of grid points along one side of the grid.
Cells = 1500

# Bounds of the cubic domain along each axis. Particles at or beyond
# DomainMax (or below DomainMin) are rejected and counted, not clamped.
DomainMin = -0.5
DomainMax = 0.5

#######################
# Optional Parameters #
#######################

# The particle attribute deposited onto the grid. Must be one of
# [ vx | vy | vz ].
# ValueField = vx

# Deposition scheme. Must be one of [ TriLinear | NGP ]. TriLinear splits
# each particle's value across the eight surrounding grid points, NGP
# assigns it to the closest grid point.
# Method = TriLinear

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleFilterFile = `[Filter]

#######################
# Required Parameters #
#######################

# Prefixes for the input and output frame sequences. Frame i is read from
# <Input>XXXX.png and written to <Output>XXXX.png, where XXXX is the
# zero-padded frame index.
Input  = path/to/frames/transposed
Output = path/to/frames/filtered

# Half-open frame index range [StartIndex, EndIndex).
StartIndex = 800
EndIndex = 1000

#######################
# Optional Parameters #
#######################

# Channel scale applied before everything else.
# Brightness = 1.1

# Channel scale and offset applied after the brightness pass:
# out = Contrast*in + ContrastOffset, clamped to [0, 255].
# Contrast = 2.2
# ContrastOffset = -70

# Tint color mixed additively into every pixel with weight TintWeight.
# TintR = 0
# TintG = 80
# TintB = 30
# TintWeight = 0.25

# Saturation multiplier. 1.0 leaves the frame unchanged.
# Saturation = 0.85

# LogFile = log.out
# ProfileFile = prof.out`
)

type SharedConfig struct {
	// Required
	Input, Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type DepositConfig struct {
	SharedConfig

	// Required
	Cells                int
	DomainMin, DomainMax float64

	// Optional
	ValueField string
	Method     string
}

func DefaultDepositWrapper() *DepositWrapper {
	con := DepositConfig{}
	con.DomainMin = -0.5
	con.DomainMax = 0.5
	con.ValueField = "vx"
	con.Method = "TriLinear"
	return &DepositWrapper{con}
}

func (con *DepositConfig) ValidCells() bool {
	return con.Cells >= 2
}
func (con *DepositConfig) ValidDomain() bool {
	return con.DomainMax > con.DomainMin
}
func (con *DepositConfig) ValidValueField() bool {
	for _, name := range SnapshotFields {
		if name == con.ValueField {
			return true
		}
	}
	return false
}
func (con *DepositConfig) ValidMethod() bool {
	method := strings.ToLower(con.Method)
	return method == "trilinear" || method == "ngp"
}

type FilterConfig struct {
	SharedConfig

	// Required
	StartIndex, EndIndex int

	// Optional
	Brightness               float64
	Contrast, ContrastOffset float64
	TintR, TintG, TintB      int
	TintWeight               float64
	Saturation               float64
}

func DefaultFilterWrapper() *FilterWrapper {
	con := FilterConfig{}
	con.EndIndex = -1
	con.Brightness = 1.1
	con.Contrast = 2.2
	con.ContrastOffset = -70
	con.TintR, con.TintG, con.TintB = 0, 80, 30
	con.TintWeight = 0.25
	con.Saturation = 0.85
	return &FilterWrapper{con}
}

func (con *FilterConfig) ValidIndexRange() bool {
	return con.StartIndex >= 0 && con.EndIndex > con.StartIndex
}
func (con *FilterConfig) ValidTint() bool {
	for _, c := range []int{con.TintR, con.TintG, con.TintB} {
		if c < 0 || c > 255 {
			return false
		}
	}
	return con.TintWeight >= 0
}

type DepositWrapper struct {
	Deposit DepositConfig
}

type FilterWrapper struct {
	Filter FilterConfig
}
