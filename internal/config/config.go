package config

import (
	"errors"
	"flag"
	"fmt"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	VisualRingSize = 8192

	// Analyzer parameters
	FFTSize         = 512
	BinCount        = FFTSize / 2
	SmoothingFactor = 0.8
	MinDecibels     = -100.0
	MaxDecibels     = -30.0
	SeekStep        = 5 // seconds

	// Widths below this get the sparse particle pools.
	DensityBreakpoint = 768

	// Stellar Field
	StarCountSparse = 300
	StarCountDense  = 800
	StarBinRange    = 128
	StarHueBase     = 200.0
	StarHueSpread   = 60.0
	StarFade        = 0.15

	// Ionized Sphere
	SpherePointsSparse = 300
	SpherePointsDense  = 600
	SphereFade         = 0.2
	JoltThreshold      = 0.65
	JoltGain           = 12.0
	JoltDecay          = 0.1
	JoltEpsilon        = 1e-3

	// Footer layout
	FooterHeight   = 72
	ProgressHeight = 10
	ProgressMargin = 20
)

// Options are the runtime settings accepted on the command line.
type Options struct {
	Width  int
	Height int
	Scene  int
	Seed   uint64
	File   string
}

// Parse reads Options from args (without the program name).
func Parse(args []string) (Options, error) {
	var o Options
	fs := flag.NewFlagSet("ionized", flag.ContinueOnError)
	fs.IntVar(&o.Width, "width", WindowWidth, "initial window width")
	fs.IntVar(&o.Height, "height", WindowHeight, "initial window height")
	fs.IntVar(&o.Scene, "scene", 0, "index of the scene shown first")
	fs.Uint64Var(&o.Seed, "seed", 0, "random seed for particle layout (0 = time based)")
	fs.StringVar(&o.File, "file", "", "audio file to play on startup")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

var ErrInvalidOption = errors.New("invalid option")

func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidOption, o.Width, o.Height)
	}
	if o.Scene < 0 {
		return fmt.Errorf("%w: scene index %d", ErrInvalidOption, o.Scene)
	}
	return nil
}
