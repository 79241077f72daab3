// Package config loads and saves the YAML configuration bundle consumed by
// the initializer and the Lyapunov toolkit.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sgarrel/nuflav/internal/geom"
	"github.com/sgarrel/nuflav/internal/initcond"
	"github.com/sgarrel/nuflav/internal/lyapunov"
	"github.com/sgarrel/nuflav/internal/sphere"
)

const (
	DefaultNumFlavors  = 2
	DefaultNPhiEquator = 16
	DefaultTiles       = 4
)

type Config struct {
	NumFlavors int `yaml:"num_flavors"`

	Cells  [3]int     `yaml:"cells"`
	ProbLo [3]float64 `yaml:"prob_lo"`
	ProbHi [3]float64 `yaml:"prob_hi"`
	Tiles  int        `yaml:"tiles"`

	NPPC        [3]int `yaml:"nppc"`
	NPhiEquator int    `yaml:"nphi_equator"`

	SimulationType int   `yaml:"simulation_type"`
	Seed           int64 `yaml:"seed"`

	KBeam    KBeamConfig    `yaml:"kbeam"`
	Random   RandomConfig   `yaml:"random"`
	Minerbo  MinerboConfig  `yaml:"minerbo"`
	Fourier  FourierConfig  `yaml:"fourier"`
	Gaussian GaussianConfig `yaml:"gaussian"`

	Lyapunov LyapunovConfig `yaml:"lyapunov"`
}

type KBeamConfig struct {
	WavelengthFraction float64 `yaml:"wavelength_fraction"`
	Amplitude          float64 `yaml:"amplitude"`
}

type RandomConfig struct {
	NDens      float64    `yaml:"ndens"`
	NDensBar   float64    `yaml:"ndens_bar"`
	FluxFac    float64    `yaml:"fluxfac"`
	FluxFacBar float64    `yaml:"fluxfac_bar"`
	FluxDir    [3]float64 `yaml:"flux_dir"`
	FluxDirBar [3]float64 `yaml:"flux_dir_bar"`
	Amplitude  float64    `yaml:"amplitude"`
}

type MinerboConfig struct {
	NDensE    float64    `yaml:"ndens_e"`
	NDensA    float64    `yaml:"ndens_a"`
	NDensX    float64    `yaml:"ndens_x"`
	FluxFacE  float64    `yaml:"fluxfac_e"`
	FluxFacA  float64    `yaml:"fluxfac_a"`
	FluxFacX  float64    `yaml:"fluxfac_x"`
	FluxDirE  [3]float64 `yaml:"flux_dir_e"`
	FluxDirA  [3]float64 `yaml:"flux_dir_a"`
	FluxDirX  [3]float64 `yaml:"flux_dir_x"`
	Amplitude float64    `yaml:"amplitude"`
}

type FourierConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	NumModes  int     `yaml:"num_modes"`
}

type GaussianConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Center    float64 `yaml:"center"`
	Width     float64 `yaml:"width"`
}

type LyapunovConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Match     string  `yaml:"match"`
}

func DefaultConfig() *Config {
	return &Config{
		NumFlavors:     DefaultNumFlavors,
		Cells:          [3]int{4, 4, 4},
		ProbLo:         [3]float64{0, 0, 0},
		ProbHi:         [3]float64{1, 1, 1},
		Tiles:          DefaultTiles,
		NPPC:           [3]int{1, 1, 1},
		NPhiEquator:    DefaultNPhiEquator,
		SimulationType: 0,
		KBeam:          KBeamConfig{WavelengthFraction: 1.0, Amplitude: 1e-6},
		Random: RandomConfig{
			NDens: 1e32, NDensBar: 1e32,
			FluxDir: [3]float64{0, 0, 1}, FluxDirBar: [3]float64{0, 0, -1},
			Amplitude: 1e-6,
		},
		Minerbo: MinerboConfig{
			NDensE: 1e32, NDensA: 0.8e32, NDensX: 0.5e32,
			FluxFacE: 0.1, FluxFacA: 0.1, FluxFacX: 0.1,
			FluxDirE: [3]float64{0, 0, 1}, FluxDirA: [3]float64{0, 0, 1}, FluxDirX: [3]float64{0, 0, 1},
			Amplitude: 1e-6,
		},
		Fourier:  FourierConfig{Amplitude: 1e-6, NumModes: 8},
		Gaussian: GaussianConfig{Amplitude: 1e-6, Center: 0.5, Width: 0.1},
		Lyapunov: LyapunovConfig{Amplitude: 1e-6, Match: "fields"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Geometry returns the grid geometry described by the config.
func (c *Config) Geometry() geom.Geometry {
	return geom.Geometry{Cells: c.Cells, ProbLo: c.ProbLo, ProbHi: c.ProbHi}
}

// InitOptions returns the sampling options for the initializer.
func (c *Config) InitOptions() initcond.Options {
	return initcond.Options{
		NumFlavors:  c.NumFlavors,
		NPPC:        c.NPPC,
		NPhiEquator: c.NPhiEquator,
		Seed:        c.Seed,
	}
}

// Problem builds the selected test problem. An unknown simulation type
// surfaces as initcond.ErrInvalidSimulationType.
func (c *Config) Problem() (initcond.TestProblem, error) {
	return initcond.FromID(c.SimulationType, initcond.CaseParams{
		KBeam: initcond.KBeamParams(c.KBeam),
		Random: initcond.RandomParams{
			NDens: c.Random.NDens, NDensBar: c.Random.NDensBar,
			FluxFac: c.Random.FluxFac, FluxFacBar: c.Random.FluxFacBar,
			FluxDir: sphere.Vec(c.Random.FluxDir), FluxDirBar: sphere.Vec(c.Random.FluxDirBar),
			Amplitude: c.Random.Amplitude,
		},
		Minerbo: initcond.MinerboParams{
			NDensE: c.Minerbo.NDensE, NDensA: c.Minerbo.NDensA, NDensX: c.Minerbo.NDensX,
			FluxFacE: c.Minerbo.FluxFacE, FluxFacA: c.Minerbo.FluxFacA, FluxFacX: c.Minerbo.FluxFacX,
			FluxDirE:  sphere.Vec(c.Minerbo.FluxDirE),
			FluxDirA:  sphere.Vec(c.Minerbo.FluxDirA),
			FluxDirX:  sphere.Vec(c.Minerbo.FluxDirX),
			Amplitude: c.Minerbo.Amplitude,
		},
		Fourier:  initcond.FourierParams(c.Fourier),
		Gaussian: initcond.GaussianParams(c.Gaussian),
	})
}

// LyapunovOptions returns the toolkit configuration. Unknown match modes
// are a configuration error.
func (c *Config) LyapunovOptions() (lyapunov.Config, error) {
	out := lyapunov.Config{Amplitude: c.Lyapunov.Amplitude}
	switch c.Lyapunov.Match {
	case "", "fields":
		out.Match = lyapunov.MatchByFields
	case "identity":
		out.Match = lyapunov.MatchByIdentity
	default:
		return out, fmt.Errorf("config: unknown lyapunov match mode %q", c.Lyapunov.Match)
	}
	return out, nil
}
