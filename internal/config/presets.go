package config

// Presets are ready-to-run configurations for the canonical test problems.
// Each starts from DefaultConfig and overrides what the problem needs.
var Presets = map[string]*Config{
	"vacuum": preset(func(c *Config) {
		c.SimulationType = 0
		c.Cells = [3]int{1, 1, 1}
		c.ProbHi = [3]float64{1, 1, 1}
	}),
	"bipolar": preset(func(c *Config) {
		c.SimulationType = 1
		c.Cells = [3]int{1, 1, 1}
	}),
	"fast_flavor": preset(func(c *Config) {
		c.SimulationType = 2
		c.Cells = [3]int{1, 1, 1}
		c.NPhiEquator = 4
	}),
	"fast_flavor_k": preset(func(c *Config) {
		c.SimulationType = 3
		c.Cells = [3]int{1, 1, 32}
		c.ProbHi = [3]float64{1, 1, 8}
		c.KBeam = KBeamConfig{WavelengthFraction: 1.0, Amplitude: 1e-6}
	}),
	"fast_flavor_random": preset(func(c *Config) {
		c.SimulationType = 4
		c.Cells = [3]int{4, 4, 4}
	}),
	"minerbo": preset(func(c *Config) {
		c.SimulationType = 5
		c.Cells = [3]int{4, 4, 4}
		c.NPhiEquator = 16
	}),
	"fourier": preset(func(c *Config) {
		c.SimulationType = 6
		c.Cells = [3]int{1, 1, 64}
		c.ProbHi = [3]float64{1, 1, 64}
		c.Tiles = 1
	}),
	"gaussian": preset(func(c *Config) {
		c.SimulationType = 7
		c.Cells = [3]int{1, 1, 64}
		c.ProbHi = [3]float64{1, 1, 64}
		c.Tiles = 1
	}),
}

func preset(override func(*Config)) *Config {
	cfg := DefaultConfig()
	override(cfg)
	return cfg
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
