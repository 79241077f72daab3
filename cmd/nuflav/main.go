package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/sgarrel/nuflav/internal/config"
	"github.com/sgarrel/nuflav/internal/initcond"
	"github.com/sgarrel/nuflav/internal/lyapunov"
	"github.com/sgarrel/nuflav/internal/par"
	"github.com/sgarrel/nuflav/internal/particles"
	"github.com/sgarrel/nuflav/internal/sphere"
	"github.com/sgarrel/nuflav/internal/tui"
	"github.com/sgarrel/nuflav/internal/viz"
)

var (
	configFile string
	preset     string
	seed       int64
	nphi       int
	cycles     int
	watch      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nuflav",
		Short: "neutrino flavor-transport initial conditions and perturbation analysis",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "initialize a particle ensemble and report it",
		RunE:  runInit,
	}

	dirCmd := &cobra.Command{
		Use:   "directions",
		Short: "inspect the uniform sphere direction set",
		RunE:  runDirections,
	}
	dirCmd.Flags().IntVar(&nphi, "nphi", config.DefaultNPhiEquator, "directions at the equator")

	lyapCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "run perturb/measure/renormalize cycles on an ensemble",
		RunE:  runLyapunov,
	}
	lyapCmd.Flags().IntVar(&cycles, "cycles", 32, "number of perturbation cycles")
	lyapCmd.Flags().BoolVar(&watch, "watch", false, "live terminal view")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, dirCmd, lyapCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	default:
		cfg = config.DefaultConfig()
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func initialize(cfg *config.Config) (*particles.Container, *initcond.Summary, error) {
	prob, err := cfg.Problem()
	if err != nil {
		return nil, nil, err
	}

	g := cfg.Geometry()
	c := particles.NewContainer(g.Tiles(cfg.Tiles))
	ids := particles.NewIDAllocator()
	summary, err := initcond.InitParticles(c, g, prob, cfg.InitOptions(), ids, par.Local{})
	if err != nil {
		return nil, nil, err
	}
	return c, summary, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	prob, err := cfg.Problem()
	if err != nil {
		return err
	}

	c, summary, err := initialize(cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.Header.Render("nuflav run"))
	fmt.Println(viz.Metric("test problem", prob.Name()))
	fmt.Println(viz.Metric("directions", fmt.Sprintf("%d (nphi_equator=%d)", summary.NumDirections, cfg.NPhiEquator)))
	fmt.Println(viz.Metric("particles", fmt.Sprintf("%d", summary.NumParticles)))
	fmt.Println(viz.Metric("min energy", fmt.Sprintf("%.6e erg", summary.MinEnergy)))

	totN, totNbar := 0.0, 0.0
	c.ForEach(func(p *particles.Particle) {
		totN += p.N
		totNbar += p.Nbar
	})
	fmt.Println(viz.Metric("total N", fmt.Sprintf("%.6e", totN)))
	fmt.Println(viz.Metric("total Nbar", fmt.Sprintf("%.6e", totNbar)))
	return nil
}

func runDirections(cmd *cobra.Command, args []string) error {
	dirs := sphere.Uniform(nphi)

	fmt.Println(viz.Header.Render("uniform sphere directions"))
	fmt.Println(viz.Metric("nphi_equator", fmt.Sprintf("%d", nphi)))
	fmt.Println(viz.Metric("directions", fmt.Sprintf("%d", len(dirs))))

	// Sorted z components show the latitude-ring structure.
	uz := make([]float64, len(dirs))
	for i, d := range dirs {
		uz[i] = d[2]
	}
	sort.Float64s(uz)
	fmt.Println()
	fmt.Println(asciigraph.Plot(uz, asciigraph.Height(12), asciigraph.Caption("direction z components, sorted")))
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lyCfg, err := cfg.LyapunovOptions()
	if err != nil {
		return err
	}

	cur, _, err := initialize(cfg)
	if err != nil {
		return err
	}
	ref := cur.Clone()

	if watch {
		return tui.Run(cur, ref, lyCfg, cfg.Seed)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	history := make([]float64, 0, cycles)

	for i := 0; i < cycles; i++ {
		lyapunov.Perturb(cur, lyCfg.Amplitude, rng)
		d, rep := lyapunov.Distance(cur, ref, lyCfg.Match)
		history = append(history, d)

		rrep, err := lyapunov.Renormalize(cur, ref, d, lyCfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, viz.Warn.Render(err.Error()))
			continue
		}
		for _, msg := range append(rep.Messages, rrep.Messages...) {
			fmt.Fprintln(os.Stderr, viz.Warn.Render(msg))
		}
	}

	fmt.Println(viz.Header.Render("lyapunov cycles"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "cycles\t%d\n", cycles)
	fmt.Fprintf(w, "particles\t%d\n", cur.TotalParticles())
	fmt.Fprintf(w, "amplitude\t%.3e\n", lyCfg.Amplitude)
	fmt.Fprintf(w, "final distance\t%.6e\n", history[len(history)-1])
	w.Flush()
	fmt.Println()
	fmt.Println(asciigraph.Plot(history, asciigraph.Height(10), asciigraph.Caption("ensemble distance per cycle")))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(viz.MetricValue.Render(name), viz.Subtle.Render(fmt.Sprintf("simulation_type=%d", config.GetPreset(name).SimulationType)))
	}
	return nil
}
