// Package main is the metrosim command: a procedural metro ambience
// synthesizer with live playback, a demo sequence, and WAV rendering.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeff-barlow-spady/metrosim/config"
	"github.com/jeff-barlow-spady/metrosim/pkg/audio"
	"github.com/jeff-barlow-spady/metrosim/pkg/engine"
	"github.com/jeff-barlow-spady/metrosim/pkg/logger"
	"github.com/jeff-barlow-spady/metrosim/pkg/scenario"
	"github.com/jeff-barlow-spady/metrosim/pkg/synth"
	"github.com/jeff-barlow-spady/metrosim/pkg/ui"
)

var (
	flagDebug   bool
	flagSeed    int64
	flagMinutes float64
	flagSilent  bool
	flagOutput  string
)

func main() {
	root := &cobra.Command{
		Use:   "metrosim",
		Short: "Procedural metro/subway ambience synthesizer",
		Long: `metrosim synthesizes metro journey ambience - motor whine, rail
noise, door sequences, squealing curves - and adapts the sound to an
evolving simulated journey (speed, wear, temperature, weather).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setup()
		},
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	root.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "random seed (0 = time-based)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a live journey with dashboard and playback",
		RunE:  runJourney,
	}
	runCmd.Flags().Float64Var(&flagMinutes, "minutes", 0, "journey length in minutes (0 = from config)")
	runCmd.Flags().BoolVar(&flagSilent, "silent", false, "skip audio playback")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Play a short showcase of every sound feature",
		RunE:  runDemo,
	}
	demoCmd.Flags().BoolVar(&flagSilent, "silent", false, "skip audio playback")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a journey to a WAV file",
		RunE:  runRender,
	}
	renderCmd.Flags().Float64Var(&flagMinutes, "minutes", 0, "journey length in minutes (0 = from config)")
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output WAV path (default journey-<seed>.wav in the renders dir)")

	root.AddCommand(runCmd, demoCmd, renderCmd)

	if err := root.Execute(); err != nil {
		logger.Error(logger.CategoryApp, "%v", err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes logging for every command.
func setup() {
	logger.Initialize()
	logger.SuppressALSAWarnings(true)
	if flagDebug {
		logger.SetLevel(logger.LevelDebug)
	}

	if err := config.LoadConfig(); err != nil {
		logger.Warning(logger.CategoryApp, "Failed to load config, using defaults: %v", err)
		config.Current = config.DefaultConfig()
	}
}

// seed resolves the effective random seed: flag, then config, then clock.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if config.Current.Seed != 0 {
		return config.Current.Seed
	}
	return time.Now().UnixNano()
}

// minutes resolves the effective journey length.
func minutes() float64 {
	if flagMinutes > 0 {
		return flagMinutes
	}
	return config.Current.JourneyMinutes
}

// newSimulator builds a simulator with the configured journey context.
func newSimulator(s int64) (*scenario.Simulator, error) {
	sim, err := scenario.NewSimulator(config.Current.SampleRate, s)
	if err != nil {
		return nil, err
	}

	ctx := engine.DefaultContext()
	ctx.TrackWear = config.Current.TrackWear
	ctx.VehicleAge = config.Current.VehicleAge
	ctx.PassengerLoad = config.Current.PassengerLoad
	ctx.Weather = engine.Weather(config.Current.Weather)
	sim.SetContext(ctx)

	return sim, nil
}

func runJourney(cmd *cobra.Command, args []string) error {
	s := seed()
	logger.Info(logger.CategoryApp, "Starting journey (seed=%d)", s)

	sim, err := newSimulator(s)
	if err != nil {
		return err
	}

	var player *audio.Player
	if !flagSilent && !config.Current.SilentMode {
		player, err = audio.NewPlayer(config.Current.SampleRate)
		if err != nil {
			return err
		}
		defer player.Close()
	}

	dashboard := ui.NewTerminalUI()
	dashboard.Start()
	defer dashboard.Stop()

	// End the journey on quit key or signal.
	stop := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		select {
		case <-dashboard.QuitRequested():
		case <-sigChan:
		}
		close(stop)
	}()

	err = sim.RunJourney(minutes(), func(seg scenario.Segment) error {
		dashboard.SetStatus(ui.Status{
			Time:    seg.Time,
			Label:   seg.Label,
			Event:   seg.Event,
			Context: seg.Context,
			State:   seg.State,
		})
		if player == nil {
			// Pace in wall time so the dashboard still reads naturally.
			time.Sleep(time.Duration(float64(len(seg.Samples)) /
				float64(config.Current.SampleRate) * float64(time.Second)))
			return nil
		}
		return player.Play(synth.Gain(seg.Samples, config.Current.MasterVolume))
	}, stop)
	if err != nil {
		return fmt.Errorf("journey failed: %w", err)
	}

	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	s := seed()
	sim, err := newSimulator(s)
	if err != nil {
		return err
	}

	// The demo cruises at speed so motor and curve sounds are audible.
	ctx := sim.Context()
	ctx.Speed = 55
	sim.SetContext(ctx)

	var player *audio.Player
	if !flagSilent && !config.Current.SilentMode {
		player, err = audio.NewPlayer(config.Current.SampleRate)
		if err != nil {
			return err
		}
		defer player.Close()
	}

	pieces := []struct {
		name   string
		render func() ([]float64, error)
	}{
		{"Door closing with compressed air system", sim.DoorClosing},
		{"Electric motor acceleration", func() ([]float64, error) { return sim.Acceleration(2.5) }},
		{"Ambient travel with electric motors", func() ([]float64, error) { return sim.AmbientRumble(3.0) }},
		{"Sharp turn with screeching", sim.TurnScreech},
		{"Deceleration with air brakes", func() ([]float64, error) { return sim.Deceleration(2.5) }},
		{"Station stop - electric idle", func() ([]float64, error) { return sim.ElectricIdle(2.0) }},
	}

	for i, piece := range pieces {
		logger.Info(logger.CategoryApp, "%d. %s", i+1, piece.name)
		samples, err := piece.render()
		if err != nil {
			return fmt.Errorf("demo piece %q: %w", piece.name, err)
		}
		if player != nil {
			if err := player.Play(synth.Gain(samples, config.Current.MasterVolume)); err != nil {
				return fmt.Errorf("demo playback: %w", err)
			}
		}
	}

	logger.Info(logger.CategoryApp, "Demo complete")
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	s := seed()
	sim, err := newSimulator(s)
	if err != nil {
		return err
	}

	outPath := flagOutput
	if outPath == "" {
		outPath = filepath.Join(config.Current.OutputDir, fmt.Sprintf("journey-%d.wav", s))
	}

	logger.Info(logger.CategoryApp, "Rendering %.1f-minute journey to %s (seed=%d)",
		minutes(), outPath, s)

	var samples []float64
	err = sim.RunJourney(minutes(), func(seg scenario.Segment) error {
		samples = append(samples, seg.Samples...)
		return nil
	}, nil)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	synth.Gain(samples, config.Current.MasterVolume)
	if err := audio.SaveWav(samples, config.Current.SampleRate, outPath); err != nil {
		return err
	}

	logger.Info(logger.CategoryApp, "Wrote %d samples (%.1fs) to %s",
		len(samples), float64(len(samples))/float64(config.Current.SampleRate), outPath)
	return nil
}
