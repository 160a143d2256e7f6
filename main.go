// Command rcsbench runs random circuit sampling benchmarks on a state-vector
// simulator, keeps a dated history of the scores and renders it as a README or
// an interactive dashboard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/pflag"

	"qrcsbench/internal/config"
	"qrcsbench/internal/logger"
	"qrcsbench/internal/report"
	"qrcsbench/internal/results"
	"qrcsbench/rcs"
)

const usageText = `Usage: rcsbench <command> [flags]

Commands:
  run <depth> <qubits> [samples]   run one benchmark and print it as JSON
  readme                           regenerate the README from stored results
  daemon                           run benchmarks on a cron schedule
  tui                              interactive dashboard (default)
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if err := dispatch(os.Args[1:], cfg, log, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func dispatch(args []string, cfg *config.Config, log zerolog.Logger, stdout io.Writer) error {
	cmd := "tui"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "run":
		return runCommand(args, cfg, log, stdout, mem.VirtualMemory)
	case "readme":
		return readmeCommand(args, cfg, log)
	case "daemon":
		return daemonCommand(args, cfg, log)
	case "tui":
		return tuiCommand(cfg)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usageText)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usageText)
	}
}

func runCommand(args []string, cfg *config.Config, log zerolog.Logger, stdout io.Writer, probe memoryProbe) error {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	seedFlag := fs.String("seed", "", "seed of the random stream (random when empty)")
	qasmPath := fs.String("qasm", "", "write the circuit as OpenQASM 2.0 to this file")
	noSave := fs.Bool("no-save", false, "do not write the result to the results directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := parseRunArgs(fs.Args(), cfg.DefaultSamples)
	if err != nil {
		return err
	}
	seed, ok, err := parseSeed(*seedFlag)
	if err != nil {
		return err
	}
	if !ok {
		seed = rcs.NewSeed()
	}
	p.Seed = seed

	if err := checkMemory(p.Qubits, probe, log); err != nil {
		return err
	}

	log.Info().
		Int("depth", p.Depth).
		Int("qubits", p.Qubits).
		Int("samples", p.Samples).
		Uint64("seed", p.Seed).
		Msg("Running RCS benchmark")

	res, err := rcs.NewRunner(log).Run(p)
	if err != nil {
		return err
	}
	rec := results.NewRecord(res)

	data, err := results.Encode(rec)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(data); err != nil {
		return err
	}

	if *qasmPath != "" {
		qasm := rcs.ScheduleFor(p).ToQASM()
		if err := os.WriteFile(*qasmPath, []byte(qasm), 0o644); err != nil {
			return fmt.Errorf("failed to write circuit: %w", err)
		}
		log.Info().Str("path", *qasmPath).Msg("Circuit written")
	}

	store := results.NewStore(cfg.ResultsDir, log)
	if *noSave || !store.Exists() {
		return nil
	}
	if _, err := store.Save(rec); err != nil {
		log.Warn().Err(err).Msg("Could not save result")
	}
	return nil
}

func readmeCommand(args []string, cfg *config.Config, log zerolog.Logger) error {
	fs := pflag.NewFlagSet("readme", pflag.ContinueOnError)
	out := fs.StringP("out", "o", cfg.ReadmePath, "README file to write")
	dir := fs.String("results", cfg.ResultsDir, "results directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := results.NewStore(*dir, log)
	if !store.Exists() {
		return fmt.Errorf("results directory %s not found", *dir)
	}
	return writeReadme(store, *out, log)
}

// writeReadme regenerates path from every record in store.
func writeReadme(store *results.Store, path string, log zerolog.Logger) error {
	records, err := store.Load()
	if err != nil {
		return err
	}
	log.Info().Int("results", len(records)).Msg("Loaded benchmark results")

	if err := os.WriteFile(path, []byte(report.Markdown(records)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("README updated")
	return nil
}

func daemonCommand(args []string, cfg *config.Config, log zerolog.Logger) error {
	fs := pflag.NewFlagSet("daemon", pflag.ContinueOnError)
	spec := fs.String("schedule", cfg.Schedule.Spec, "cron expression or descriptor")
	depth := fs.Int("depth", cfg.Schedule.Depth, "circuit depth")
	qubits := fs.Int("qubits", cfg.Schedule.Qubits, "qubit count")
	samples := fs.Int("samples", cfg.DefaultSamples, "samples per run")
	now := fs.Bool("now", false, "also run once at startup")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := rcs.Params{Depth: *depth, Qubits: *qubits, Samples: *samples}
	if err := validateCLIParams(p); err != nil {
		return err
	}

	j := &benchmarkJob{
		runner:     rcs.NewRunner(log),
		store:      results.NewStore(cfg.ResultsDir, log),
		readmePath: cfg.ReadmePath,
		params:     p,
		probe:      mem.VirtualMemory,
		log:        log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runDaemon(ctx, *spec, j, *now, log)
}

func tuiCommand(cfg *config.Config) error {
	// The terminal belongs to the dashboard, so the runner logs nowhere.
	log := zerolog.Nop()
	m := initialModel(rcs.NewRunner(log), results.NewStore(cfg.ResultsDir, log), cfg.DefaultSamples)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
