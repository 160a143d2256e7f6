package main

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"qrcsbench/internal/results"
	"qrcsbench/rcs"
)

// job is a unit of scheduled work.
type job interface {
	Run() error
	Name() string
}

// scheduler runs jobs on cron schedules.
type scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func newScheduler(log zerolog.Logger) *scheduler {
	return &scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

func (s *scheduler) start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

func (s *scheduler) stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// addJob registers j under a standard five-field cron expression or a
// descriptor such as "@daily" or "@every 6h".
func (s *scheduler) addJob(spec string, j job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.log.Debug().Str("job", j.Name()).Msg("Running job")
		if err := j.Run(); err != nil {
			s.log.Error().Err(err).Str("job", j.Name()).Msg("Job failed")
			return
		}
		s.log.Debug().Str("job", j.Name()).Msg("Job completed")
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	s.log.Info().Str("schedule", spec).Str("job", j.Name()).Msg("Job registered")
	return nil
}

// benchmarkJob runs one benchmark, stores it and refreshes the README.
type benchmarkJob struct {
	runner     *rcs.Runner
	store      *results.Store
	readmePath string
	params     rcs.Params
	probe      memoryProbe
	log        zerolog.Logger
}

func (j *benchmarkJob) Name() string { return "rcs-benchmark" }

func (j *benchmarkJob) Run() error {
	if err := checkMemory(j.params.Qubits, j.probe, j.log); err != nil {
		return err
	}
	p := j.params
	p.Seed = rcs.NewSeed()
	res, err := j.runner.Run(p)
	if err != nil {
		return err
	}
	if !j.store.Exists() {
		j.log.Warn().Str("dir", j.store.Dir()).Msg("Results directory missing, result not saved")
		return nil
	}
	if _, err := j.store.Save(results.NewRecord(res)); err != nil {
		return err
	}
	return writeReadme(j.store, j.readmePath, j.log)
}

// runDaemon blocks until ctx is done, running j on spec. When runNow is set the
// job also runs once immediately.
func runDaemon(ctx context.Context, spec string, j job, runNow bool, log zerolog.Logger) error {
	s := newScheduler(log)
	if err := s.addJob(spec, j); err != nil {
		return err
	}
	if runNow {
		if err := j.Run(); err != nil {
			log.Error().Err(err).Str("job", j.Name()).Msg("Initial run failed")
		}
	}
	s.start()
	<-ctx.Done()
	s.stop()
	return nil
}
