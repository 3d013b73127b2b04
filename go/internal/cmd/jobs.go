package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is a scheduled task
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

type jobFunc struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

func (j jobFunc) Name() string                  { return j.name }
func (j jobFunc) Schedule() string              { return j.schedule }
func (j jobFunc) Run(ctx context.Context) error { return j.run(ctx) }

const jobTimeout = 2 * time.Minute

func setupJobs(ctx context.Context, services *Services, config *Config) (*cron.Cron, error) {
	c := cron.New()

	jobs := []Job{
		jobFunc{
			name:     "send_reminders",
			schedule: config.Reminders.Cron,
			run: func(ctx context.Context) error {
				_, err := services.RemindersApp.Send(ctx)
				return err
			},
		},
		jobFunc{
			name:     "reconcile_period",
			schedule: config.Reconcile.Cron,
			run: func(ctx context.Context) error {
				_, err := services.PeriodsApp.CurrentPeriod(ctx)
				return err
			},
		},
	}

	for _, job := range jobs {
		if job.Schedule() == "" {
			log.Info().Str("job", job.Name()).Msg("job disabled")
			continue
		}
		job := job
		_, err := c.AddFunc(job.Schedule(), func() { runJob(ctx, job) })
		if err != nil {
			return nil, fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
		}
		log.Info().Str("job", job.Name()).Str("schedule", job.Schedule()).Msg("job scheduled")
	}
	return c, nil
}

func runJob(ctx context.Context, job Job) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("job failed")
		return
	}
	log.Info().Str("job", job.Name()).Dur("duration", time.Since(start)).Msg("job completed")
}
