//   This project is the class information backend: homework and assessment notices, the weekly timetable and school meals.
//   Class Info Copyright (C) 2025 Class Info contributors
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package scheduler runs named jobs on fixed intervals in the background.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Job is one periodic task. A failed run is logged and only retried on the
// next tick.
type Job struct {
	Name      string
	Interval  time.Duration
	Immediate bool
	Run       func(ctx context.Context) error
}

// Scheduler owns the job goroutines.
type Scheduler struct {
	jobs   []Job
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// New creates a scheduler for jobs; nothing runs until Start.
func New(jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs:   jobs,
		stopCh: make(chan struct{}),
	}
}

// Start launches one goroutine per job.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		if job.Interval <= 0 || job.Run == nil {
			log.Warn().Str("job", job.Name).Msg("skipping job without interval or run function")
			continue
		}
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.loop(ctx, job)
		}(job)
	}
	log.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
}

// Stop signals every job loop and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	if job.Immediate {
		s.run(ctx, job)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.run(ctx, job)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name).Msg("scheduled job failed")
		return
	}
	log.Debug().Str("job", job.Name).Dur("duration_ms", time.Since(start)).Msg("scheduled job done")
}
