// Package preload keeps the caches of configured hot courses warm so the
// gadget's first visitor does not pay the upstream round trip.
package preload

import (
	"context"
	"odh/internal/preload/interfaces"
	"odh/internal/providers"
	"odh/internal/services"
	"odh/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.EnrichmentServiceInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	if !s.enabled() {
		s.logger.Infof(providers.TypeApp, "Preload disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Preload.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.warmAll()
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Warm runs one preload pass synchronously; called once at startup.
func (s *Scheduler) Warm() error {
	if !s.enabled() {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	s.warmAll()
	return nil
}

func (s *Scheduler) warmAll() {
	ctx := context.Background()
	for _, slug := range s.config.Preload.Courses {
		school, title, err := services.SplitSlug(slug)
		if err != nil {
			s.logger.Warnf(providers.TypeApp, "Preload skipping %q: %s", slug, err)
			continue
		}
		// Enriched details pull both the metadata and the roster into cache.
		if _, err := s.service.GetCourseDetails(ctx, school, title, true); err != nil {
			s.logger.Warnf(providers.TypeApp, "Preload of %s failed: %s", slug, err)
			continue
		}
		s.logger.Debugf(providers.TypeApp, "Preloaded course %s", slug)
	}
}

func (s *Scheduler) enabled() bool {
	return s.config.Preload.Enabled && len(s.config.Preload.Courses) > 0 && s.config.Preload.Interval > 0
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.EnrichmentServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
