package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/studio-matra/portfolio-backend/internal/portfolio"
)

// Scheduler periodically rebuilds the catalog from the media host so the
// record store tracks folders uploaded outside the admin UI.
type Scheduler struct {
	svc  *portfolio.Service
	spec string
	cron *cron.Cron
}

func NewScheduler(svc *portfolio.Service, spec string) *Scheduler {
	return &Scheduler{svc: svc, spec: spec}
}

// Start registers the rebuild job. An empty spec disables scheduling.
func (s *Scheduler) Start() {
	if s.spec == "" {
		return
	}

	c := cron.New()
	_, err := c.AddFunc(s.spec, s.runRebuild)
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Printf("Cron scheduler started (catalog rebuild on %q)", s.spec)
	c.Start()
	s.cron = c
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) runRebuild() {
	log.Println("Scheduled catalog rebuild started...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cat, err := s.svc.RebuildCatalog(ctx)
	if err != nil {
		log.Printf("Catalog rebuild failed: %v", err)
		return
	}

	log.Printf("Catalog rebuild completed: %d locations, %d projects", len(cat.Locations), len(cat.Projects))
}
