package alert

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"equipment-maintenance-backend/config"
	"equipment-maintenance-backend/internal/notification"
	"equipment-maintenance-backend/internal/store"
)

// Sweeper periodically evaluates the alert rules and pushes equipment-scoped
// alerts to subscribers. Sector alerts only appear on the alerts endpoint.
type Sweeper struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool
	suppressed *cache.Cache
}

// NewSweeper creates and initializes a new alert sweeper.
func NewSweeper(cfg *config.Config, s store.Store) *Sweeper {
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	suppress := time.Duration(cfg.Sweeper.SuppressSeconds) * time.Second

	return &Sweeper{
		cfg:        cfg,
		store:      s,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, s.DB(), &webpushOptions),
		suppressed: cache.New(suppress, 2*suppress),
	}
}

// Run starts the sweep process in a loop.
func (s *Sweeper) Run(ctx context.Context) {
	if !s.cfg.Sweeper.Enabled {
		log.Println("Alert sweeper is disabled. Not starting.")
		return
	}
	log.Println("Starting alert sweeper...")

	s.workerPool.Start(ctx)

	s.SweepOnce(ctx)

	timer := time.NewTimer(s.cfg.Sweeper.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Alert sweeper shutting down.")
			return
		case <-timer.C:
			s.SweepOnce(ctx)
			timer.Reset(s.cfg.Sweeper.Interval)
		}
	}
}

// SweepOnce performs a single evaluation round and dispatches notification
// jobs for alerts that were not already pushed within the suppression TTL.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		log.Printf("Error taking snapshot for alert sweep: %v", err)
		return
	}

	alerts := Evaluate(time.Now().UTC(), snap, s.cfg.Alerts)

	var dispatched int
	for _, a := range alerts {
		if a.EquipmentID == 0 {
			continue
		}

		key := a.Rule + ":" + strconv.FormatInt(a.EquipmentID, 10)
		if _, found := s.suppressed.Get(key); found {
			continue
		}
		s.suppressed.SetDefault(key, struct{}{})

		s.workerPool.Dispatch(notification.Job{
			EquipmentID: a.EquipmentID,
			Message:     a.Message,
		})
		dispatched++
	}

	if dispatched > 0 {
		log.Printf("Alert sweep finished: %d alerts evaluated, %d dispatched", len(alerts), dispatched)
	}
}
