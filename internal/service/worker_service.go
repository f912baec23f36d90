package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WorkerService runs periodic maintenance. It currently sweeps overdue
// scheduled appointments into missed.
type WorkerService struct {
	appointments *AppointmentService
	interval     time.Duration
	log          *zap.Logger
}

func NewWorkerService(appointments *AppointmentService, interval time.Duration, log *zap.Logger) *WorkerService {
	return &WorkerService{
		appointments: appointments,
		interval:     interval,
		log:          log,
	}
}

// Start blocks until ctx is done. A non-positive interval disables the worker.
func (w *WorkerService) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Info("missed appointment sweeper disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("missed appointment sweeper started", zap.Duration("interval", w.interval))
	w.sweep()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("missed appointment sweeper stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *WorkerService) sweep() {
	n, err := w.appointments.SweepMissed()
	if err != nil {
		w.log.Error("failed to sweep missed appointments", zap.Error(err))
		return
	}
	if n > 0 {
		w.log.Info("marked appointments missed", zap.Int64("count", n))
	}
}
