package service

//go:generate mockgen -source=recorder.go -destination=mock/recorder.go -package=mock

import (
	"context"
	"sync"
	"time"

	"repurpose/backend/internal/logger"
	"repurpose/backend/internal/model"
	"repurpose/backend/internal/repository"
)

// DefaultRecordQueueSize bounds conversions waiting to be persisted.
const DefaultRecordQueueSize = 64

const recordTimeout = 10 * time.Second

// Recorder persists conversion snapshots. Record must not block and never fails the caller.
type Recorder interface {
	Record(c model.Conversion)
}

// NopRecorder is used when persistence is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(model.Conversion) {}

// AsyncRecorder writes conversions on a single background worker.
// A full queue drops the record with a warning.
type AsyncRecorder struct {
	repo     repository.ConversionRepository
	queue    chan model.Conversion
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewAsyncRecorder(repo repository.ConversionRepository, queueSize int) *AsyncRecorder {
	if queueSize <= 0 {
		queueSize = DefaultRecordQueueSize
	}
	return &AsyncRecorder{
		repo:   repo,
		queue:  make(chan model.Conversion, queueSize),
		stopCh: make(chan struct{}),
	}
}

func (r *AsyncRecorder) Start() {
	r.wg.Add(1)
	go r.run()
	logger.Info("recorder started", "module", "service", "action", "record", "resource", "conversion", "result", "ok", "queue_size", cap(r.queue))
}

// Stop persists everything already queued, then returns.
func (r *AsyncRecorder) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	r.wg.Wait()
	logger.Info("recorder stopped", "module", "service", "action", "record", "resource", "conversion", "result", "ok")
}

func (r *AsyncRecorder) Record(c model.Conversion) {
	select {
	case <-r.stopCh:
		logger.Warn("recorder stopped, conversion dropped", "module", "service", "action", "record", "resource", "conversion", "result", "dropped")
		return
	default:
	}

	select {
	case r.queue <- c:
	default:
		logger.Warn("record queue full, conversion dropped", "module", "service", "action", "record", "resource", "conversion", "result", "dropped", "canonical_url", c.CanonicalURL)
	}
}

func (r *AsyncRecorder) run() {
	defer r.wg.Done()

	for {
		select {
		case c := <-r.queue:
			r.persist(c)
		case <-r.stopCh:
			for {
				select {
				case c := <-r.queue:
					r.persist(c)
				default:
					return
				}
			}
		}
	}
}

func (r *AsyncRecorder) persist(c model.Conversion) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	saved, err := r.repo.Create(ctx, c)
	if err != nil {
		logger.Error("persist conversion", "module", "service", "action", "record", "resource", "conversion", "result", "failed", "error", err)
		return
	}
	logger.Debug("conversion persisted", "module", "service", "action", "record", "resource", "conversion", "result", "ok", "conversion_id", saved.ID)
}
