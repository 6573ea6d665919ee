package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/launchstack/benefits-api/internal/api/metrics"
	"github.com/launchstack/benefits-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ReviewScheduler routes claim reviews to a fixed set of workers using
// consistent hashing on the claim id. Each worker holds a task until its due
// time, then asks the review service to decide. Because every task carries
// the same review delay, per-shard processing stays FIFO.
type ReviewScheduler struct {
	workers []chan ports.ReviewTask
	service ports.ReviewService
	log     zerolog.Logger
}

// NewReviewScheduler creates a ReviewScheduler with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewReviewScheduler(numWorkers int, service ports.ReviewService, log zerolog.Logger) *ReviewScheduler {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &ReviewScheduler{
		workers: make([]chan ports.ReviewTask, numWorkers),
		service: service,
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan ports.ReviewTask, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// undecided tasks are recovered from the pending rescan on next startup.
func (s *ReviewScheduler) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
}

// Schedule hands a review task to the worker responsible for its claim id.
// The call is non-blocking up to channelBuffer capacity.
func (s *ReviewScheduler) Schedule(task ports.ReviewTask) {
	idx := s.shardIndex(task.ClaimID)
	s.workers[idx] <- task
	metrics.ReviewQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(s.workers[idx])))
}

// ScheduleBatch schedules multiple reviews preserving per-claim ordering.
func (s *ReviewScheduler) ScheduleBatch(tasks []ports.ReviewTask) {
	for _, t := range tasks {
		s.Schedule(t)
	}
}

// shardIndex maps a claim id deterministically to a worker index.
func (s *ReviewScheduler) shardIndex(claimID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(claimID))
	return int(h.Sum32()) % len(s.workers)
}

func (s *ReviewScheduler) runWorker(ctx context.Context, id int, ch <-chan ports.ReviewTask) {
	gauge := metrics.ReviewQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if !s.waitUntilDue(ctx, task.DueAt) {
				return
			}
			if err := s.service.Decide(ctx, task.ClaimID); err != nil {
				s.log.Error().Err(err).
					Str("claim_id", task.ClaimID).
					Int("worker_id", id).
					Msg("claim review failed")
			}
		}
	}
}

// waitUntilDue blocks until the due time passes or ctx is cancelled. Returns
// false on cancellation.
func (s *ReviewScheduler) waitUntilDue(ctx context.Context, due time.Time) bool {
	delay := time.Until(due)
	if delay <= 0 {
		return true
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
