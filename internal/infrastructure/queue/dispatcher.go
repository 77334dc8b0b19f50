package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/core/ports"
	"github.com/thumbtack/onlineshop/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	appendTimeout  = 5 * time.Second
)

// Dispatcher delivers committed purchases to the archive in the background.
// Purchases of one account always land on the same worker, so they reach the
// archive in commit order.
type Dispatcher struct {
	workers []chan domain.Purchase
	archive ports.PurchaseArchive
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, archive ports.PurchaseArchive, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Purchase, numWorkers),
		archive: archive,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Purchase, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record queues a purchase without blocking. When the worker's buffer is full
// or the dispatcher is stopped the purchase is dropped and counted.
func (d *Dispatcher) Record(p domain.Purchase) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(p, "dispatcher stopped")
		return
	}

	idx := d.shardIndex(p.AccountID)
	depth := metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(idx))
	// counted before the send so the worker's Dec never runs first
	depth.Inc()
	select {
	case d.workers[idx] <- p:
	default:
		depth.Dec()
		d.drop(p, "journal queue full")
	}
}

// Stop closes the queues and waits until every queued purchase is delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps an account deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID int64) int {
	return int(uint64(accountID) % uint64(len(d.workers)))
}

func (d *Dispatcher) drop(p domain.Purchase, reason string) {
	metrics.JournalErrorsTotal.Inc()
	d.log.Warn().
		Int64("account_id", p.AccountID).
		Int("total", p.Total).
		Msg(reason)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Purchase) {
	defer d.wg.Done()
	depth := metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.deliver(ctx, id, p)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, p domain.Purchase) {
	ctx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	if err := d.archive.Append(ctx, p); err != nil {
		metrics.JournalErrorsTotal.Inc()
		d.log.Error().Err(err).
			Int64("account_id", p.AccountID).
			Int("worker_id", id).
			Msg("journal append failed")
	}
}
