package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thumbtack/onlineshop/internal/core/domain"
	"github.com/thumbtack/onlineshop/internal/pkg/metrics"
)

type memArchive struct {
	mu        sync.Mutex
	purchases []domain.Purchase
	fail      bool
}

func (a *memArchive) Append(_ context.Context, p domain.Purchase) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return errors.New("archive down")
	}
	a.purchases = append(a.purchases, p)
	return nil
}

func (a *memArchive) totalsOf(accountID int64) []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []int
	for _, p := range a.purchases {
		if p.AccountID == accountID {
			out = append(out, p.Total)
		}
	}
	return out
}

func TestDispatcher_DeliversInOrderPerAccount(t *testing.T) {
	archive := &memArchive{}
	d := NewDispatcher(3, archive, zerolog.Nop())
	d.Start(context.Background())

	for i := 1; i <= 20; i++ {
		d.Record(domain.Purchase{AccountID: int64(i % 4), Total: i})
	}
	d.Stop()

	require.Len(t, archive.purchases, 20)
	assert.Equal(t, []int{4, 8, 12, 16, 20}, archive.totalsOf(0))
	assert.Equal(t, []int{1, 5, 9, 13, 17}, archive.totalsOf(1))
}

func TestDispatcher_RecordAfterStopIsDropped(t *testing.T) {
	archive := &memArchive{}
	d := NewDispatcher(1, archive, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Record(domain.Purchase{AccountID: 1, Total: 10})
	assert.Empty(t, archive.purchases)
}

func TestDispatcher_ArchiveFailureDoesNotStopWorker(t *testing.T) {
	archive := &memArchive{fail: true}
	d := NewDispatcher(1, archive, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.Purchase{AccountID: 1, Total: 10})
	d.Record(domain.Purchase{AccountID: 1, Total: 20})
	d.Stop()

	assert.Empty(t, archive.purchases)
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &memArchive{}, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
	assert.Equal(t, 2, d.shardIndex(6))
}

func TestDispatcher_QueueDepthTracksBuffer(t *testing.T) {
	depth := metrics.JournalQueueDepth.WithLabelValues("0")
	base := testutil.ToFloat64(depth)

	archive := &memArchive{}
	d := NewDispatcher(1, archive, zerolog.Nop())

	// not started yet, so nothing drains the buffer
	for i := 0; i < channelBuffer+1; i++ {
		d.Record(domain.Purchase{AccountID: 1, Total: i})
	}
	assert.Equal(t, base+channelBuffer, testutil.ToFloat64(depth), "dropped purchase must not stay counted")

	d.Start(context.Background())
	d.Stop()

	require.Len(t, archive.purchases, channelBuffer)
	assert.Equal(t, base, testutil.ToFloat64(depth))
}
