package observer

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/goroutine"
	"github.com/motorline/goapi/base/metrics"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/bid"
)

type impl struct {
	auctionId domain.AuctionId
	fetcher   Fetcher
	interval  time.Duration
	met       metrics.Service

	mu   sync.RWMutex
	view View
	// pending holds our accepted bids not yet seen in a snapshot, keyed
	// by sequence. A snapshot containing the sequence retires the entry.
	pending map[int64]*bid.Bid
}

func New(cfg *ObserverCfg) Observer {
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	return &impl{
		auctionId: cfg.AuctionId,
		fetcher:   cfg.Fetcher,
		interval:  interval,
		met:       metrics.New("observer"),
		view:      View{AuctionId: cfg.AuctionId},
		pending:   map[int64]*bid.Bid{},
	}
}

func (im *impl) Start(c ctx.Ctx) (stop func()) {
	done := make(chan struct{})
	goroutine.RecoverableGo(func() {
		ticker := time.NewTicker(im.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := im.Refresh(c); err != nil {
					c.WithField("err", err).Warn("observer refresh failed")
				}
			}
		}
	})
	once := sync.Once{}
	return func() {
		once.Do(func() { close(done) })
	}
}

func (im *impl) Refresh(c ctx.Ctx) error {
	defer im.met.BumpTime("refresh.time").End()

	snap, err := im.fetcher.Snapshot(c, im.auctionId)
	if err != nil {
		im.met.BumpSum("refresh.err", 1)
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	im.view.Highest = snap.Highest
	im.view.History = snap.History
	im.view.RefreshedAt = snap.TakenAt

	for seq := range im.pending {
		if snapshotHasSequence(snap, seq) {
			delete(im.pending, seq)
		}
	}

	// The snapshot sets the baseline floor, then our unseen accepted bids
	// pull it back up. A poll raced against our own write must not lower
	// what we already know we bid.
	floor := decimal.Zero
	if snap.Highest != nil {
		floor = snap.Highest.AmountDecimal()
	}
	for _, p := range im.pending {
		if amt := p.AmountDecimal(); amt.GreaterThan(floor) {
			floor = amt
			im.view.Highest = p
		}
	}
	if floor.GreaterThan(im.view.SuggestedMin) {
		im.view.SuggestedMin = floor
	} else if len(im.pending) == 0 {
		// Every bid we placed is accounted for, so the snapshot is
		// authoritative and the floor may come back down after a
		// rejection-taught value turned out stale.
		im.view.SuggestedMin = floor
	}
	return nil
}

func (im *impl) View() View {
	im.mu.RLock()
	defer im.mu.RUnlock()

	v := im.view
	v.History = append([]*bid.Bid{}, im.view.History...)
	return v
}

func (im *impl) NoteAccepted(b *bid.Bid) {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.pending[b.Sequence] = b
	if im.view.Highest == nil || b.AmountDecimal().GreaterThan(im.view.Highest.AmountDecimal()) {
		im.view.Highest = b
	}
	if amt := b.AmountDecimal(); amt.GreaterThan(im.view.SuggestedMin) {
		im.view.SuggestedMin = amt
	}
}

func (im *impl) NoteRejection(err error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if tooLow, ok := domain.AsBidTooLow(err); ok {
		if tooLow.Floor.GreaterThan(im.view.SuggestedMin) {
			im.view.SuggestedMin = tooLow.Floor
		}
		im.met.BumpSum("rejection.tooLow", 1)
		return
	}
	if err == domain.ErrAuctionNotOpen {
		im.view.Terminal = true
		im.met.BumpSum("rejection.notOpen", 1)
	}
}

func snapshotHasSequence(snap *bid.Snapshot, seq int64) bool {
	for _, b := range snap.History {
		if b.Sequence == seq {
			return true
		}
	}
	return false
}
