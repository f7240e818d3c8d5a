package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
	"github.com/multiplewords/studio-cli/internal/core/ports/driving"
	"github.com/multiplewords/studio-cli/internal/logger"
)

var _ driving.PurchaseService = (*PurchaseService)(nil)
var _ driving.PurchaseWatch = (*purchaseWatch)(nil)

// PurchaseService opens the upgrade page and watches for the purchase
// to land on the account.
//
// The payment provider offers no completion callback, so the watcher
// records the entitlement before the purchase and polls until the
// balance or premium flag moves past that baseline.
type PurchaseService struct {
	client  driven.EntitlementClient
	auth    driving.AuthService
	browser driven.Browser
	monitor driving.EntitlementMonitor

	pricingURL string
	interval   time.Duration
	timeout    time.Duration
}

// NewPurchaseService creates a purchase service. Zero interval or
// timeout selects the configured defaults.
func NewPurchaseService(
	client driven.EntitlementClient,
	auth driving.AuthService,
	browser driven.Browser,
	monitor driving.EntitlementMonitor,
	pricingURL string,
	interval, timeout time.Duration,
) *PurchaseService {
	defaults := domain.DefaultAppSettings().Polling
	if interval <= 0 {
		interval = defaults.PurchaseInterval
	}
	if timeout <= 0 {
		timeout = defaults.PurchaseTimeout
	}
	return &PurchaseService{
		client:     client,
		auth:       auth,
		browser:    browser,
		monitor:    monitor,
		pricingURL: pricingURL,
		interval:   interval,
		timeout:    timeout,
	}
}

// BeginPurchase snapshots the current entitlement, opens the pricing
// page for the given plan and returns a watch that resolves when the
// purchase completes, the deadline passes, or the watch is cancelled.
func (s *PurchaseService) BeginPurchase(ctx context.Context, plan domain.PurchasePlan) (driving.PurchaseWatch, error) {
	if !s.auth.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	userID := s.auth.UserID()
	if userID == "" {
		return nil, domain.ErrUserIDLookupFailed
	}

	// The baseline must be read before the pricing page opens, or a
	// fast purchase could land inside the gap and go undetected.
	ent, err := fetchEntitlement(ctx, s.client, userID)
	if err != nil {
		return nil, fmt.Errorf("reading entitlement baseline: %w", err)
	}
	baseline := domain.PurchaseBaseline{Credits: ent.Credits, Premium: ent.Premium}

	if err := s.browser.OpenPage(fmt.Sprintf("%s/%s/%d", s.pricingURL, userID, plan)); err != nil {
		return nil, fmt.Errorf("opening pricing page: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w := &purchaseWatch{
		cancel:  cancel,
		outcome: make(chan domain.PurchaseOutcome, 1),
	}
	go s.watch(watchCtx, w, userID, baseline)
	return w, nil
}

// watch polls the entitlement until one terminal outcome is reached.
// Per-tick fetch errors are skipped; only the deadline or an observed
// delta resolves the watch.
func (s *PurchaseService) watch(ctx context.Context, w *purchaseWatch, userID string, baseline domain.PurchaseBaseline) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	deadline := time.NewTimer(s.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			w.resolve(domain.PurchaseOutcome{Kind: domain.PurchaseCancelled})
			return
		case <-deadline.C:
			w.resolve(domain.PurchaseOutcome{Kind: domain.PurchaseTimedOut})
			return
		case <-ticker.C:
			ent, err := fetchEntitlement(ctx, s.client, userID)
			if err != nil {
				logger.Debug("purchase check: %v", err)
				continue
			}
			// Premium activation wins when both moved: the credit
			// delta is subsumed by an unlimited plan.
			if !baseline.Premium && ent.Premium {
				w.resolve(domain.PurchaseOutcome{Kind: domain.PurchasePremiumActivated})
				s.monitor.Refresh()
				return
			}
			if ent.Credits > baseline.Credits {
				w.resolve(domain.PurchaseOutcome{
					Kind:         domain.PurchaseCreditsAdded,
					CreditsAdded: ent.Credits - baseline.Credits,
				})
				s.monitor.Refresh()
				return
			}
		}
	}
}

// purchaseWatch is the handle returned to the caller. Exactly one
// outcome is ever delivered.
type purchaseWatch struct {
	cancel  context.CancelFunc
	outcome chan domain.PurchaseOutcome

	once sync.Once
}

// Outcome returns the channel the single terminal outcome arrives on.
func (w *purchaseWatch) Outcome() <-chan domain.PurchaseOutcome {
	return w.outcome
}

// Cancel aborts the watch. Resolves as Cancelled unless a terminal
// outcome already landed.
func (w *purchaseWatch) Cancel() {
	w.cancel()
}

func (w *purchaseWatch) resolve(outcome domain.PurchaseOutcome) {
	w.once.Do(func() {
		w.outcome <- outcome
		close(w.outcome)
	})
}
