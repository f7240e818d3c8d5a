package services

import (
	"context"
	"sync"
	"time"

	"github.com/multiplewords/studio-cli/internal/core/domain"
	"github.com/multiplewords/studio-cli/internal/core/ports/driven"
	"github.com/multiplewords/studio-cli/internal/core/ports/driving"
	"github.com/multiplewords/studio-cli/internal/logger"
)

var _ driving.EntitlementMonitor = (*EntitlementMonitor)(nil)

// fetchEntitlement takes one snapshot of the user's entitlement. The
// premium and credits endpoints are independent, so both requests run
// concurrently and the slower one bounds the latency.
func fetchEntitlement(ctx context.Context, client driven.EntitlementClient, userID string) (domain.Entitlement, error) {
	var (
		wg         sync.WaitGroup
		premium    bool
		credits    int
		premiumErr error
		creditsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		premium, premiumErr = client.PremiumStatus(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		credits, creditsErr = client.CreditsRemaining(ctx, userID)
	}()
	wg.Wait()

	if premiumErr != nil {
		return domain.Entitlement{}, premiumErr
	}
	if creditsErr != nil {
		return domain.Entitlement{}, creditsErr
	}
	return domain.Entitlement{Premium: premium, Credits: credits}, nil
}

// EntitlementMonitor periodically refreshes the user's premium status
// and credit balance while a session is active, publishing each state
// change to subscribers.
type EntitlementMonitor struct {
	client driven.EntitlementClient
	auth   driving.AuthService

	interval time.Duration

	mu      sync.Mutex
	state   domain.EntitlementState
	stopCh  chan struct{}
	doneCh  chan struct{}
	refresh chan struct{}
	updates chan domain.EntitlementState
}

// NewEntitlementMonitor creates a monitor polling at interval; zero
// selects the configured default.
func NewEntitlementMonitor(client driven.EntitlementClient, auth driving.AuthService, interval time.Duration) *EntitlementMonitor {
	if interval <= 0 {
		interval = domain.DefaultAppSettings().Polling.EntitlementInterval
	}
	return &EntitlementMonitor{
		client:   client,
		auth:     auth,
		interval: interval,
		state:    domain.EntitlementState{Status: domain.EntitlementSignedOut},
		refresh:  make(chan struct{}, 1),
		updates:  make(chan domain.EntitlementState, 1),
	}
}

// Start launches the polling loop. It polls immediately, then on the
// configured cadence. Calling Start on a running monitor is a no-op.
func (m *EntitlementMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.stopCh != nil {
		m.mu.Unlock()
		return
	}
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	m.stopCh = stopCh
	m.doneCh = doneCh
	m.mu.Unlock()

	go m.loop(ctx, stopCh, doneCh)
}

// Stop halts the polling loop and waits for the in-flight tick to
// finish. Idempotent.
func (m *EntitlementMonitor) Stop() {
	m.mu.Lock()
	stopCh := m.stopCh
	doneCh := m.doneCh
	m.stopCh = nil
	m.doneCh = nil
	m.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}

// Refresh requests an immediate out-of-band poll. Coalesces when a
// request is already pending; no-op when the monitor is stopped.
func (m *EntitlementMonitor) Refresh() {
	select {
	case m.refresh <- struct{}{}:
	default:
	}
}

// State returns the most recent entitlement snapshot.
func (m *EntitlementMonitor) State() domain.EntitlementState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Updates returns the channel carrying state changes. The channel is
// never closed; the latest state is kept when the consumer lags.
func (m *EntitlementMonitor) Updates() <-chan domain.EntitlementState {
	return m.updates
}

func (m *EntitlementMonitor) loop(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.poll(ctx)
	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll(ctx)
		case <-m.refresh:
			m.poll(ctx)
		}
	}
}

// poll takes one snapshot and publishes it. Transient fetch failures
// surface as an Error state and are retried on the next tick.
func (m *EntitlementMonitor) poll(ctx context.Context) {
	var next domain.EntitlementState

	switch {
	case !m.auth.HasSession():
		next = domain.EntitlementState{Status: domain.EntitlementSignedOut}
	case m.auth.UserID() == "":
		// A session without a user id means the identity lookup
		// failed; it is distinct from being signed out.
		next = domain.EntitlementState{Status: domain.EntitlementUserIDMissing}
	default:
		ent, err := fetchEntitlement(ctx, m.client, m.auth.UserID())
		if err != nil {
			logger.Warn("entitlement poll failed: %v", err)
			next = domain.EntitlementState{Status: domain.EntitlementError}
		} else {
			next = domain.EntitlementState{Status: domain.EntitlementReady, Entitlement: ent}
		}
	}

	m.publish(next)
}

func (m *EntitlementMonitor) publish(next domain.EntitlementState) {
	m.mu.Lock()
	changed := m.state != next
	m.state = next
	m.mu.Unlock()

	if !changed {
		return
	}
	// Keep only the latest state when the consumer is behind.
	select {
	case m.updates <- next:
	default:
		select {
		case <-m.updates:
		default:
		}
		select {
		case m.updates <- next:
		default:
		}
	}
}
