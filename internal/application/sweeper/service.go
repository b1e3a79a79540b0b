package sweeper

import (
	"context"
	"sync"
	"time"

	accessUC "kursly/internal/application/access/usecases"
	subscriptionUC "kursly/internal/application/subscription/usecases"
	"kursly/internal/infrastructure/telegram"
	"kursly/internal/shared/goroutine"
	"kursly/internal/shared/logger"
)

// Notifier sends expiry notices to users.
type Notifier interface {
	SendMessage(chatID int64, text string) error
}

// Service runs the periodic expiry sweep. Each tick deactivates lapsed
// subscriptions, then notifies and removes the affected users. Side effects
// are best-effort: a blocked bot or a failed removal never rolls back the
// deactivation, and one user's failure never skips the rest.
type Service struct {
	sweep      *subscriptionUC.SweepExpiredUseCase
	resolver   *subscriptionUC.ResolveEntitlementUseCase
	revoke     *accessUC.RevokeGroupAccessUseCase
	notifier   Notifier
	expiryText string
	interval   time.Duration
	logger     logger.Interface
	stopChan   chan struct{}
	wg         sync.WaitGroup
	isRunning  bool
	runningMu  sync.Mutex
}

// NewService creates a new sweeper service.
func NewService(
	sweep *subscriptionUC.SweepExpiredUseCase,
	resolver *subscriptionUC.ResolveEntitlementUseCase,
	revoke *accessUC.RevokeGroupAccessUseCase,
	notifier Notifier,
	expiryText string,
	interval time.Duration,
	logger logger.Interface,
) *Service {
	return &Service{
		sweep:      sweep,
		resolver:   resolver,
		revoke:     revoke,
		notifier:   notifier,
		expiryText: expiryText,
		interval:   interval,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start launches the sweep loop. One sweep runs immediately so a restart
// never extends lapsed access by a full interval.
func (s *Service) Start(ctx context.Context) {
	s.runningMu.Lock()
	if s.isRunning {
		s.runningMu.Unlock()
		return
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.runningMu.Unlock()

	s.logger.Infow("starting subscription sweeper", "interval", s.interval)

	s.wg.Add(1)
	goroutine.SafeGo(s.logger, "subscription-sweeper", func() {
		defer s.wg.Done()

		s.runSweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.runSweep(ctx)
			}
		}
	})
}

// Stop stops the sweep loop and waits for an in-flight sweep to finish.
func (s *Service) Stop() {
	s.runningMu.Lock()
	if !s.isRunning {
		s.runningMu.Unlock()
		return
	}
	s.isRunning = false
	s.runningMu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	s.logger.Infow("subscription sweeper stopped")
}

func (s *Service) runSweep(ctx context.Context) {
	expired, err := s.sweep.Execute(ctx)
	if err != nil {
		s.logger.Errorw("sweep failed", "error", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	// A user can appear in several expired rows; handle each user once.
	seen := make(map[int64]bool, len(expired))
	for _, sub := range expired {
		userID := sub.UserID()
		if seen[userID] {
			continue
		}
		seen[userID] = true
		s.handleLapsedUser(ctx, userID)
	}
}

// handleLapsedUser removes a user whose subscription just expired, unless a
// stacked subscription still grants access.
func (s *Service) handleLapsedUser(ctx context.Context, userID int64) {
	current, err := s.resolver.Execute(ctx, userID)
	if err != nil {
		s.logger.Errorw("entitlement recheck failed during sweep", "user_id", userID, "error", err)
		// Fail closed for the group, but without the recheck we cannot tell;
		// proceed with revocation so lapsed access never lingers.
	} else if current != nil {
		s.logger.Debugw("user still entitled through another subscription, keeping access",
			"user_id", userID,
			"subscription_id", current.ID(),
		)
		return
	}

	if err := s.notifier.SendMessage(userID, s.expiryText); err != nil {
		if telegram.IsBotBlocked(err) {
			s.logger.Debugw("expiry notice not delivered, bot blocked", "user_id", userID)
		} else {
			s.logger.Warnw("failed to send expiry notice", "user_id", userID, "error", err)
		}
	}

	if err := s.revoke.Execute(ctx, userID); err != nil {
		s.logger.Errorw("failed to revoke group access", "user_id", userID, "error", err)
	}
}
