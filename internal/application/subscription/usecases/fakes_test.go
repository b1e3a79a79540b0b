package usecases

import (
	"context"
	"io"
	"log/slog"
	"time"

	"kursly/internal/domain/payment"
	"kursly/internal/domain/subscription"
	"kursly/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeSubscriptionRepo struct {
	created    []*subscription.Subscription
	active     *subscription.Subscription
	expired    []*subscription.Subscription
	createErr  error
	resolveErr error
	sweepErr   error
	nextID     uint
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	_ = sub.SetID(f.nextID)
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) GetByUserID(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	return f.created, nil
}

func (f *fakeSubscriptionRepo) ResolveActive(ctx context.Context, userID int64, now time.Time) (*subscription.Subscription, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.active, nil
}

func (f *fakeSubscriptionRepo) DeactivateExpired(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	if f.sweepErr != nil {
		return nil, f.sweepErr
	}
	out := f.expired
	f.expired = nil
	return out, nil
}

func (f *fakeSubscriptionRepo) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return int64(len(f.created)), nil
}

type fakePlanRepo struct {
	plans map[uint]*subscription.Plan
}

func newFakePlanRepo(plans ...*subscription.Plan) *fakePlanRepo {
	f := &fakePlanRepo{plans: make(map[uint]*subscription.Plan)}
	for _, p := range plans {
		f.plans[p.ID()] = p
	}
	return f
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *subscription.Plan) error {
	id := uint(len(f.plans) + 1)
	_ = plan.SetID(id)
	f.plans[id] = plan
	return nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	return f.plans[id], nil
}

func (f *fakePlanRepo) GetAllActive(ctx context.Context) ([]*subscription.Plan, error) {
	var out []*subscription.Plan
	for _, p := range f.plans {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Update(ctx context.Context, plan *subscription.Plan) error {
	f.plans[plan.ID()] = plan
	return nil
}

// fakeActivationStore mimics the all-or-nothing store contract: a failed
// write records neither the payment nor the subscription.
type fakeActivationStore struct {
	byCharge map[string]*payment.Payment
	created  []*subscription.Subscription
	writeErr error
	nextID   uint
}

func newFakeActivationStore() *fakeActivationStore {
	return &fakeActivationStore{byCharge: make(map[string]*payment.Payment)}
}

func (f *fakeActivationStore) CreateWithPayment(ctx context.Context, p *payment.Payment, sub *subscription.Subscription) error {
	if _, ok := f.byCharge[p.ChargeID()]; ok {
		return payment.ErrDuplicateCharge
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	f.nextID++
	_ = p.SetID(f.nextID)
	_ = sub.SetID(f.nextID)
	f.byCharge[p.ChargeID()] = p
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeActivationStore) hasCharge(chargeID string) bool {
	_, ok := f.byCharge[chargeID]
	return ok
}

func mustPlan(t interface{ Fatalf(string, ...any) }, name string, durationDays *int, price int64) *subscription.Plan {
	p, err := subscription.NewPlan(name, durationDays, price)
	if err != nil {
		t.Fatalf("failed to build plan: %v", err)
	}
	return p
}

func intPtr(v int) *int {
	return &v
}
