package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

var _ subscriptionRepo = &subscriptionRepoMock{}

type subscriptionRepoMock struct {
	GetFunc                func(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	UpsertFunc             func(ctx context.Context, sub *domain.Subscription) error
	DowngradeIfExpiredFunc func(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Upsert []struct {
			Ctx context.Context
			Sub *domain.Subscription
		}
		DowngradeIfExpired []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Now    time.Time
		}
	}
	lockGet                sync.RWMutex
	lockUpsert             sync.RWMutex
	lockDowngradeIfExpired sync.RWMutex
}

func (mock *subscriptionRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	if mock.GetFunc == nil {
		panic("subscriptionRepoMock.GetFunc: method is nil but subscriptionRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *subscriptionRepoMock) Upsert(ctx context.Context, sub *domain.Subscription) error {
	if mock.UpsertFunc == nil {
		panic("subscriptionRepoMock.UpsertFunc: method is nil but subscriptionRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Sub *domain.Subscription
	}{Ctx: ctx, Sub: sub}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, sub)
}

func (mock *subscriptionRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	Sub *domain.Subscription
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *subscriptionRepoMock) DowngradeIfExpired(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	if mock.DowngradeIfExpiredFunc == nil {
		panic("subscriptionRepoMock.DowngradeIfExpiredFunc: method is nil but subscriptionRepo.DowngradeIfExpired was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Now    time.Time
	}{Ctx: ctx, UserID: userID, Now: now}
	mock.lockDowngradeIfExpired.Lock()
	mock.calls.DowngradeIfExpired = append(mock.calls.DowngradeIfExpired, callInfo)
	mock.lockDowngradeIfExpired.Unlock()
	return mock.DowngradeIfExpiredFunc(ctx, userID, now)
}

func (mock *subscriptionRepoMock) DowngradeIfExpiredCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Now    time.Time
} {
	mock.lockDowngradeIfExpired.RLock()
	calls := mock.calls.DowngradeIfExpired
	mock.lockDowngradeIfExpired.RUnlock()
	return calls
}
