package sync

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingonotes-backend/internal/domain"
)

var _ snapshotRepo = &snapshotRepoMock{}

type snapshotRepoMock struct {
	GetFunc          func(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error)
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error)
	SaveFunc         func(ctx context.Context, snapshot *domain.SyncSnapshot) error
	DeleteFunc       func(ctx context.Context, userID uuid.UUID) error

	calls struct {
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetForUpdate []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Save []struct {
			Ctx      context.Context
			Snapshot *domain.SyncSnapshot
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockGet          sync.RWMutex
	lockGetForUpdate sync.RWMutex
	lockSave         sync.RWMutex
	lockDelete       sync.RWMutex
}

func (mock *snapshotRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error) {
	if mock.GetFunc == nil {
		panic("snapshotRepoMock.GetFunc: method is nil but snapshotRepo.Get was just called")
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

func (mock *snapshotRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.SyncSnapshot, error) {
	if mock.GetForUpdateFunc == nil {
		panic("snapshotRepoMock.GetForUpdateFunc: method is nil but snapshotRepo.GetForUpdate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, callInfo)
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, userID)
}

func (mock *snapshotRepoMock) GetForUpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetForUpdate.RLock()
	calls := mock.calls.GetForUpdate
	mock.lockGetForUpdate.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) Save(ctx context.Context, snapshot *domain.SyncSnapshot) error {
	if mock.SaveFunc == nil {
		panic("snapshotRepoMock.SaveFunc: method is nil but snapshotRepo.Save was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Snapshot *domain.SyncSnapshot
	}{Ctx: ctx, Snapshot: snapshot}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, snapshot)
}

func (mock *snapshotRepoMock) SaveCalls() []struct {
	Ctx      context.Context
	Snapshot *domain.SyncSnapshot
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *snapshotRepoMock) Delete(ctx context.Context, userID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("snapshotRepoMock.DeleteFunc: method is nil but snapshotRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID)
}

func (mock *snapshotRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
