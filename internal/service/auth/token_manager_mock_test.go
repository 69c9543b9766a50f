package auth

import (
	"sync"

	"github.com/google/uuid"
)

var _ tokenManager = &tokenManagerMock{}

type tokenManagerMock struct {
	GenerateTokenFunc func(userID uuid.UUID, email string) (string, error)
	ValidateTokenFunc func(token string) (uuid.UUID, string, error)

	calls struct {
		GenerateToken []struct {
			UserID uuid.UUID
			Email  string
		}
		ValidateToken []struct {
			Token string
		}
	}
	lockGenerateToken sync.RWMutex
	lockValidateToken sync.RWMutex
}

func (mock *tokenManagerMock) GenerateToken(userID uuid.UUID, email string) (string, error) {
	if mock.GenerateTokenFunc == nil {
		panic("tokenManagerMock.GenerateTokenFunc: method is nil but tokenManager.GenerateToken was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Email  string
	}{UserID: userID, Email: email}
	mock.lockGenerateToken.Lock()
	mock.calls.GenerateToken = append(mock.calls.GenerateToken, callInfo)
	mock.lockGenerateToken.Unlock()
	return mock.GenerateTokenFunc(userID, email)
}

func (mock *tokenManagerMock) GenerateTokenCalls() []struct {
	UserID uuid.UUID
	Email  string
} {
	mock.lockGenerateToken.RLock()
	calls := mock.calls.GenerateToken
	mock.lockGenerateToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) ValidateToken(token string) (uuid.UUID, string, error) {
	if mock.ValidateTokenFunc == nil {
		panic("tokenManagerMock.ValidateTokenFunc: method is nil but tokenManager.ValidateToken was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidateToken.Lock()
	mock.calls.ValidateToken = append(mock.calls.ValidateToken, callInfo)
	mock.lockValidateToken.Unlock()
	return mock.ValidateTokenFunc(token)
}

func (mock *tokenManagerMock) ValidateTokenCalls() []struct {
	Token string
} {
	mock.lockValidateToken.RLock()
	calls := mock.calls.ValidateToken
	mock.lockValidateToken.RUnlock()
	return calls
}
