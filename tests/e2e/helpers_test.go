//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres"
	subrepo "github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres/subscription"
	"github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres/syncdata"
	"github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/lingonotes-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/lingonotes-backend/internal/adapter/provider/llm"
	authpkg "github.com/heartmarshall/lingonotes-backend/internal/auth"
	"github.com/heartmarshall/lingonotes-backend/internal/domain"
	authsvc "github.com/heartmarshall/lingonotes-backend/internal/service/auth"
	subsvc "github.com/heartmarshall/lingonotes-backend/internal/service/subscription"
	syncsvc "github.com/heartmarshall/lingonotes-backend/internal/service/sync"
	translatesvc "github.com/heartmarshall/lingonotes-backend/internal/service/translate"
	"github.com/heartmarshall/lingonotes-backend/internal/transport/middleware"
	"github.com/heartmarshall/lingonotes-backend/internal/transport/rest"
)

// stubVerifier accepts any token of the form "ok:<subject>:<email>" and
// rejects everything else, standing in for the Google and Apple issuers.
type stubVerifier struct{}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*authpkg.Identity, error) {
	parts := strings.SplitN(idToken, ":", 3)
	if len(parts) != 3 || parts[0] != "ok" {
		return nil, fmt.Errorf("stub: invalid id token: %w", domain.ErrUnauthorized)
	}
	return &authpkg.Identity{ProviderID: parts[1], Email: parts[2]}, nil
}

// stubTranslator answers without calling a real LLM.
type stubTranslator struct{}

func (s *stubTranslator) Translate(_ context.Context, text string, _, _ domain.LanguageCode) (string, error) {
	return "translated:" + text, nil
}

func (s *stubTranslator) Suggest(_ context.Context, sentence string, _ domain.LanguageCode) (*llm.Suggestion, error) {
	return &llm.Suggestion{
		Translation:      "translated:" + sentence,
		GrammarNote:      "a note",
		SimilarSentences: []string{"one", "two"},
	}, nil
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

type testServer struct {
	URL    string
	Client *http.Client
}

// setupTestServer bootstraps the full application stack backed by a
// real PostgreSQL container (shared via testhelper). Identity and LLM
// providers are stubbed; everything else is the production wiring.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t: t}, nil))

	users := userrepo.New(pool)
	subscriptions := subrepo.New(pool)
	snapshots := syncdata.New(pool)
	txm := postgres.NewTxManager(pool)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", time.Hour)

	verifier := &stubVerifier{}
	authService := authsvc.NewService(logger, users, verifier, verifier, jwtMgr)
	subscriptionService := subsvc.NewService(logger, subscriptions, true)
	syncService := syncsvc.NewService(logger, snapshots, txm)
	translateService := translatesvc.NewService(logger, &stubTranslator{})

	router := rest.NewRouter(rest.Handlers{
		Auth:         rest.NewAuthHandler(authService, logger),
		Translate:    rest.NewTranslateHandler(translateService, logger),
		Sync:         rest.NewSyncHandler(syncService, logger),
		Subscription: rest.NewSubscriptionHandler(subscriptionService, logger),
		Health:       rest.NewHealthHandler(pool, "e2e"),
	}, rest.RouteGuards{
		RequireAuth:    middleware.RequireAuth(authService),
		RequirePremium: middleware.RequirePremium(subscriptionService),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
	}
}

// signIn exchanges a stub id token for a session token and user id.
func (ts *testServer) signIn(t *testing.T, subject, email string) (token, userID string) {
	t.Helper()

	body := ts.doJSON(t, http.MethodPost, "/auth/google", "",
		map[string]string{"idToken": fmt.Sprintf("ok:%s:%s", subject, email)},
		http.StatusOK)

	token, _ = body["token"].(string)
	require.NotEmpty(t, token)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "expected user object")
	userID, _ = user["id"].(string)
	require.NotEmpty(t, userID)
	return token, userID
}

// grantPremium marks the user premium via the dev receipt stub.
func (ts *testServer) grantPremium(t *testing.T, token string) {
	t.Helper()
	ts.doJSON(t, http.MethodPost, "/subscription/verify", token,
		map[string]string{"platform": "ios", "receipt": "dev-receipt"},
		http.StatusOK)
}

// doJSON performs one request and decodes the JSON response, asserting
// the status code.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any, wantStatus int) map[string]any {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, raw)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return decoded
}
