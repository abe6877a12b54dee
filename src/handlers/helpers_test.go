package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"bankweb/src/middleware"
	"bankweb/src/models"
	"bankweb/src/store"
	"bankweb/src/views"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// countingStore records how many store calls a handler made.
type countingStore struct {
	store.Store
	mu    sync.Mutex
	calls int
}

func (c *countingStore) hit() {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *countingStore) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *countingStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	c.hit()
	return c.Store.CreateUser(ctx, u)
}

func (c *countingStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	c.hit()
	return c.Store.GetUserByUsername(ctx, username)
}

func (c *countingStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	c.hit()
	return c.Store.GetUserByEmail(ctx, email)
}

func (c *countingStore) UpdateUserLastLogin(ctx context.Context, userID int64) error {
	c.hit()
	return c.Store.UpdateUserLastLogin(ctx, userID)
}

func (c *countingStore) CreateAccount(ctx context.Context, a *models.Account) (*models.Account, error) {
	c.hit()
	return c.Store.CreateAccount(ctx, a)
}

func (c *countingStore) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	c.hit()
	return c.Store.ListAccounts(ctx, userID)
}

func (c *countingStore) CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	c.hit()
	return c.Store.CreateTransaction(ctx, t)
}

func (c *countingStore) ListTransactions(ctx context.Context, userID int64, f models.TransactionFilter) ([]models.Transaction, error) {
	c.hit()
	return c.Store.ListTransactions(ctx, userID, f)
}

type recordingPublisher struct {
	mu       sync.Mutex
	requests []models.TransferRequest
	err      error
}

func (p *recordingPublisher) PublishTransfer(_ context.Context, req models.TransferRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Published() []models.TransferRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.TransferRequest(nil), p.requests...)
}

var errBrokerDown = errors.New("broker down")

type testEnv struct {
	store     *countingStore
	sessions  *middleware.Sessions
	renderer  *views.Renderer
	publisher *recordingPublisher
	logger    *zap.Logger
	user      *models.User
	accounts  []models.Account
}

// newTestEnv returns handlers' dependencies backed by the seeded in-memory
// store. The seed user is test/test.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	mem := store.NewMemory()
	seed, err := store.LoadSeed("")
	require.NoError(t, err)
	require.NoError(t, store.Apply(ctx, mem, seed, bcrypt.MinCost, zap.NewNop()))

	user, err := mem.GetUserByUsername(ctx, "test")
	require.NoError(t, err)
	accounts, err := mem.ListAccounts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	return &testEnv{
		store:     &countingStore{Store: mem},
		sessions:  middleware.NewSessions("test-secret", time.Hour),
		renderer:  renderer,
		publisher: &recordingPublisher{},
		logger:    zap.NewNop(),
		user:      user,
		accounts:  accounts,
	}
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// asUser attaches an authenticated identity the way the session middleware
// does.
func asUser(req *http.Request, user *models.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), user.ID, user.Username))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
