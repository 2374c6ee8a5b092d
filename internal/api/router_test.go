package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraledger/internal/analytics"
	"libraledger/internal/catalog"
	"libraledger/internal/inventory"
	"libraledger/internal/lending"
	"libraledger/internal/membership"
)

// composedLendingStore mirrors the production lending store composition: book
// and member lookups go to the other domains' stores, records stay local.
type composedLendingStore struct {
	*lending.MemoryStore
	catalog    catalog.Store
	membership membership.Store
}

func (s *composedLendingStore) FindBook(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	return s.catalog.FindBook(ctx, id)
}

func (s *composedLendingStore) FindMember(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	return s.membership.FindMember(ctx, id)
}

type apiFixture struct {
	server *httptest.Server
	ledger inventory.Ledger
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalogStore := catalog.NewMemoryStore()
	membershipStore := membership.NewMemoryStore()
	ledger := inventory.NewLedger(inventory.NewMemoryStore(), logger)
	lendingStore := &composedLendingStore{
		MemoryStore: lending.NewMemoryStore(),
		catalog:     catalogStore,
		membership:  membershipStore,
	}

	router := NewRouter(Handlers{
		Catalog:    catalog.NewHandler(catalog.NewService(catalogStore, ledger, logger)),
		Membership: membership.NewHandler(membership.NewService(membershipStore)),
		Lending:    lending.NewHandler(lending.NewService(lendingStore, ledger, logger)),
		Analytics:  analytics.NewHandler(analytics.NewService(analytics.NewMemoryStore(), logger)),
	}, Options{Logger: logger})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &apiFixture{server: server, ledger: ledger}
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (f *apiFixture) post(t *testing.T, path string, payload any) (*http.Response, envelope) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(f.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (f *apiFixture) put(t *testing.T, path string) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, f.server.URL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (f *apiFixture) get(t *testing.T, path string) (*http.Response, envelope) {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func unmarshalData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	resp, env := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestBorrowFlow(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()

	resp, env := f.post(t, "/categories", map[string]string{"name": "Science Fiction"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var category catalog.Category
	unmarshalData(t, env, &category)

	resp, env = f.post(t, "/books", map[string]any{
		"title": "Pride and Prejudice", "author": "Jane Austen",
		"isbn": "9780141439518", "quantity": 5, "categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var book catalog.Book
	unmarshalData(t, env, &book)

	resp, env = f.post(t, "/members", map[string]string{
		"name": "Test User", "email": "test@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var member membership.Member
	unmarshalData(t, env, &member)

	dueDate := time.Now().UTC().AddDate(0, 0, 14).Format(time.RFC3339)
	resp, env = f.post(t, "/lendings", map[string]any{
		"bookId": book.ID, "memberId": member.ID, "dueDate": dueDate,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	var record lending.Record
	unmarshalData(t, env, &record)
	assert.Equal(t, lending.StatusBorrowed, record.Status)

	status, err := f.ledger.Status(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, status.AvailableQty)
	assert.Equal(t, 1, status.BorrowedQty)

	resp, env = f.put(t, "/lendings/"+record.ID.String()+"/return")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var returned lending.Record
	unmarshalData(t, env, &returned)
	assert.Equal(t, lending.StatusReturned, returned.Status)

	status, err = f.ledger.Status(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, status.AvailableQty)
	assert.Equal(t, 0, status.BorrowedQty)

	resp, _ = f.put(t, "/lendings/"+record.ID.String()+"/return")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConcurrentBorrowPreventsDoubleBooking(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()

	resp, env := f.post(t, "/categories", map[string]string{"name": "Classics"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var category catalog.Category
	unmarshalData(t, env, &category)

	resp, env = f.post(t, "/books", map[string]any{
		"title": "The Great Gatsby", "author": "F. Scott Fitzgerald",
		"isbn": "9780743273565", "quantity": 1, "categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var book catalog.Book
	unmarshalData(t, env, &book)

	memberIDs := make([]uuid.UUID, 0, 10)
	for i := 0; i < 10; i++ {
		resp, env = f.post(t, "/members", map[string]string{
			"name": "Member", "email": "member@example.com",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var member membership.Member
		unmarshalData(t, env, &member)
		memberIDs = append(memberIDs, member.ID)
	}

	dueDate := time.Now().UTC().AddDate(0, 0, 14).Format(time.RFC3339)
	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for _, memberID := range memberIDs {
		wg.Add(1)
		go func(memberID uuid.UUID) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{
				"bookId": book.ID, "memberId": memberID, "dueDate": dueDate,
			})
			resp, err := http.Post(f.server.URL+"/lendings", "application/json", bytes.NewReader(body))
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					mu.Lock()
					successCount++
					mu.Unlock()
				}
			}
		}(memberID)
	}
	wg.Wait()

	assert.Equal(t, 1, successCount, "only one concurrent borrow should succeed")

	status, err := f.ledger.Status(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.AvailableQty)
	assert.Equal(t, 1, status.BorrowedQty)
}

func TestAnalyticsEndpointsRespond(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{
		"/analytics/most-borrowed",
		"/analytics/monthly-trends",
		"/analytics/category-distribution",
	} {
		resp, env := f.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.True(t, env.Success, path)
	}
}
