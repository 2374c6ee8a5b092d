package lending

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	borrowRecord *Record
	borrowErr    error
	returnRecord *Record
	returnErr    error
	detail       *Detail
	detailErr    error
	details      []*Detail

	gotActorID uuid.UUID
}

func (s *stubService) Borrow(_ context.Context, _, _ uuid.UUID, _ time.Time, actorID uuid.UUID) (*Record, error) {
	s.gotActorID = actorID
	return s.borrowRecord, s.borrowErr
}

func (s *stubService) Return(context.Context, uuid.UUID) (*Record, error) {
	return s.returnRecord, s.returnErr
}

func (s *stubService) Get(context.Context, uuid.UUID) (*Detail, error) {
	return s.detail, s.detailErr
}

func (s *stubService) List(context.Context) ([]*Detail, error) {
	return s.details, nil
}

func newTestRouter(service Service) chi.Router {
	r := chi.NewRouter()
	NewHandler(service).Routes(r)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandleBorrow(t *testing.T) {
	record := &Record{ID: uuid.New(), Status: StatusBorrowed}
	stub := &stubService{borrowRecord: record}
	router := newTestRouter(stub)

	actor := uuid.New()
	body, _ := json.Marshal(map[string]any{
		"bookId":   uuid.New().String(),
		"memberId": uuid.New().String(),
		"dueDate":  time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPost, "/lendings", bytes.NewReader(body))
	req.Header.Set("X-Actor-ID", actor.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.Equal(t, actor, stub.gotActorID)

	var got Record
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, record.ID, got.ID)
}

func TestHandleBorrowMalformedBody(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/lendings", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestHandleBorrowErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no copies", ErrNoCopiesAvailable, http.StatusBadRequest},
		{"inconsistency", ErrInconsistency, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubService{borrowErr: tc.err})

			body, _ := json.Marshal(map[string]any{"bookId": uuid.New().String(), "memberId": uuid.New().String()})
			req := httptest.NewRequest(http.MethodPost, "/lendings", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tc.err.Error(), env.Error)
		})
	}
}

func TestHandleReturn(t *testing.T) {
	now := time.Now().UTC()
	record := &Record{ID: uuid.New(), Status: StatusReturned, ReturnDate: &now}
	router := newTestRouter(&stubService{returnRecord: record})

	req := httptest.NewRequest(http.MethodPut, "/lendings/"+record.ID.String()+"/return", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var got Record
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, StatusReturned, got.Status)
	assert.NotNil(t, got.ReturnDate)
}

func TestHandleReturnInvalidID(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPut, "/lendings/not-a-uuid/return", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReturnNotFound(t *testing.T) {
	router := newTestRouter(&stubService{returnErr: ErrLendingNotFound})

	req := httptest.NewRequest(http.MethodPut, "/lendings/"+uuid.NewString()+"/return", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleReturnAlreadyReturned(t *testing.T) {
	router := newTestRouter(&stubService{returnErr: ErrAlreadyReturned})

	req := httptest.NewRequest(http.MethodPut, "/lendings/"+uuid.NewString()+"/return", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrAlreadyReturned.Error(), decodeEnvelope(t, rec).Error)
}

func TestHandleList(t *testing.T) {
	details := []*Detail{
		{Record: Record{ID: uuid.New(), Status: StatusBorrowed}, BookTitle: "Dune", MemberName: "Ada"},
	}
	router := newTestRouter(&stubService{details: details})

	req := httptest.NewRequest(http.MethodGet, "/lendings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var got []*Detail
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].BookTitle)
}

func TestHandleGet(t *testing.T) {
	detail := &Detail{Record: Record{ID: uuid.New(), Status: StatusBorrowed}, BookTitle: "Dune"}
	router := newTestRouter(&stubService{detail: detail})

	req := httptest.NewRequest(http.MethodGet, "/lendings/"+detail.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got Detail
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, detail.ID, got.ID)
}
