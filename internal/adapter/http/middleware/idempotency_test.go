package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/goldenlock/internal/adapter/repository/memory"
	"github.com/iho/goldenlock/internal/adapter/repository/redis"
	"github.com/iho/goldenlock/internal/usecase/mocks"
)

func postWithKey(path, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, key)
	return req
}

func TestIdempotencyMiddleware_StoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"store failure", context.DeadlineExceeded, http.StatusInternalServerError},
		{"breaker open", redis.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockIdempotencyStore(ctrl)
			store.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any()).Return(false, nil, tt.err)

			mw := NewIdempotencyMiddleware(store)
			rr := httptest.NewRecorder()

			mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatalf("handler should not be called when store errors")
			})).ServeHTTP(rr, postWithKey("/api/v1/transfers", "key-err"))

			assert.Equal(t, tt.expected, rr.Code)
		})
	}
}

func TestIdempotencyMiddleware_SkipsNonMutatingAndUnkeyedRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)
	mw := NewIdempotencyMiddleware(store)

	calls := 0
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString(`{}`)))

	assert.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	store := memory.NewIdempotencyStore()
	var replays atomic.Int32
	mw := NewIdempotencyMiddleware(store, WithIdempotencyTTL(time.Minute), WithReplayHook(func() { replays.Add(1) }))

	var calls atomic.Int32
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, postWithKey("/api/v1/accounts/1001/deposit", "key-1"))
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(IdempotencyReplayHeader))

	second := httptest.NewRecorder()
	h.ServeHTTP(second, postWithKey("/api/v1/accounts/1001/deposit", "key-1"))

	assert.Equal(t, int32(1), calls.Load(), "handler must run once")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayHeader))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, second.Body.String())
	assert.Equal(t, int32(1), replays.Load())
}

func TestIdempotencyMiddleware_KeyIsScopedToPath(t *testing.T) {
	store := memory.NewIdempotencyStore()
	mw := NewIdempotencyMiddleware(store)

	var calls atomic.Int32
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))

	h.ServeHTTP(httptest.NewRecorder(), postWithKey("/api/v1/accounts/1001/deposit", "same"))
	h.ServeHTTP(httptest.NewRecorder(), postWithKey("/api/v1/accounts/1002/deposit", "same"))

	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencyMiddleware_ReplaysClientErrors(t *testing.T) {
	store := memory.NewIdempotencyStore()
	mw := NewIdempotencyMiddleware(store)

	var calls atomic.Int32
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"insufficient funds"}`))
	}))

	h.ServeHTTP(httptest.NewRecorder(), postWithKey("/api/v1/accounts/1001/withdraw", "k"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postWithKey("/api/v1/accounts/1001/withdraw", "k"))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestIdempotencyMiddleware_ReleasesKeyOnServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)
	store.EXPECT().CheckAndSet(gomock.Any(), "POST /api/v1/transfers key-fail", gomock.Nil(), gomock.Any()).Return(false, nil, nil)
	store.EXPECT().Release(gomock.Any(), "POST /api/v1/transfers key-fail").Return(nil)

	mw := NewIdempotencyMiddleware(store)
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})).ServeHTTP(rr, postWithKey("/api/v1/transfers", "key-fail"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestIdempotencyMiddleware_InFlightKeyConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)
	store.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any()).Return(true, []byte(processingMarker), nil)

	mw := NewIdempotencyMiddleware(store)
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run while the key is in flight")
	})).ServeHTTP(rr, postWithKey("/api/v1/transfers", "busy"))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestIdempotencyMiddleware_ReplaysRawBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)
	store.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any()).Return(true, []byte(`{"cached":true}`), nil)

	mw := NewIdempotencyMiddleware(store)
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called when cached response exists")
	})).ServeHTTP(rr, postWithKey("/api/v1/transfers", "key-123"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "true", rr.Header().Get(IdempotencyReplayHeader))
	assert.Equal(t, `{"cached":true}`, rr.Body.String())
}

func TestIdempotencyMiddleware_ReleasesKeyOnPanic(t *testing.T) {
	store := memory.NewIdempotencyStore()
	mw := NewIdempotencyMiddleware(store)

	var calls atomic.Int32
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			panic("boom")
		}
		w.WriteHeader(http.StatusCreated)
	}))

	assert.PanicsWithValue(t, "boom", func() {
		h.ServeHTTP(httptest.NewRecorder(), postWithKey("/api/v1/transfers", "key-panic"))
	}, "the panic must reach the outer recovery")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postWithKey("/api/v1/transfers", "key-panic"))

	assert.Equal(t, http.StatusCreated, rr.Code, "retry after a panic must run the handler again")
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencyMiddleware_PanicBehindRecoveryAllowsRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)
	store.EXPECT().CheckAndSet(gomock.Any(), "POST /api/v1/deposits key-panic", gomock.Nil(), gomock.Any()).Return(false, nil, nil)
	store.EXPECT().Release(gomock.Any(), "POST /api/v1/deposits key-panic").Return(nil)

	h := Recovery(NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rr, postWithKey("/api/v1/deposits", "key-panic"))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
