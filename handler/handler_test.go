package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/lambda-feedback/offload/classifier"
	"github.com/lambda-feedback/offload/offload"
)

// --- Mock handler ---
type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Handle(ctx context.Context, req classifier.Request) classifier.Result {
	args := m.Called(ctx, req)
	return args.Get(0).(classifier.Result)
}

// --- Mock offloader ---
type MockOffloader struct {
	mock.Mock
}

func (m *MockOffloader) Offload(w http.ResponseWriter, r *http.Request, res classifier.Result) error {
	args := m.Called(w, r, res)
	return args.Error(0)
}

func newClassifierHandler() classifier.Handler {
	return classifier.New(classifier.Params{Log: zap.NewNop()})
}

// --- Test ---
func TestServeHTTP_Default(t *testing.T) {
	offloader := new(MockOffloader)

	handler := &OffloadHandler{
		handler:   newClassifierHandler(),
		offloader: offloader,
		log:       zap.NewNop(),
	}

	for _, path := range []string{"/", "/foo", "/whattimeisit/extra"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			body, _ := io.ReadAll(res.Body)

			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, "text/plain", res.Header.Get("Content-Type"))
			assert.Equal(t, "Hello World", string(body))
		})
	}

	offloader.AssertNotCalled(t, "Offload", mock.Anything, mock.Anything, mock.Anything)
}

func TestServeHTTP_Offload(t *testing.T) {
	tests := []struct {
		path   string
		staged bool
	}{
		{path: "/whattimeisit", staged: false},
		{path: "/whattimeisit2", staged: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			offloader := new(MockOffloader)
			offloader.On("Offload", mock.Anything, mock.Anything, mock.MatchedBy(func(res classifier.Result) bool {
				return res.Offload == "clock" && res.Staged() == tt.staged && len(res.Body) == 0
			})).Run(func(args mock.Arguments) {
				w := args.Get(0).(http.ResponseWriter)
				w.WriteHeader(http.StatusOK)
				io.WriteString(w, "data: now\n\n")
			}).Return(nil)

			handler := &OffloadHandler{
				handler:   newClassifierHandler(),
				offloader: offloader,
				log:       zap.NewNop(),
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, "data: now\n\n", w.Body.String())
			offloader.AssertExpectations(t)
		})
	}
}

func TestServeHTTP_OffloadError(t *testing.T) {
	offloader := new(MockOffloader)
	offloader.On("Offload", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(0).(http.ResponseWriter)
			http.Error(w, "no free stream slots", http.StatusServiceUnavailable)
		}).
		Return(offload.ErrStreamsExhausted)

	handler := &OffloadHandler{
		handler:   newClassifierHandler(),
		offloader: offloader,
		log:       zap.NewNop(),
	}

	req := httptest.NewRequest(http.MethodGet, "/whattimeisit", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServeHTTP_PassesRequest(t *testing.T) {
	mockHandler := new(MockHandler)
	mockHandler.On("Handle", mock.Anything, mock.MatchedBy(func(r classifier.Request) bool {
		return r.Path == "/test" && r.Header.Get("Accept") == "text/event-stream"
	})).Return(classifier.Result{
		Response: classifier.Response{
			StatusCode: http.StatusTeapot,
			Headers:    []classifier.Header{{Name: "X-A", Value: "1"}, {Name: "X-A", Value: "2"}},
			Body:       [][]byte{[]byte("Hello "), []byte("World")},
		},
	})

	handler := &OffloadHandler{
		handler:   mockHandler,
		offloader: new(MockOffloader),
		log:       zap.NewNop(),
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept", "text/event-stream")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, []string{"1", "2"}, w.Header().Values("X-A"))
	assert.Equal(t, "Hello World", w.Body.String())
	mockHandler.AssertExpectations(t)
}

func TestSubscribeHandler(t *testing.T) {
	offloader := new(MockOffloader)
	offloader.On("Offload", mock.Anything, mock.Anything, classifier.Result{Offload: "sse-redis:news"}).Return(nil)

	handler := NewSubscribeHandler(SubscribeHandlerParams{
		Offloader: offloader,
		Log:       zap.NewNop(),
	})

	mux := http.NewServeMux()
	mux.Handle("/events/{channel}", handler)

	req := httptest.NewRequest(http.MethodGet, "/events/news", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	offloader.AssertExpectations(t)
}

func TestSubscribeHandler_InvalidChannel(t *testing.T) {
	offloader := new(MockOffloader)

	handler := NewSubscribeHandler(SubscribeHandlerParams{
		Offloader: offloader,
		Log:       zap.NewNop(),
	})

	mux := http.NewServeMux()
	mux.Handle("/events/{channel}", handler)

	for _, path := range []string{"/events/a,b", "/events/server=x"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	offloader.AssertNotCalled(t, "Offload", mock.Anything, mock.Anything, mock.Anything)
}
