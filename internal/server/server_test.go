package server

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewMux(t *testing.T) {
	hello := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello")
	})
	events := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.PathValue("channel"))
	})

	mux := NewMux([]*HttpHandler{
		AsHttpHandler("/", hello).Handler,
		AsHttpHandler("/events/{channel}", events).Handler,
	})

	_, pattern := mux.Handler(&http.Request{Method: http.MethodGet, URL: mustURL(t, "/events/news")})
	assert.Equal(t, "/events/{channel}", pattern)

	_, pattern = mux.Handler(&http.Request{Method: http.MethodGet, URL: mustURL(t, "/whattimeisit")})
	assert.Equal(t, "/", pattern)
}

func TestHttpServer_ServeAndShutdown(t *testing.T) {
	hello := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello")
	})

	server := NewHttpServer(HttpServerParams{
		Context:  context.Background(),
		Config:   HttpConfig{Host: "127.0.0.1", Port: 0, H2c: true},
		Handlers: []*HttpHandler{AsHttpHandler("/", hello).Handler},
		Logger:   zaptest.NewLogger(t),
	})

	require.NoError(t, server.Listen(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- server.Serve()
	}()

	res, err := http.Get("http://" + server.Addr().String() + "/")
	require.NoError(t, err)
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}

func TestHttpServer_ServeWithoutListen(t *testing.T) {
	server := NewHttpServer(HttpServerParams{
		Context: context.Background(),
		Config:  HttpConfig{Host: "127.0.0.1"},
		Logger:  zaptest.NewLogger(t),
	})

	assert.Error(t, server.Serve())
	assert.Nil(t, server.Addr())
}

func mustURL(t *testing.T, path string) *url.URL {
	u, err := url.Parse(path)
	require.NoError(t, err)
	return u
}
