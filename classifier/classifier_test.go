package classifier_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lambda-feedback/offload/classifier"
)

func TestClassify_WhatTimeIsIt(t *testing.T) {
	res := classifier.Classify(classifier.Request{Path: "/whattimeisit"})

	assert.True(t, res.Offloaded())
	assert.Equal(t, "clock", res.Offload)
	assert.Equal(t, 0, res.StatusCode)
	assert.Empty(t, res.Headers)
	assert.Empty(t, res.Body)
	assert.False(t, res.Staged())
}

func TestClassify_WhatTimeIsIt2(t *testing.T) {
	res := classifier.Classify(classifier.Request{Path: "/whattimeisit2"})

	assert.True(t, res.Offloaded())
	assert.Equal(t, "clock", res.Offload)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []classifier.Header{
		{Name: "Content-Type", Value: "event/stream"},
		{Name: "Cache-Control", Value: "no-cache"},
		{Name: "Foo", Value: "Bar"},
	}, res.Headers)
	assert.Empty(t, res.Body)
	assert.True(t, res.Staged())
}

func TestClassify_Fallback(t *testing.T) {
	paths := []string{
		"",
		"/",
		"/foo",
		"/whattimeisit/",
		"/whattimeisit3",
		"/WhatTimeIsIt",
		"whattimeisit",
		"/whattimeisit?x=1",
		"//whattimeisit",
		"/\x00",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			res := classifier.Classify(classifier.Request{Path: path})

			assert.False(t, res.Offloaded())
			assert.Empty(t, res.Offload)
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, []classifier.Header{
				{Name: "Content-Type", Value: "text/plain"},
			}, res.Headers)
			require.Len(t, res.Body, 1)
			assert.Equal(t, "Hello World", string(res.Body[0]))
		})
	}
}

func TestClassify_IgnoresHeaders(t *testing.T) {
	header := http.Header{}
	header.Set("Accept", "text/event-stream")
	header.Set("X-Sse-Offload", "redis")

	res := classifier.Classify(classifier.Request{Path: "/", Header: header})

	assert.False(t, res.Offloaded())
}

func TestClassify_Idempotent(t *testing.T) {
	paths := []string{"/whattimeisit", "/whattimeisit2", "/", "/foo"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := classifier.Request{Path: path}

			assert.Equal(t, classifier.Classify(req), classifier.Classify(req))
		})
	}
}

func TestClassify_ResultsAreNotShared(t *testing.T) {
	first := classifier.Classify(classifier.Request{Path: "/whattimeisit2"})
	first.Headers[0].Value = "application/json"
	first.Headers = append(first.Headers, classifier.Header{Name: "X", Value: "Y"})

	second := classifier.Classify(classifier.Request{Path: "/whattimeisit2"})
	assert.Equal(t, "event/stream", second.Headers[0].Value)
	assert.Len(t, second.Headers, 3)

	body := classifier.Classify(classifier.Request{Path: "/"})
	body.Body[0][0] = 'J'

	assert.Equal(t, "Hello World", string(classifier.Classify(classifier.Request{Path: "/"}).Body[0]))
}

func TestClassifier_Handle(t *testing.T) {
	handler := classifier.New(classifier.Params{Log: zaptest.NewLogger(t)})

	tests := []struct {
		path    string
		offload string
	}{
		{path: "/whattimeisit", offload: "clock"},
		{path: "/whattimeisit2", offload: "clock"},
		{path: "/anything", offload: ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := classifier.Request{Path: tt.path}

			res := handler.Handle(context.Background(), req)

			assert.Equal(t, tt.offload, res.Offload)
			assert.Equal(t, classifier.Classify(req), res)
		})
	}
}

func TestTable(t *testing.T) {
	table := classifier.Table()

	require.Len(t, table, 3)
	assert.Equal(t, "/whattimeisit", table[0].Path)
	assert.Equal(t, "/whattimeisit2", table[1].Path)
	assert.Empty(t, table[2].Path)
	assert.False(t, table[2].Result.Offloaded())
}

func TestResult_OffloadedHasNoBody(t *testing.T) {
	for _, entry := range classifier.Table() {
		if entry.Result.Offloaded() {
			assert.Empty(t, entry.Result.Body, entry.Path)
		}
	}
}
