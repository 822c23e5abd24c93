package classifier

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ClockEngine is the name of the streaming engine that serves the clock.
const ClockEngine = "clock"

// Handler is the interface for classifying requests.
type Handler interface {
	Handle(ctx context.Context, request Request) Result
}

// route maps an exact path to a function building its result. The result
// is built on every call, so callers may modify what they get back.
type route struct {
	path   string
	result func() Result
}

var routes = []route{
	{
		path: "/whattimeisit",
		result: func() Result {
			return Result{Offload: ClockEngine}
		},
	},
	{
		path: "/whattimeisit2",
		result: func() Result {
			return Result{
				Offload: ClockEngine,
				Response: Response{
					StatusCode: http.StatusOK,
					Headers: []Header{
						{Name: "Content-Type", Value: "event/stream"},
						{Name: "Cache-Control", Value: "no-cache"},
						{Name: "Foo", Value: "Bar"},
					},
				},
			}
		},
	},
}

func fallback() Result {
	return Result{
		Response: Response{
			StatusCode: http.StatusOK,
			Headers: []Header{
				{Name: "Content-Type", Value: "text/plain"},
			},
			Body: [][]byte{[]byte("Hello World")},
		},
	}
}

// Classify matches the request path against the dispatch table. Matching is
// exact and case-sensitive, and the first match wins. Paths without a match,
// including the empty path, get a plain text greeting.
func Classify(req Request) Result {
	for _, r := range routes {
		if r.path == req.Path {
			return r.result()
		}
	}

	return fallback()
}

// RouteInfo describes one entry of the dispatch table.
type RouteInfo struct {
	// Path is the matched path, empty for the fallback entry.
	Path   string
	Result Result
}

// Table returns the dispatch table in match order, followed by the fallback.
func Table() []RouteInfo {
	table := make([]RouteInfo, 0, len(routes)+1)
	for _, r := range routes {
		table = append(table, RouteInfo{Path: r.path, Result: r.result()})
	}

	return append(table, RouteInfo{Result: fallback()})
}

// Params defines the dependencies for the classifier.
type Params struct {
	fx.In

	Log *zap.Logger
}

// Classifier is a Handler that classifies requests using Classify.
type Classifier struct {
	log *zap.Logger
}

var _ Handler = (*Classifier)(nil)

// New creates a new classifier.
func New(params Params) Handler {
	return &Classifier{
		log: params.Log.Named("classifier"),
	}
}

// Handle classifies the request.
func (c *Classifier) Handle(_ context.Context, req Request) Result {
	res := Classify(req)

	c.log.Debug("classified request",
		zap.String("path", req.Path),
		zap.String("offload", res.Offload),
		zap.Int("status", res.StatusCode),
	)

	return res
}
