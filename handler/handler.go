package handler

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/offload/classifier"
)

// Offloader hands offloaded requests to a streaming engine.
type Offloader interface {
	Offload(w http.ResponseWriter, r *http.Request, res classifier.Result) error
}

type OffloadHandlerParams struct {
	fx.In

	Handler   classifier.Handler
	Offloader Offloader
	Log       *zap.Logger
}

func NewOffloadHandler(params OffloadHandlerParams) *OffloadHandler {
	return &OffloadHandler{
		handler:   params.Handler,
		offloader: params.Offloader,
		log:       params.Log,
	}
}

// OffloadHandler classifies requests, answering them directly or handing
// them to the offloader.
type OffloadHandler struct {
	handler   classifier.Handler
	offloader Offloader
	log       *zap.Logger
}

func (h *OffloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	request := classifier.Request{
		Path:   r.URL.Path,
		Header: r.Header,
	}

	// Classify the request
	result := h.handler.Handle(r.Context(), request)

	if result.Offloaded() {
		log.Debug("offloading request", zap.String("offload", result.Offload))
		if err := h.offloader.Offload(w, r, result); err != nil {
			log.Debug("failed to offload request", zap.Error(err))
		}
		return
	}

	// Write status, headers and body
	if err := result.Write(w); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}
}
