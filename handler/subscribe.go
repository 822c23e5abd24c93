package handler

import (
	"net/http"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/offload/classifier"
	"github.com/lambda-feedback/offload/offload"
)

type SubscribeHandlerParams struct {
	fx.In

	Offloader Offloader
	Log       *zap.Logger
}

func NewSubscribeHandler(params SubscribeHandlerParams) *SubscribeHandler {
	return &SubscribeHandler{
		offloader: params.Offloader,
		log:       params.Log,
	}
}

// SubscribeHandler subscribes clients to the redis channel named by the
// {channel} path wildcard.
type SubscribeHandler struct {
	offloader Offloader
	log       *zap.Logger
}

func (h *SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	channel := r.PathValue("channel")

	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("channel", channel),
	)

	// the channel is passed as a bare engine argument,
	// which must not look like a key=value list
	if channel == "" || strings.ContainsAny(channel, ",=") {
		log.Debug("invalid channel")
		http.Error(w, "invalid channel", http.StatusBadRequest)
		return
	}

	marker := offload.Marker{
		Engine: offload.RedisEngineName,
		Args:   channel,
	}

	result := classifier.Result{Offload: marker.String()}

	if err := h.offloader.Offload(w, r, result); err != nil {
		log.Debug("failed to offload request", zap.Error(err))
	}
}
