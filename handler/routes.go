package handler

import (
	"github.com/lambda-feedback/offload/internal/server"
)

func NewRootRoute(handler *OffloadHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/", handler)
}

func NewSubscribeRoute(pattern string) func(*SubscribeHandler) server.HttpHandlerResult {
	return func(handler *SubscribeHandler) server.HttpHandlerResult {
		return server.AsHttpHandler(pattern, handler)
	}
}
