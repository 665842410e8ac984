// Package apiconnect exposes the CampTrack services over Connect. Every
// handler and client is configured with api.Codec.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

type route struct {
	procedure string
	handler   http.Handler
}

func unary[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) route {
	return route{procedure: procedure, handler: connect.NewUnaryHandler(procedure, fn, opts...)}
}

// serve mounts routes under the service path and returns both for use with
// http.ServeMux.Handle.
func serve(serviceName string, routes ...route) (string, http.Handler) {
	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.procedure, r.handler)
	}
	return "/" + serviceName + "/", mux
}

func trimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
