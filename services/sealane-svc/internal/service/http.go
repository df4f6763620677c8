package service

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"sealane/pkg/apperror"
	"sealane/pkg/logger"
)

// HTTPServer exposes MatrixService over a plain JSON/fasthttp endpoint.
// No protobuf or REST-gateway generation is involved; this is the only
// inbound transport for the domain operation, the gRPC server alongside
// it carries health and reflection only.
type HTTPServer struct {
	matrix *MatrixService
	server *fasthttp.Server
	port   int
}

// NewHTTPServer builds an HTTPServer bound to port, delegating matrix
// requests to svc.
func NewHTTPServer(svc *MatrixService, port int) *HTTPServer {
	h := &HTTPServer{matrix: svc, port: port}
	h.server = &fasthttp.Server{
		Handler: h.route,
		Name:    "sealane-svc-http",
	}
	return h
}

// ListenAndServe blocks serving HTTP until the listener fails or Shutdown
// is called.
func (h *HTTPServer) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", h.port)
	logger.Log.Info("Starting HTTP matrix API", "addr", addr)
	return h.server.ListenAndServe(addr)
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPServer) Shutdown() error {
	return h.server.Shutdown()
}

func (h *HTTPServer) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case "/v1/matrix":
		h.handleMatrix(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (h *HTTPServer) handleMatrix(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		return
	}

	var req MatrixRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, apperror.New(apperror.CodeInvalidArgument, "malformed JSON request body"))
		return
	}

	resp, err := h.matrix.Solve(context.Background(), req)
	if err != nil {
		writeError(ctx, err)
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(ctx, apperror.Wrap(err, apperror.CodeInternal, "failed to encode matrix response"))
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(ctx *fasthttp.RequestCtx, err error) {
	code := apperror.Code(err)
	status := httpStatusForCode(code)

	body, marshalErr := json.Marshal(errorBody{Code: string(code), Message: err.Error()})
	if marshalErr != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func httpStatusForCode(code apperror.ErrorCode) int {
	switch code {
	case apperror.CodeInvalidArgument, apperror.CodeInvalidConfig, apperror.CodeCoordinateParseFailed:
		return fasthttp.StatusBadRequest
	case apperror.CodeNotFound, apperror.CodeNoSeaportFound, apperror.CodeNoSeaportWithinRange:
		return fasthttp.StatusNotFound
	case apperror.CodeCoordinateOnLand, apperror.CodePolarRegionUnsupported, apperror.CodeGraphSnapFailed,
		apperror.CodeConnectivityInvariantViolated:
		return fasthttp.StatusUnprocessableEntity
	case apperror.CodeUnimplemented:
		return fasthttp.StatusNotImplemented
	case apperror.CodeIOFailed, apperror.CodeLandMaskLoadFailed:
		return fasthttp.StatusServiceUnavailable
	default:
		return fasthttp.StatusInternalServerError
	}
}
