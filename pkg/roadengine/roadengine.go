// Package roadengine implements dispatch.RoutingEngine against an
// external road-routing HTTP collaborator, the boundary spec.md treats
// as out of scope for the core.
package roadengine

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"sealane/pkg/apperror"
	"sealane/pkg/dispatch"
)

// Location is one point in a routing request, matching the road engine's
// wire format.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// routeRequest is the request body sent to the road engine's route
// endpoint.
type routeRequest struct {
	Locations []Location `json:"locations"`
	Costing   string     `json:"costing"`
}

// routeResponse is the subset of the road engine's response this service
// consumes: a single-leg summary.
type routeResponse struct {
	Trip struct {
		Summary struct {
			LengthKM float64 `json:"length"`
			TimeSec  float64 `json:"time"`
		} `json:"summary"`
	} `json:"trip"`
}

// errorResponse mirrors the road engine's error envelope.
type errorResponse struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error"`
	StatusCode   int    `json:"status_code"`
}

func (e *errorResponse) Error() string {
	return fmt.Sprintf("road engine error %d: %s", e.StatusCode, e.ErrorMessage)
}

// RoadEngine proxies mode=ROAD matrix legs to an external road-routing
// service over fasthttp.
type RoadEngine struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	costing    string
}

// NewRoadEngine builds a RoadEngine targeting baseURL (e.g.
// "http://localhost:8002"), bounding each request to timeout.
func NewRoadEngine(baseURL string, timeout time.Duration) *RoadEngine {
	return &RoadEngine{
		httpClient: &fasthttp.Client{Name: "sealane-svc-roadengine"},
		baseURL:    baseURL,
		timeout:    timeout,
		costing:    "auto",
	}
}

var _ dispatch.RoutingEngine = (*RoadEngine)(nil)

// Route requests a single from/to leg from the road engine and reports
// its distance in meters and travel time in milliseconds.
func (e *RoadEngine) Route(ctx context.Context, from, to dispatch.Point) (dispatch.RouteResult, error) {
	body := routeRequest{
		Locations: []Location{
			{Lat: from.Lat, Lon: from.Lon},
			{Lat: to.Lat, Lon: to.Lon},
		},
		Costing: e.costing,
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return dispatch.RouteResult{}, apperror.Wrap(err, apperror.CodeInternal, "failed to encode road engine request")
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(e.baseURL + "/route")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(bodyBytes)

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return dispatch.RouteResult{}, apperror.New(apperror.CodeInternal, "road engine request deadline already exceeded")
	}

	if err := e.httpClient.DoTimeout(req, resp, timeout); err != nil {
		return dispatch.RouteResult{}, apperror.Wrap(err, apperror.CodeInternal, "road engine request failed")
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		errResp := &errorResponse{}
		if jsonErr := json.Unmarshal(resp.Body(), errResp); jsonErr != nil {
			errResp.StatusCode = resp.StatusCode()
			errResp.ErrorMessage = string(resp.Body())
		}
		return dispatch.RouteResult{}, apperror.Wrap(errResp, apperror.CodeInternal, "road engine returned a non-200 response")
	}

	var out routeResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return dispatch.RouteResult{}, apperror.Wrap(err, apperror.CodeInternal, "failed to decode road engine response")
	}

	return dispatch.RouteResult{
		DistanceM: out.Trip.Summary.LengthKM * 1000.0,
		TimeMS:    int64(out.Trip.Summary.TimeSec * 1000.0),
		Reachable: true,
	}, nil
}
