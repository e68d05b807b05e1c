package client

import (
	"context"
	"net/http"
	"net/http/httputil"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type operationKey struct{}

// withOperation tags ctx with the post API operation being executed.
func withOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// operationFrom returns the operation tag of ctx, or "" for untagged requests.
func operationFrom(ctx context.Context) string {
	op, _ := ctx.Value(operationKey{}).(string)
	return op
}

// debugTransport dumps every request and response, labeled with the post API
// operation that issued it. Dumps contain the Authorization header and full
// bodies; enable with WithDebugLogging(true) or SOCIALECHO_DEBUG=true.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	fields := func(e *zerolog.Event) *zerolog.Event {
		return e.Str("operation", operationFrom(req.Context())).Str("method", req.Method).Str("path", req.URL.Path)
	}

	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		fields(log.Debug()).Bytes("request_dump", dump).Msg("post api request")
	}

	start := time.Now()
	resp, err := dt.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		fields(log.Error()).Err(err).Dur("elapsed", elapsed).Msg("post api transport failure")
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		fields(log.Debug()).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Bytes("response_dump", dump).Msg("post api response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether SOCIALECHO_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("SOCIALECHO_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
