package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestSetupPropagatesTraceContextUpstream(t *testing.T) {
	is := is.New(t)

	shutdown, err := Setup(context.Background(), "weather-dashboard", "test", "")
	is.NoErr(err)
	t.Cleanup(func() {
		_ = shutdown(context.Background())
		otel.SetTracerProvider(noop.NewTracerProvider())
	})

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("Traceparent")
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	is.NoErr(err)
	resp, err := client.Do(req)
	is.NoErr(err)
	resp.Body.Close()

	is.True(strings.HasPrefix(traceparent, "00-")) // W3C trace context header
}

func TestRecordAnyErrorAndEndSpan(t *testing.T) {
	is := is.New(t)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tracer := tp.Tracer("test")

	_, failed := tracer.Start(context.Background(), "failed")
	RecordAnyErrorAndEndSpan(errors.New("boom"), failed)

	_, ok := tracer.Start(context.Background(), "ok")
	RecordAnyErrorAndEndSpan(nil, ok)

	ended := sr.Ended()
	is.Equal(len(ended), 2)
	is.Equal(ended[0].Status().Code, codes.Error)
	is.Equal(ended[0].Status().Description, "boom")
	is.Equal(ended[1].Status().Code, codes.Unset)
}
