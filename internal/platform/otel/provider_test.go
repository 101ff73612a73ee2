package otel_test

import (
	"context"
	"testing"

	"github.com/fifthchair/tricklens/internal/platform/otel"
)

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	t.Setenv("TRICKLENS_OTEL_ENDPOINT", "")
	t.Setenv("TRICKLENS_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "analyzer")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown must succeed even with cancelled context: %v", err)
	}
}

func TestSetupNoopWhenDisabled(t *testing.T) {
	t.Setenv("TRICKLENS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("TRICKLENS_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "analyzer")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupRegistersProvider(t *testing.T) {
	// TEST-NET address, nothing listens there so no spans leave the process.
	t.Setenv("TRICKLENS_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("TRICKLENS_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "analyzer")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown should flush cleanly with no buffered spans: %v", err)
	}
}
