package telemetry

import (
	"context"
	"testing"
)

func TestSetupWithoutEndpointIsDisabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	if Enabled() {
		t.Fatal("Enabled() = true with no endpoint in the environment")
	}

	shutdown, err := Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if shutdown == nil {
		t.Fatal("Setup returned a nil shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	_, span := Tracer("test").Start(context.Background(), "noop.span")
	if span.IsRecording() {
		t.Error("span is recording under the disabled provider")
	}
	span.End()
}

func TestEnabledSeesTracesEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://localhost:4318")

	if !Enabled() {
		t.Fatal("Enabled() = false with a traces endpoint set")
	}
}
