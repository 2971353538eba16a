package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	p, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	_, span := p.Tracer().Start(context.Background(), "noop")
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span")
	}
	span.End()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestSetup_StdoutExportsOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	p, err := Setup(context.Background(), Config{
		Enabled:     true,
		Exporter:    ExporterStdout,
		ServiceName: "zoo-test",
		Out:         &buf,
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	_, span := p.Tracer().Start(context.Background(), "feeding-check")
	if !span.SpanContext().IsValid() {
		t.Fatalf("expected sampled span")
	}
	span.End()

	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !strings.Contains(buf.String(), "feeding-check") {
		t.Fatalf("expected exported span, got %q", buf.String())
	}
}

func TestSetup_UnknownExporter(t *testing.T) {
	if _, err := Setup(context.Background(), Config{Enabled: true, Exporter: "zipkin"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNilProviderIsSafe(t *testing.T) {
	var p *Provider
	if p.Tracer() == nil {
		t.Fatalf("expected tracer")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
