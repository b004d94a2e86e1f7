package tracing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("OTEL_ENVIRONMENT", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

	cfg := DefaultConfig()

	if cfg.ServiceName != "reddit-wiki-mcp-server" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Enabled {
		t.Error("tracing should be disabled by default")
	}
	if !cfg.Insecure {
		t.Error("Insecure should default to true")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %f, want 1.0", cfg.SampleRate)
	}
}

func TestDefaultConfig_WithEnvVars(t *testing.T) {
	t.Setenv("OTEL_ENVIRONMENT", "production")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg := DefaultConfig()

	if cfg.Environment != "production" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if !cfg.Enabled {
		t.Error("an OTLP endpoint should enable tracing")
	}
	if cfg.OTLPEndpoint != "collector:4318" {
		t.Errorf("OTLPEndpoint = %q", cfg.OTLPEndpoint)
	}
	if cfg.Insecure {
		t.Error("Insecure should be false")
	}
	if cfg.SampleRate != 0.25 {
		t.Errorf("SampleRate = %f, want 0.25", cfg.SampleRate)
	}
}

func TestParseSampleRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 1.0},
		{"abc", 1.0},
		{"0", 0},
		{"0.1", 0.1},
	}
	for _, tt := range tests {
		if got := parseSampleRate(tt.in); got != tt.want {
			t.Errorf("parseSampleRate(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, sdktrace.AlwaysSample().Description()},
		{1.5, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{-1, sdktrace.NeverSample().Description()},
		{0.5, sdktrace.TraceIDRatioBased(0.5).Description()},
	}
	for _, tt := range tests {
		if got := newSampler(tt.rate).Description(); got != tt.want {
			t.Errorf("newSampler(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestSetup_WritesSpansToOutput(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), Config{
		ServiceName: "test-service",
		Environment: "test",
		Enabled:     true,
		SampleRate:  1.0,
		Output:      &buf,
	})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	_, span := StartSpan(context.Background(), "wiki.edit")
	AddWikiAttributes(span, "golang", "faq")
	Finish(span, errors.New("403 Forbidden"))
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"wiki.edit", "reddit.wiki.page", "403 Forbidden"} {
		if !strings.Contains(out, want) {
			t.Errorf("exported span lacks %q", want)
		}
	}
}

func TestFinish(t *testing.T) {
	_, span := StartSpan(context.Background(), "test-finish")
	defer span.End()

	Finish(span, nil)
	Finish(span, errors.New("boom"))
	AddToolAttributes(span, "reddit_wiki_get_page", "read", true)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_GET_ENV_KEY", "custom-value")
	t.Setenv("TEST_GET_ENV_KEY_EMPTY", "")

	if got := getEnvOrDefault("TEST_GET_ENV_KEY", "default-value"); got != "custom-value" {
		t.Errorf("got %q, want custom-value", got)
	}
	if got := getEnvOrDefault("TEST_GET_ENV_KEY_EMPTY", "default-value"); got != "default-value" {
		t.Errorf("got %q, want default-value", got)
	}
}
