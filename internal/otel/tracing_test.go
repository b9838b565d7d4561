package otel

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"OTEL_SDK_DISABLED", "OTEL_SERVICE_NAME", "OTEL_EXPORTER_OTLP_PROTOCOL",
		"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_TRACES_SAMPLER", "OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}

	s := settingsFromEnv()
	assert.False(t, s.disabled)
	assert.Equal(t, "applyapi", s.serviceName)
	assert.Equal(t, "grpc", s.protocol)
	assert.Equal(t, "parentbased_traceidratio", s.sampler)
	assert.Equal(t, "1.0", s.samplerArg)
}

func TestSettingsFromEnv_EndpointFallback(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")

	assert.Equal(t, "http://collector:4317", settingsFromEnv().endpoint)
}

func TestSampler(t *testing.T) {
	tests := map[string]string{
		"always_on":                "AlwaysOnSampler",
		"always_off":               "AlwaysOffSampler",
		"traceidratio":             "TraceIDRatioBased{0.5}",
		"parentbased_always_on":    "ParentBased{root:AlwaysOnSampler",
		"parentbased_always_off":   "ParentBased{root:AlwaysOffSampler",
		"parentbased_traceidratio": "ParentBased{root:TraceIDRatioBased{0.5}",
		"unknown":                  "ParentBased{root:AlwaysOnSampler",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, sampler(name, "0.5").Description(), want)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.25, ratio("0.25"))
	assert.Equal(t, 1.0, ratio("nope"))
	assert.Equal(t, 1.0, ratio("7"))
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	logger, hook := test.NewNullLogger()

	shutdown, err := Init(context.Background(), logger)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "tracing_configured", hook.LastEntry().Message)
	assert.Equal(t, false, hook.LastEntry().Data["tracing_enabled"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	logger, hook := test.NewNullLogger()

	shutdown, err := Init(context.Background(), logger)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, "tracing_init_failed", hook.LastEntry().Message)
}
