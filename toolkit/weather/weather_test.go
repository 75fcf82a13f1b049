package weather

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/agentswarm/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolCtx() *core.ToolContext {
	return core.NewToolContext(context.Background(), "call_1", "Weather Agent", nil, nil)
}

func TestGetWeather(t *testing.T) {
	w := NewGetWeatherTool()

	assert.Equal(t, "get_weather", w.Name())
	assert.Equal(t, []string{"location"}, w.Parameters()["required"])

	out, err := w.Call(toolCtx(), map[string]any{"location": "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, Report{Location: "Berlin", Temperature: "65", Time: "now"}, out)

	res, err := core.Interpret(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"location":"Berlin","temperature":"65","time":"now"}`, res.Value)
}

func TestGetWeather_CustomForecaster(t *testing.T) {
	w := NewGetWeatherTool(func(o *Options) {
		o.Forecaster = StaticForecaster("12")
	})

	out, err := w.Call(toolCtx(), map[string]any{"location": "Oslo", "time": "tomorrow"})
	require.NoError(t, err)
	assert.Equal(t, Report{Location: "Oslo", Temperature: "12", Time: "tomorrow"}, out)
}

func TestGetWeather_MissingLocation(t *testing.T) {
	_, err := NewGetWeatherTool().Call(toolCtx(), map[string]any{})
	assert.ErrorContains(t, err, "location")
}

func TestSendEmail(t *testing.T) {
	var outbox bytes.Buffer
	email := NewSendEmailTool(func(o *Options) { o.Outbox = &outbox })

	out, err := email.Call(toolCtx(), map[string]any{
		"recipient": "ada@example.com",
		"subject":   "Weather",
		"body":      "Sunny.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sent!", out)
	assert.Equal(t, "Sending email...\nTo: ada@example.com\nSubject: Weather\nBody: Sunny.\n", outbox.String())
}

func TestTools(t *testing.T) {
	tools := Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "get_weather", tools[0].Name())
	assert.Equal(t, "send_email", tools[1].Name())
}
