// Package weather provides the get_weather and send_email demo tools.
package weather

import (
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/tool"
)

// Report is the payload returned by get_weather.
type Report struct {
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	Time        string `json:"time"`
}

// Forecaster produces a weather report for a location at a point in time.
type Forecaster func(location, time string) Report

// StaticForecaster always reports the same temperature.
func StaticForecaster(temperature string) Forecaster {
	return func(location, time string) Report {
		return Report{Location: location, Temperature: temperature, Time: time}
	}
}

type weatherArgs struct {
	Location string `json:"location" description:"City name. Location MUST be a city."`
	Time     string `json:"time,omitempty" description:"Point in time, defaults to now."`
}

// Options configures the weather tools.
type Options struct {
	// Forecaster backs get_weather. Defaults to a static 65 degree forecast.
	Forecaster Forecaster
	// Outbox receives rendered emails. Defaults to os.Stdout.
	Outbox io.Writer
}

// NewGetWeatherTool creates the get_weather tool.
func NewGetWeatherTool(optFns ...func(o *Options)) *tool.FunctionTool {
	opts := options(optFns)

	return tool.NewFunctionToolFromStruct(
		"get_weather",
		"Get the current weather in a given location. Location MUST be a city.",
		weatherArgs{},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			location := tool.StringArg(args, "location", "")
			return opts.Forecaster(location, tool.StringArg(args, "time", "now")), nil
		},
	)
}

type emailArgs struct {
	Recipient string `json:"recipient" description:"Email address of the recipient."`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// NewSendEmailTool creates the send_email tool. Emails are written to the
// configured outbox instead of being delivered.
func NewSendEmailTool(optFns ...func(o *Options)) *tool.FunctionTool {
	opts := options(optFns)

	return tool.NewFunctionToolFromStruct(
		"send_email",
		"Send an email.",
		emailArgs{},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			recipient := tool.StringArg(args, "recipient", "")
			subject := tool.StringArg(args, "subject", "")

			if _, err := fmt.Fprintf(opts.Outbox, "Sending email...\nTo: %s\nSubject: %s\nBody: %s\n",
				recipient, subject, tool.StringArg(args, "body", "")); err != nil {
				return nil, err
			}

			tc.Logger().Info("weather.email.sent", "recipient", recipient, "subject", subject)

			return "Sent!", nil
		},
	)
}

// Tools returns both weather tools sharing the same options.
func Tools(optFns ...func(o *Options)) []core.Tool {
	return []core.Tool{NewGetWeatherTool(optFns...), NewSendEmailTool(optFns...)}
}

func options(optFns []func(o *Options)) Options {
	opts := Options{
		Forecaster: StaticForecaster("65"),
		Outbox:     os.Stdout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}
