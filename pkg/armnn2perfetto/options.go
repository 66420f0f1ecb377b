package armnn2perfetto

import "github.com/crimson-sun/armnn2perfetto/internal/config"

// Option configures a Converter.
type Option func(*config.Config)

// WithFlows enables flow arrows from framework spans to their kernels.
func WithFlows(enabled bool) Option {
	return func(c *config.Config) {
		c.Flows = enabled
	}
}

// WithBeginEnd writes spans as B/E pairs instead of complete X events.
func WithBeginEnd(enabled bool) Option {
	return func(c *config.Config) {
		c.BeginEnd = enabled
	}
}

// WithPretty indents the JSON output. Default: true.
func WithPretty(pretty bool) Option {
	return func(c *config.Config) {
		c.Pretty = pretty
	}
}

// WithStrictTiming makes an event with negative duration fail the
// conversion. By default such events are skipped and counted.
func WithStrictTiming(strict bool) Option {
	return func(c *config.Config) {
		c.StrictTiming = strict
	}
}

// WithProcessName sets the process label shown in the UI. Default: "ArmNN Trace".
func WithProcessName(name string) Option {
	return func(c *config.Config) {
		c.ProcessName = name
	}
}

// WithMarkers overrides the label markers. Empty arguments keep the default.
// separator ends the ordinal slot prefix, ":" in "OpenClKernelTimer/3: name".
func WithMarkers(framework, kernel, gemmToken, separator string) Option {
	return func(c *config.Config) {
		if framework != "" {
			c.Markers.Framework = framework
		}
		if kernel != "" {
			c.Markers.Kernel = kernel
		}
		if gemmToken != "" {
			c.Markers.GemmToken = gemmToken
		}
		if separator != "" {
			c.Markers.OrdinalSeparator = separator
		}
	}
}
