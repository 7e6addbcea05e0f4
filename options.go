package prettyprint

import "log/slog"

// Option configures a PrettyPrinter.
type Option func(*printerOptions)

type printerOptions struct {
	engine    Engine
	assets    *Assets
	widthFunc WidthFunc
	logger    *slog.Logger
}

// WithEngine replaces the default Controller.
func WithEngine(engine Engine) Option {
	return func(o *printerOptions) {
		o.engine = engine
	}
}

// WithAssets sets the theme and syntax catalog.
func WithAssets(assets *Assets) Option {
	return func(o *printerOptions) {
		o.assets = assets
	}
}

// WithWidthFunc sets the terminal width query used when no width override is
// set.
func WithWidthFunc(fn WidthFunc) Option {
	return func(o *printerOptions) {
		o.widthFunc = fn
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *printerOptions) {
		o.logger = logger
	}
}
