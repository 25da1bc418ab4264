package term

// Config holds the enumerated configuration surface from spec.md §6.
type Config struct {
	Cols             int
	Rows             int
	Scrollback       int
	TermName         string
	ConvertEOL       bool
	ScreenReaderMode bool

	log          LogSink
	onScreenRead func(r rune)
}

// Option configures a Config, mirroring the functional-options pattern
// used throughout the corpus for small all-optional settings structs.
type Option func(*Config)

// WithCols sets the column count (default 80).
func WithCols(cols int) Option { return func(c *Config) { c.Cols = cols } }

// WithRows sets the row count (default 25).
func WithRows(rows int) Option { return func(c *Config) { c.Rows = rows } }

// WithScrollback sets the scrollback line count (default 200).
func WithScrollback(n int) Option { return func(c *Config) { c.Scrollback = n } }

// WithTermName sets the TERM-like name used for DA/DSR replies
// (default "xterm-256color").
func WithTermName(name string) Option { return func(c *Config) { c.TermName = name } }

// WithConvertEOL enables mapping LF to CRLF on the print path's
// linefeed callback.
func WithConvertEOL(v bool) Option { return func(c *Config) { c.ConvertEOL = v } }

// WithScreenReaderMode enables a per-character callback on print.
func WithScreenReaderMode(v bool) Option { return func(c *Config) { c.ScreenReaderMode = v } }

// WithLogSink overrides the default slog-backed LogSink.
func WithLogSink(sink LogSink) Option { return func(c *Config) { c.log = sink } }

// WithoutLogging silences every diagnostic the terminal would
// otherwise emit.
func WithoutLogging() Option { return func(c *Config) { c.log = discardSink } }

// WithScreenReaderCallback sets the per-character callback invoked on
// print when ScreenReaderMode is enabled.
func WithScreenReaderCallback(fn func(r rune)) Option {
	return func(c *Config) { c.onScreenRead = fn }
}

// NewConfig applies defaults, then opts in order.
func NewConfig(opts ...Option) Config {
	c := Config{
		Cols:       80,
		Rows:       25,
		Scrollback: 200,
		TermName:   "xterm-256color",
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.log == nil {
		c.log = SlogSink(nil)
	}
	return c
}
