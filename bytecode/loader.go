package bytecode

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hollicode-lang/hollicode/errz"
)

// Format identifies a bytecode file format.
type Format int

const (
	// FormatUnknown means the format could not be determined.
	FormatUnknown Format = iota
	// FormatText is the line-oriented .hlct format.
	FormatText
	// FormatStructured is the JSON-based .hlcj format.
	FormatStructured
)

// String returns the conventional file extension for the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "hlct"
	case FormatStructured:
		return "hlcj"
	default:
		return "unknown"
	}
}

type config struct {
	logger           zerolog.Logger
	ignoreTextHeader bool
	format           Format
}

// Option is a configuration function for the bytecode loaders.
type Option func(*config)

// WithLogger sets the diagnostic sink for non-fatal load warnings. The
// default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithIgnoreTextHeader skips parsing and validating the header line of text
// bytecode. The line is still consumed.
func WithIgnoreTextHeader(ignore bool) Option {
	return func(c *config) {
		c.ignoreTextHeader = ignore
	}
}

// WithFormat forces the format for LoadFile instead of inferring it from
// the file extension.
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load parses bytecode from memory in the given format.
func Load(data []byte, format Format, opts ...Option) (*Program, error) {
	c := newConfig(opts)
	switch format {
	case FormatText:
		return loadText(data, c)
	case FormatStructured:
		return loadStructured(data, c)
	default:
		return nil, errz.LoadErrorf("unknown bytecode format")
	}
}

// LoadFile reads and parses a bytecode file. Unless WithFormat is supplied,
// the format is inferred from the extension: .hlct for text bytecode and
// .hlcj for structured bytecode.
func LoadFile(path string, opts ...Option) (*Program, error) {
	c := newConfig(opts)
	format := c.format
	if format == FormatUnknown {
		switch filepath.Ext(path) {
		case ".hlct":
			format = FormatText
		case ".hlcj":
			format = FormatStructured
		default:
			return nil, errz.LoadErrorf("cannot infer bytecode format from extension").WithPath(path)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errz.LoadErrorf("unable to read bytecode file").WithPath(path).WithCause(err)
	}
	program, err := Load(data, format, opts...)
	if err != nil {
		if loadErr, ok := err.(*errz.LoadError); ok {
			loadErr.WithPath(path)
		}
		return nil, err
	}
	return program, nil
}

// checkVersion warns (but does not fail) when the header's bytecode version
// is not in the compatible set.
func checkVersion(header Header, c *config) {
	if header.VersionCompatible() {
		return
	}
	c.logger.Warn().
		Str("bytecode_version", header.BytecodeVersion).
		Strs("compatible_versions", CompatibleVersions).
		Msg("bytecode version is not in the compatible set; attempting to run anyway")
}
