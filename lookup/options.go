package lookup

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/millerindex/resource"
)

// Layout selects the storage used for the tensor cells.
type Layout int

const (
	// LayoutAuto uses a dense table when it fits the memory budget and a
	// sparse map otherwise.
	LayoutAuto Layout = iota
	// LayoutDense always uses a dense table and fails when it does not fit.
	LayoutDense
	// LayoutSparse always uses a sparse map keyed by Miller index.
	LayoutSparse
)

// String returns a string representation of the Layout.
func (l Layout) String() string {
	switch l {
	case LayoutAuto:
		return "auto"
	case LayoutDense:
		return "dense"
	case LayoutSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// ParseLayout parses the names produced by Layout.String.
func ParseLayout(s string) (Layout, bool) {
	switch s {
	case "", "auto":
		return LayoutAuto, true
	case "dense":
		return LayoutDense, true
	case "sparse":
		return LayoutSparse, true
	default:
		return LayoutAuto, false
	}
}

// MarshalText encodes the layout by name.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a layout name.
func (l *Layout) UnmarshalText(text []byte) error {
	v, ok := ParseLayout(string(text))
	if !ok {
		return fmt.Errorf("lookup: unknown layout %q", text)
	}
	*l = v
	return nil
}

type options struct {
	layout     Layout
	controller *resource.Controller
	strict     bool
	logger     *slog.Logger
}

// Option configures tensor construction.
type Option func(*options)

// WithLayout selects the cell storage. Defaults to LayoutAuto.
func WithLayout(l Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithResourceController sets the controller that budgets the dense table.
//
// If unset, each tensor gets a private controller limited to
// resource.DefaultMemoryLimitBytes.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithStrictUniqueness makes New fail with a *DuplicateOrbitError when two
// stored indices share an orbit member.
//
// Without it the later position silently wins.
func WithStrictUniqueness() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger sets the logger used for build summaries.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
