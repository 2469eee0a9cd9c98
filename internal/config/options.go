// Package config holds the Options accepted by the dedupe engine and the
// functional-option constructors used to assemble them, in the same style
// as the teacher's merkle.NewEngineWithExclusions.
package config

const (
	// DefaultMinSize is the default lower size bound (≈100 KiB, §6).
	DefaultMinSize = 100 << 10
	// DefaultMaxSize is the default upper size bound (≈100 GiB, §6).
	DefaultMaxSize = 100 << 30
)

// Options mirrors spec §6's recognized keys. Paths is required and
// validated by the engine; every other field has a sensible zero value or
// default applied by New.
type Options struct {
	Paths []string

	MinSize int64
	MaxSize int64

	Include []string
	Exclude []string

	CompareName  bool
	CompareMtime bool
	CompareMode  bool

	Recursive   bool
	FollowLinks bool
	ScanLinks   bool
	ScanEmpties bool

	ScanSystem   bool
	ScanArchived bool
	ScanHidden   bool

	// MaxWorkers bounds the hash-refiner worker pool; <= 0 selects
	// runtime.NumCPU().
	MaxWorkers int

	// Fingerprint requests a per-class BLAKE3 digest in the result (§2's
	// supplemental class-fingerprint feature).
	Fingerprint bool

	OnError  func(err error, path string)
	OnDelete func(path string) error
	Notify   func(stage string, processed, total int)
}

// Option mutates an Options value during construction.
type Option func(*Options)

// New builds an Options from paths plus defaults, applying opts in order.
// Scan-attribute flags default to true per §6 ("default true; skip entries
// matching the corresponding attribute when false").
func New(paths []string, opts ...Option) Options {
	o := Options{
		Paths:        paths,
		MinSize:      DefaultMinSize,
		MaxSize:      DefaultMaxSize,
		Recursive:    true,
		ScanSystem:   true,
		ScanArchived: true,
		ScanHidden:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithSizeBounds(min, max int64) Option {
	return func(o *Options) { o.MinSize, o.MaxSize = min, max }
}

func WithGlobs(include, exclude []string) Option {
	return func(o *Options) { o.Include, o.Exclude = include, exclude }
}

func WithAttributeRefiners(name, mtime, mode bool) Option {
	return func(o *Options) { o.CompareName, o.CompareMtime, o.CompareMode = name, mtime, mode }
}

func WithWalkPolicy(recursive, followLinks, scanLinks, scanEmpties bool) Option {
	return func(o *Options) {
		o.Recursive, o.FollowLinks, o.ScanLinks, o.ScanEmpties = recursive, followLinks, scanLinks, scanEmpties
	}
}

func WithAttributePolicy(scanSystem, scanArchived, scanHidden bool) Option {
	return func(o *Options) { o.ScanSystem, o.ScanArchived, o.ScanHidden = scanSystem, scanArchived, scanHidden }
}

func WithMaxWorkers(n int) Option {
	return func(o *Options) { o.MaxWorkers = n }
}

func WithFingerprint(enabled bool) Option {
	return func(o *Options) { o.Fingerprint = enabled }
}

func WithHooks(onError func(error, string), onDelete func(string) error, notify func(string, int, int)) Option {
	return func(o *Options) { o.OnError, o.OnDelete, o.Notify = onError, onDelete, notify }
}
