package cmd

// Options holds the shared command-line options for the repodash CLI.
type Options struct {
	Org       string // GitHub organization (overrides config)
	Data      string // Snapshot file path (defaults to the user cache dir)
	Format    string // Output format (table, json, markdown, html)
	Verbosity int
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI

	// Grid state
	Sort          string   // Sort spec: comma-separated column keys with optional +/- prefix
	Name          string   // Name substring filter (case-sensitive)
	Licenses      []string // License filter set ("all" disables the dimension)
	Collaborators string   // Collaborator range filter, "min:max"

	// Collection options
	Workers         int
	IncludeArchived bool
	IncludeForks    bool
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOrg sets the GitHub organization.
func WithOrg(org string) Option {
	return func(o *Options) {
		o.Org = org
	}
}

// WithData sets the snapshot file path.
func WithData(path string) Option {
	return func(o *Options) {
		o.Data = path
	}
}

// WithFormat sets the output format (table, json, markdown, html).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithSort sets the sort spec.
func WithSort(spec string) Option {
	return func(o *Options) {
		o.Sort = spec
	}
}

// WithName sets the name substring filter.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithLicenses sets the license filter set.
func WithLicenses(licenses []string) Option {
	return func(o *Options) {
		o.Licenses = licenses
	}
}

// WithCollaborators sets the collaborator range filter.
func WithCollaborators(spec string) Option {
	return func(o *Options) {
		o.Collaborators = spec
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
