package resource

import "time"

const (
	DefaultParallel      = 10
	DefaultWaitTimeout   = 10 * time.Minute
	DefaultPollInterval  = 5 * time.Second
	DefaultMaxRetries    = 5
	DefaultRetryInterval = time.Second
)

type options struct {
	parallel      int
	waitTimeout   time.Duration
	pollInterval  time.Duration
	maxRetries    uint64
	retryInterval time.Duration
	dryRun        bool
	now           func() time.Time
}

// Option configures a Teardown or Executor.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		parallel:      DefaultParallel,
		waitTimeout:   DefaultWaitTimeout,
		pollInterval:  DefaultPollInterval,
		maxRetries:    DefaultMaxRetries,
		retryInterval: DefaultRetryInterval,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithParallel limits the number of concurrent delete calls within a stage.
func WithParallel(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallel = n
	}
}

// WithWaitTimeout sets how long to wait for an async resource to be deleted.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *options) {
		o.waitTimeout = d
	}
}

// WithPollInterval sets how often the state of an async resource is checked while
// waiting. A non-positive interval keeps DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d <= 0 {
			d = DefaultPollInterval
		}
		o.pollInterval = d
	}
}

// WithMaxRetries sets how often a throttled call is retried.
func WithMaxRetries(n uint64) Option {
	return func(o *options) {
		o.maxRetries = n
	}
}

func WithRetryInterval(d time.Duration) Option {
	return func(o *options) {
		o.retryInterval = d
	}
}

// WithDryRun lists all resources without deleting anything.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithClock replaces the clock used for the timestamps in the report.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
