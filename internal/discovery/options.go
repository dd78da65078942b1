package discovery

import (
	"github.com/gruntwork-io/testgrunt/internal/queue"
)

// WithIncludes sets the include patterns. No includes means every file is a candidate.
func (d *Discovery) WithIncludes(includes ...string) *Discovery {
	d.includes = append(d.includes, includes...)
	return d
}

// WithExcludes sets the exclude patterns.
func (d *Discovery) WithExcludes(excludes ...string) *Discovery {
	d.excludes = append(d.excludes, excludes...)
	return d
}

// WithRunOrder sets the order in which accepted units are returned.
func (d *Discovery) WithRunOrder(order queue.RunOrder) *Discovery {
	d.runOrder = order
	return d
}

// WithValidator sets the validator that partitions loaded units.
func (d *Discovery) WithValidator(validator Validator) *Discovery {
	d.validator = validator
	return d
}

// WithQueueOptions passes options, such as a clock or a seed, to the run order policy.
func (d *Discovery) WithQueueOptions(opts ...queue.Option) *Discovery {
	d.queueOpts = append(d.queueOpts, opts...)
	return d
}
