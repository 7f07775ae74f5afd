package resource

import (
	"fmt"
	"time"
)

// Report is the record of one teardown run: every resource that was found,
// what happened to it, and the outcome for the VPC itself.
type Report struct {
	NetworkID    string        `json:"vpc_id" yaml:"vpc_id"`
	Entries      []Entry       `json:"resources" yaml:"resources"`
	Network      *Entry        `json:"vpc,omitempty" yaml:"vpc,omitempty"`
	ListFailures []ListFailure `json:"list_failures,omitempty" yaml:"list_failures,omitempty"`
	Cancelled    bool          `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	DryRun       bool          `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Started      time.Time     `json:"started" yaml:"started"`
	Finished     time.Time     `json:"finished" yaml:"finished"`
}

// All returns all entries including the one of the VPC.
func (r *Report) All() []Entry {
	all := make([]Entry, 0, len(r.Entries)+1)
	all = append(all, r.Entries...)
	if r.Network != nil {
		all = append(all, *r.Network)
	}
	return all
}

// Count returns the number of entries (including the VPC) with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, e := range r.All() {
		if e.Outcome.Status == status {
			n++
		}
	}
	return n
}

// Failures returns all failed entries (including the VPC).
func (r *Report) Failures() []Entry {
	var result []Entry
	for _, e := range r.All() {
		if e.Outcome.Status == Failed {
			result = append(result, e)
		}
	}
	return result
}

// Complete reports whether the VPC is gone and nothing failed. If not,
// running the teardown again might succeed.
func (r *Report) Complete() bool {
	return r.Network != nil && r.Network.Outcome.IsSuccess() &&
		len(r.Failures()) == 0 && len(r.ListFailures) == 0
}

// Summary returns a one-line description of the run.
func (r *Report) Summary() string {
	s := fmt.Sprintf("deleted: %d, already gone: %d, skipped: %d, failed: %d",
		r.Count(Deleted), r.Count(AlreadyGone), r.Count(Skipped), r.Count(Failed))

	if len(r.ListFailures) > 0 {
		s += fmt.Sprintf(", failed to list: %d", len(r.ListFailures))
	}

	if r.Cancelled {
		s += " (cancelled)"
	}

	return s
}

func (r *Report) failed(id string) bool {
	for _, e := range r.Entries {
		if e.Ref.ID == id && e.Outcome.Status == Failed {
			return true
		}
	}
	return false
}

func (r *Report) blockers() []Entry {
	var result []Entry
	for _, e := range r.Entries {
		if e.blocksNetwork() {
			result = append(result, e)
		}
	}
	return result
}
