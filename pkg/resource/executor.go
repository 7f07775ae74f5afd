package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// ListFailure records that the resources of a kind could not be discovered.
type ListFailure struct {
	Kind    Kind      `json:"type" yaml:"type"`
	Stage   int       `json:"stage" yaml:"stage"`
	Error   ErrorKind `json:"error" yaml:"error"`
	Message string    `json:"message" yaml:"message"`
}

// Executor deletes all resources of one kind of a stage. A failure to delete one
// resource never prevents the deletion attempts of the others.
type Executor struct {
	client Client
	opts   *options
}

// NewExecutor returns an executor that uses client for all provider calls.
func NewExecutor(client Client, opts ...Option) *Executor {
	return &Executor{client: client, opts: newOptions(opts)}
}

// Step lists the current resources of kind in the VPC and attempts to delete each of them.
// Resources whose parent is reported as failed by parentFailed are skipped.
func (e *Executor) Step(ctx context.Context, networkID string, stage int, kind Kind,
	parentFailed func(id string) bool) ([]Entry, *ListFailure) {
	var refs []Ref

	err := retryThrottled(ctx, e.opts.maxRetries, e.opts.retryInterval, func() error {
		var err error
		refs, err = e.client.List(ctx, kind, networkID)
		return err
	})
	if err != nil {
		log.WithField("type", kind.String()).WithError(err).Error("failed to list resources")

		return nil, &ListFailure{Kind: kind, Stage: stage, Error: KindOf(err), Message: err.Error()}
	}

	log.WithFields(log.Fields{
		"type":  kind.String(),
		"found": len(refs),
	}).Debug("listed resources")

	entries := make([]Entry, len(refs))

	var g errgroup.Group
	g.SetLimit(e.opts.parallel)

	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			entries[i] = e.delete(ctx, stage, ref, parentFailed)
			return nil
		})
	}

	// the goroutines never return an error
	_ = g.Wait()

	return entries, nil
}

func (e *Executor) delete(ctx context.Context, stage int, ref Ref, parentFailed func(id string) bool) Entry {
	entry := Entry{Ref: ref, Stage: stage, Started: e.opts.now()}

	switch {
	case ctx.Err() != nil:
		entry.Outcome = skipped(ReasonCancelled)
	case ref.IsDefault:
		entry.Outcome = skipped(ReasonDefault)
	case ref.Parent != "" && parentFailed != nil && parentFailed(ref.Parent):
		entry.Outcome = skipped(fmt.Sprintf("parent %s not deleted", ref.Parent))
	case e.opts.dryRun:
		entry.Outcome = skipped(ReasonDryRun)
	default:
		err := retryThrottled(ctx, e.opts.maxRetries, e.opts.retryInterval, func() error {
			return e.client.Delete(ctx, ref)
		})
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			entry.Outcome = skipped(ReasonCancelled)
		} else {
			entry.Outcome = outcomeOf(err)
		}
	}

	entry.Finished = e.opts.now()

	if ref.Kind.Async() && awaitable(entry.Outcome) {
		log.WithFields(log.Fields{
			"type": ref.Kind.String(),
			"id":   ref.ID,
		}).Debug("deletion started")
	} else {
		logOutcome(entry)
	}

	return entry
}

// awaitable reports whether the deletion of an async resource is under way.
func awaitable(o Outcome) bool {
	return o.Status == Deleted || (o.Status == Skipped && o.Reason == ReasonInProgress)
}

func logOutcome(entry Entry) {
	logger := log.WithFields(log.Fields{
		"type":    entry.Ref.Kind.String(),
		"id":      entry.Ref.ID,
		"outcome": entry.Outcome.String(),
	})

	switch entry.Outcome.Status {
	case Failed:
		logger.WithField("error", entry.Outcome.Message).Warn("failed to delete resource")
	case Skipped:
		logger.Debug("skipped resource")
	default:
		logger.Info("deleted resource")
	}
}
