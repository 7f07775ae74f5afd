package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// Teardown deletes a VPC and all resources in it, stage by stage.
//
// A run never stops because a single resource could not be deleted. Instead, every
// outcome is recorded in the returned Report and resources that still exist are
// attempted again by the next run. Repeated runs against the same VPC are safe.
type Teardown struct {
	client   Client
	opts     *options
	executor *Executor
}

// NewTeardown creates a teardown that uses client for all provider calls.
func NewTeardown(client Client, opts ...Option) *Teardown {
	return &Teardown{
		client:   client,
		opts:     newOptions(opts),
		executor: NewExecutor(client, opts...),
	}
}

// Run tears down the VPC with the given ID.
//
// The only errors returned are ErrNetworkNotFound and ErrUnauthorized (or a failed
// lookup of the VPC), in which case no stage has been run. If ctx is cancelled
// during the run, the partial report is returned without an error.
func (t *Teardown) Run(ctx context.Context, networkID string) (*Report, error) {
	report := &Report{
		NetworkID: networkID,
		DryRun:    t.opts.dryRun,
		Started:   t.opts.now(),
	}
	defer func() {
		report.Finished = t.opts.now()
	}()

	network, err := t.resolve(ctx, networkID)
	if err != nil {
		if KindOf(err) == NotFound {
			report.Network = &Entry{
				Ref:      Ref{Kind: Network, ID: networkID, NetworkID: networkID},
				Outcome:  Outcome{Status: AlreadyGone},
				Stage:    StageOf(Network),
				Started:  report.Started,
				Finished: t.opts.now(),
			}
		}
		return report, err
	}

stages:
	for _, stage := range Stages() {
		for _, kind := range stage.Kinds {
			if kind == Network {
				continue
			}

			if ctx.Err() != nil {
				report.Cancelled = true
				break stages
			}

			log.WithFields(log.Fields{
				"stage": stage.Index,
				"type":  kind.String(),
			}).Debugf("deleting %s", stage.Name)

			entries, listFailure := t.executor.Step(ctx, networkID, stage.Index, kind, report.failed)
			if listFailure != nil {
				report.ListFailures = append(report.ListFailures, *listFailure)
			}

			if kind.Async() && !t.opts.dryRun {
				t.await(ctx, entries)
			}

			report.Entries = append(report.Entries, entries...)
		}
	}

	if ctx.Err() != nil {
		report.Cancelled = true
	}

	report.Network = t.deleteNetwork(ctx, network, report)

	return report, nil
}

// resolve looks up the VPC before anything is deleted.
func (t *Teardown) resolve(ctx context.Context, networkID string) (Ref, error) {
	var refs []Ref

	err := retryThrottled(ctx, t.opts.maxRetries, t.opts.retryInterval, func() error {
		var err error
		refs, err = t.client.List(ctx, Network, networkID)
		return err
	})
	if err != nil {
		switch KindOf(err) {
		case Unauthenticated, PermissionDenied:
			return Ref{}, fmt.Errorf("%w %s: %w", ErrUnauthorized, networkID, err)
		case NotFound:
			return Ref{}, NewError(NotFound, "", fmt.Errorf("%w: %s", ErrNetworkNotFound, networkID))
		default:
			return Ref{}, fmt.Errorf("failed to look up VPC %s: %w", networkID, err)
		}
	}

	for _, ref := range refs {
		if ref.ID == networkID {
			return ref, nil
		}
	}

	return Ref{}, NewError(NotFound, "", fmt.Errorf("%w: %s", ErrNetworkNotFound, networkID))
}

// await blocks until all async resources of a step reached a terminal state
// or their wait timed out.
func (t *Teardown) await(ctx context.Context, entries []Entry) {
	var g errgroup.Group
	g.SetLimit(t.opts.parallel)

	for i := range entries {
		i := i
		outcome := entries[i].Outcome
		if !awaitable(outcome) {
			continue
		}

		inProgress := outcome.Status == Skipped

		g.Go(func() error {
			log.WithFields(log.Fields{
				"type": entries[i].Ref.Kind.String(),
				"id":   entries[i].Ref.ID,
			}).Info("waiting for deletion to complete")

			result := AwaitTerminal(ctx, t.client, entries[i].Ref, t.opts.waitTimeout, t.opts.pollInterval)
			if result.Status != Deleted || !inProgress {
				entries[i].Outcome = result
			}
			entries[i].Finished = t.opts.now()

			logOutcome(entries[i])

			return nil
		})
	}

	_ = g.Wait()
}

func (t *Teardown) deleteNetwork(ctx context.Context, network Ref, report *Report) *Entry {
	entry := &Entry{Ref: network, Stage: StageOf(Network), Started: t.opts.now()}

	blockers := report.blockers()

	switch {
	case report.Cancelled:
		entry.Outcome = skipped(ReasonCancelled)
	case t.opts.dryRun:
		entry.Outcome = skipped(ReasonDryRun)
	case len(blockers) > 0:
		ids := make([]string, 0, len(blockers))
		for _, b := range blockers {
			ids = append(ids, b.Ref.String())
		}
		entry.Outcome = skipped("blocked by " + strings.Join(ids, ", "))
	default:
		err := retryThrottled(ctx, t.opts.maxRetries, t.opts.retryInterval, func() error {
			return t.client.Delete(ctx, network)
		})
		entry.Outcome = outcomeOf(err)
	}

	entry.Finished = t.opts.now()

	logOutcome(*entry)

	return entry
}
