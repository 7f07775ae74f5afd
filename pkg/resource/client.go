package resource

import "context"

// Client performs the provider calls of a teardown. Errors should be returned
// as *Error so that they can be classified; anything else is treated as Unknown.
type Client interface {
	// List returns the current resources of a kind in the given VPC. For the Network
	// kind, it returns the VPC itself or nothing if it does not exist.
	List(ctx context.Context, kind Kind, networkID string) ([]Ref, error)
	Delete(ctx context.Context, ref Ref) error
	// DescribeState is only called for async kinds.
	DescribeState(ctx context.Context, ref Ref) (State, error)
}
