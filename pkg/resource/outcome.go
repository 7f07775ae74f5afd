package resource

import (
	"fmt"
	"time"
)

// Status is the result of a deletion attempt.
type Status int

const (
	Deleted Status = iota + 1
	AlreadyGone
	Skipped
	Failed
)

var statusNames = map[Status]string{
	Deleted:     "Deleted",
	AlreadyGone: "AlreadyGone",
	Skipped:     "Skipped",
	Failed:      "Failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	ReasonDefault    = "default resource"
	ReasonInProgress = "in progress"
	ReasonDryRun     = "dry run"
	ReasonCancelled  = "run cancelled"
)

// Outcome is the result of deleting a single resource.
type Outcome struct {
	Status Status `json:"status" yaml:"status"`
	// Reason is set for skipped resources
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Error is set for failed resources
	Error   ErrorKind `json:"error,omitempty" yaml:"error,omitempty"`
	Message string    `json:"message,omitempty" yaml:"message,omitempty"`
}

func (o Outcome) String() string {
	switch o.Status {
	case Skipped:
		return fmt.Sprintf("%s(%s)", o.Status, o.Reason)
	case Failed:
		return fmt.Sprintf("%s(%s)", o.Status, o.Error)
	default:
		return o.Status.String()
	}
}

// IsSuccess reports whether the resource is gone after the attempt.
func (o Outcome) IsSuccess() bool {
	return o.Status == Deleted || o.Status == AlreadyGone
}

func skipped(reason string) Outcome {
	return Outcome{Status: Skipped, Reason: reason}
}

func failed(kind ErrorKind, err error) Outcome {
	o := Outcome{Status: Failed, Error: kind}
	if err != nil {
		o.Message = err.Error()
	}
	return o
}

// outcomeOf classifies the error returned by a delete call.
func outcomeOf(err error) Outcome {
	if err == nil {
		return Outcome{Status: Deleted}
	}

	switch kind := KindOf(err); kind {
	case NotFound:
		return Outcome{Status: AlreadyGone}
	case AlreadyInProgress:
		o := skipped(ReasonInProgress)
		o.Message = err.Error()
		return o
	default:
		return failed(kind, err)
	}
}

// Entry is the outcome of a single resource within a teardown run.
type Entry struct {
	Ref      Ref       `json:"resource" yaml:"resource"`
	Outcome  Outcome   `json:"outcome" yaml:"outcome"`
	Stage    int       `json:"stage" yaml:"stage"`
	Started  time.Time `json:"started" yaml:"started"`
	Finished time.Time `json:"finished" yaml:"finished"`
}

// blocksNetwork reports whether the failure of this entry means that the VPC
// certainly cannot be deleted. Dependency and timeout failures are not counted,
// since the blocking resource might be gone by the time the VPC is deleted.
func (e Entry) blocksNetwork() bool {
	if e.Outcome.Status != Failed || !e.Ref.Kind.BlocksNetwork() {
		return false
	}

	switch e.Outcome.Error {
	case PermissionDenied, Unauthenticated, Throttled, Unknown:
		return true
	default:
		return false
	}
}
