package ec2

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

var errorKinds = map[string]resource.ErrorKind{
	"NatGatewayNotFound":         resource.NotFound,
	"InvalidPermission.NotFound": resource.NotFound,

	"DependencyViolation":    resource.DependencyNotReady,
	"InvalidIPAddress.InUse": resource.DependencyNotReady,
	"InvalidState":           resource.DependencyNotReady,

	"IncorrectState":         resource.AlreadyInProgress,
	"IncorrectInstanceState": resource.AlreadyInProgress,

	"Throttling":            resource.Throttled,
	"ThrottlingException":   resource.Throttled,
	"RequestLimitExceeded":  resource.Throttled,
	"TooManyRequests":       resource.Throttled,
	"RequestThrottled":      resource.Throttled,
	"UnauthorizedOperation": resource.PermissionDenied,
	"OperationNotPermitted": resource.PermissionDenied,
	"CannotDelete":          resource.PermissionDenied,

	"AuthFailure":           resource.Unauthenticated,
	"InvalidClientTokenId":  resource.Unauthenticated,
	"ExpiredToken":          resource.Unauthenticated,
	"RequestExpired":        resource.Unauthenticated,
	"SignatureDoesNotMatch": resource.Unauthenticated,
}

// ErrorKindOf classifies an AWS error code.
func ErrorKindOf(code string) resource.ErrorKind {
	if kind, ok := errorKinds[code]; ok {
		return kind
	}

	switch {
	case strings.HasSuffix(code, ".NotFound"):
		return resource.NotFound
	case strings.HasPrefix(code, "AccessDenied"):
		return resource.PermissionDenied
	}

	return resource.Unknown
}

// classify wraps err into a *resource.Error. Errors that are not returned by
// the AWS API (e.g. a cancelled context) are passed through.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var re *resource.Error
	if errors.As(err, &re) {
		return err
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return resource.NewError(ErrorKindOf(apiErr.ErrorCode()), apiErr.ErrorCode(), err)
	}

	return err
}
