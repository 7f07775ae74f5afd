package ec2

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

// ErrNoRegion is returned if neither a flag nor the AWS environment sets a region.
var ErrNoRegion = errors.New("no region set (use --region, AWS_REGION or the profile's region)")

// LoadConfig loads the AWS configuration from the environment and the shared
// config files. An empty region or profile falls back to the environment.
func LoadConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Region == "" {
		return aws.Config{}, ErrNoRegion
	}

	return cfg, nil
}

// STSAPI is implemented by *sts.Client.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Identity is the account and principal the credentials belong to.
type Identity struct {
	Account string
	Arn     string
}

// VerifyCredentials checks that the credentials are valid before anything is listed or deleted.
func VerifyCredentials(ctx context.Context, api STSAPI) (*Identity, error) {
	out, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		err = classify(err)

		switch resource.KindOf(err) {
		case resource.Unauthenticated, resource.PermissionDenied:
			return nil, fmt.Errorf("%w: %w", resource.ErrUnauthorized, err)
		default:
			return nil, fmt.Errorf("failed to verify credentials: %w", err)
		}
	}

	return &Identity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
	}, nil
}
