package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

type instances struct {
	api EC2API
}

func (h *instances) describe(ctx context.Context, input *ec2.DescribeInstancesInput) ([]types.Instance, error) {
	var result []types.Instance

	pg := ec2.NewDescribeInstancesPaginator(h.api, input)
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, r := range page.Reservations {
			result = append(result, r.Instances...)
		}
	}

	return result, nil
}

func (h *instances) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	filters := append(vpcFilter(networkID), types.Filter{
		Name: aws.String("instance-state-name"),
		Values: []string{
			string(types.InstanceStateNamePending),
			string(types.InstanceStateNameRunning),
			string(types.InstanceStateNameShuttingDown),
			string(types.InstanceStateNameStopping),
			string(types.InstanceStateNameStopped),
		},
	})

	all, err := h.describe(ctx, &ec2.DescribeInstancesInput{Filters: filters})
	if err != nil {
		return nil, err
	}

	result := make([]resource.Ref, 0, len(all))
	for _, i := range all {
		ref := resource.Ref{
			Kind:      resource.Instance,
			ID:        aws.ToString(i.InstanceId),
			NetworkID: networkID,
		}
		if i.State != nil {
			ref.Attrs = map[string]string{"state": string(i.State.Name)}
		}

		result = append(result, ref)
	}

	return result, nil
}

func (h *instances) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{ref.ID},
	})

	return err
}

func (h *instances) describeState(ctx context.Context, ref resource.Ref) (resource.State, error) {
	all, err := h.describe(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{ref.ID}})
	if err != nil {
		return "", err
	}

	if len(all) == 0 || all[0].State == nil {
		return resource.StateDeleted, nil
	}

	switch all[0].State.Name {
	case types.InstanceStateNameTerminated:
		return resource.StateDeleted, nil
	case types.InstanceStateNameShuttingDown:
		return resource.StateDeleting, nil
	default:
		return resource.StatePresent, nil
	}
}
