package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

type natGateways struct {
	api EC2API
}

// describe returns all NAT gateways of the VPC, including deleted ones
// (EC2 keeps them listed for about an hour).
func (h *natGateways) describe(ctx context.Context, input *ec2.DescribeNatGatewaysInput) ([]types.NatGateway, error) {
	var result []types.NatGateway

	pg := ec2.NewDescribeNatGatewaysPaginator(h.api, input)
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		result = append(result, page.NatGateways...)
	}

	return result, nil
}

func (h *natGateways) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	gateways, err := h.describe(ctx, &ec2.DescribeNatGatewaysInput{Filter: vpcFilter(networkID)})
	if err != nil {
		return nil, err
	}

	var result []resource.Ref
	for _, gw := range gateways {
		if gw.State == types.NatGatewayStateDeleted {
			continue
		}

		result = append(result, resource.Ref{
			Kind:      resource.NatGateway,
			ID:        aws.ToString(gw.NatGatewayId),
			NetworkID: networkID,
			Attrs:     map[string]string{"state": string(gw.State)},
		})
	}

	return result, nil
}

func (h *natGateways) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DeleteNatGateway(ctx, &ec2.DeleteNatGatewayInput{
		NatGatewayId: aws.String(ref.ID),
	})

	return err
}

func (h *natGateways) describeState(ctx context.Context, ref resource.Ref) (resource.State, error) {
	gateways, err := h.describe(ctx, &ec2.DescribeNatGatewaysInput{NatGatewayIds: []string{ref.ID}})
	if err != nil {
		return "", err
	}

	if len(gateways) == 0 {
		return resource.StateDeleted, nil
	}

	switch gateways[0].State {
	// failed gateways are deleted by EC2 and their addresses are not allocated
	case types.NatGatewayStateDeleted, types.NatGatewayStateFailed:
		return resource.StateDeleted, nil
	case types.NatGatewayStateDeleting:
		return resource.StateDeleting, nil
	default:
		return resource.StatePresent, nil
	}
}
