package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

// elasticIps are the addresses allocated to the NAT gateways of a VPC.
// Other addresses are not owned by the VPC and are left alone.
type elasticIps struct {
	api EC2API
}

func (h *elasticIps) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	gateways, err := (&natGateways{api: h.api}).describe(ctx, &ec2.DescribeNatGatewaysInput{
		Filter: vpcFilter(networkID),
	})
	if err != nil {
		return nil, err
	}

	gatewayOf := map[string]string{}
	var allocationIDs []string

	for _, gw := range gateways {
		for _, addr := range gw.NatGatewayAddresses {
			id := aws.ToString(addr.AllocationId)
			if id == "" {
				continue
			}
			if _, ok := gatewayOf[id]; !ok {
				allocationIDs = append(allocationIDs, id)
			}
			gatewayOf[id] = aws.ToString(gw.NatGatewayId)
		}
	}

	if len(allocationIDs) == 0 {
		return nil, nil
	}

	// addresses that have been released already are not returned
	out, err := h.api.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("allocation-id"),
				Values: allocationIDs,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var result []resource.Ref
	for _, addr := range out.Addresses {
		id := aws.ToString(addr.AllocationId)

		result = append(result, resource.Ref{
			Kind:      resource.ElasticIp,
			ID:        id,
			NetworkID: networkID,
			Parent:    gatewayOf[id],
			Attrs:     map[string]string{"public_ip": aws.ToString(addr.PublicIp)},
		})
	}

	return result, nil
}

func (h *elasticIps) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
		AllocationId: aws.String(ref.ID),
	})

	return err
}
