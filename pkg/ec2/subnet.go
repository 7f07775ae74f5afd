package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

type subnets struct {
	api EC2API
}

func (h *subnets) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	var result []resource.Ref

	pg := ec2.NewDescribeSubnetsPaginator(h.api, &ec2.DescribeSubnetsInput{
		Filters: vpcFilter(networkID),
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, s := range page.Subnets {
			result = append(result, resource.Ref{
				Kind:      resource.Subnet,
				ID:        aws.ToString(s.SubnetId),
				NetworkID: networkID,
				Attrs: map[string]string{
					"cidr_block":        aws.ToString(s.CidrBlock),
					"availability_zone": aws.ToString(s.AvailabilityZone),
				},
			})
		}
	}

	return result, nil
}

func (h *subnets) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{
		SubnetId: aws.String(ref.ID),
	})

	return err
}
