package ec2

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

type vpcs struct {
	api EC2API
}

// list returns the VPC itself. A VPC that does not exist results in a NotFound error.
func (h *vpcs) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	var result []resource.Ref

	pg := ec2.NewDescribeVpcsPaginator(h.api, &ec2.DescribeVpcsInput{
		VpcIds: []string{networkID},
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, vpc := range page.Vpcs {
			result = append(result, resource.Ref{
				Kind:      resource.Network,
				ID:        aws.ToString(vpc.VpcId),
				NetworkID: aws.ToString(vpc.VpcId),
				Attrs: map[string]string{
					"cidr_block":  aws.ToString(vpc.CidrBlock),
					"default_vpc": strconv.FormatBool(aws.ToBool(vpc.IsDefault)),
				},
			})
		}
	}

	return result, nil
}

func (h *vpcs) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DeleteVpc(ctx, &ec2.DeleteVpcInput{
		VpcId: aws.String(ref.ID),
	})

	return err
}
