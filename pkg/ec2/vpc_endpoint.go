package ec2

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

type vpcEndpoints struct {
	api EC2API
}

func (h *vpcEndpoints) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	var result []resource.Ref

	pg := ec2.NewDescribeVpcEndpointsPaginator(h.api, &ec2.DescribeVpcEndpointsInput{
		Filters: vpcFilter(networkID),
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, ep := range page.VpcEndpoints {
			if strings.EqualFold(string(ep.State), string(types.StateDeleted)) {
				continue
			}

			result = append(result, resource.Ref{
				Kind:      resource.VpcEndpoint,
				ID:        aws.ToString(ep.VpcEndpointId),
				NetworkID: networkID,
				Attrs: map[string]string{
					"service_name": aws.ToString(ep.ServiceName),
					"type":         string(ep.VpcEndpointType),
				},
			})
		}
	}

	return result, nil
}

// delete reports an endpoint that could not be deleted as error, since
// DeleteVpcEndpoints itself only fails if the whole request is invalid.
func (h *vpcEndpoints) delete(ctx context.Context, ref resource.Ref) error {
	out, err := h.api.DeleteVpcEndpoints(ctx, &ec2.DeleteVpcEndpointsInput{
		VpcEndpointIds: []string{ref.ID},
	})
	if err != nil {
		return err
	}

	for _, item := range out.Unsuccessful {
		if item.Error == nil {
			continue
		}

		code := aws.ToString(item.Error.Code)

		return resource.NewError(ErrorKindOf(code), code,
			fmt.Errorf("failed to delete VPC endpoint %s: %s", ref.ID, aws.ToString(item.Error.Message)))
	}

	return nil
}
