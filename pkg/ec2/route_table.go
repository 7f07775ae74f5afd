package ec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

func describeRouteTables(ctx context.Context, api EC2API, networkID string) ([]types.RouteTable, error) {
	var result []types.RouteTable

	pg := ec2.NewDescribeRouteTablesPaginator(api, &ec2.DescribeRouteTablesInput{
		Filters: vpcFilter(networkID),
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		result = append(result, page.RouteTables...)
	}

	return result, nil
}

// isMain is true for the route table that was created together with the VPC.
func isMain(rt types.RouteTable) bool {
	for _, assoc := range rt.Associations {
		if aws.ToBool(assoc.Main) {
			return true
		}
	}
	return false
}

type routeTableAssociations struct {
	api EC2API
}

func (h *routeTableAssociations) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	tables, err := describeRouteTables(ctx, h.api, networkID)
	if err != nil {
		return nil, err
	}

	var result []resource.Ref
	for _, rt := range tables {
		for _, assoc := range rt.Associations {
			if assoc.AssociationState != nil &&
				assoc.AssociationState.State == types.RouteTableAssociationStateCodeDisassociated {
				continue
			}

			ref := resource.Ref{
				Kind:      resource.RouteTableAssociation,
				ID:        aws.ToString(assoc.RouteTableAssociationId),
				NetworkID: networkID,
				IsDefault: aws.ToBool(assoc.Main),
				Parent:    aws.ToString(rt.RouteTableId),
			}
			if subnetID := aws.ToString(assoc.SubnetId); subnetID != "" {
				ref.Attrs = map[string]string{"subnet_id": subnetID}
			}

			result = append(result, ref)
		}
	}

	return result, nil
}

func (h *routeTableAssociations) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DisassociateRouteTable(ctx, &ec2.DisassociateRouteTableInput{
		AssociationId: aws.String(ref.ID),
	})

	return err
}

type routeTables struct {
	api EC2API
}

func (h *routeTables) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	tables, err := describeRouteTables(ctx, h.api, networkID)
	if err != nil {
		return nil, err
	}

	result := make([]resource.Ref, 0, len(tables))
	for _, rt := range tables {
		result = append(result, resource.Ref{
			Kind:      resource.RouteTable,
			ID:        aws.ToString(rt.RouteTableId),
			NetworkID: networkID,
			IsDefault: isMain(rt),
		})
	}

	return result, nil
}

func (h *routeTables) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{
		RouteTableId: aws.String(ref.ID),
	})

	return err
}
