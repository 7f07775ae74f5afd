package ec2

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

const defaultSecurityGroupName = "default"

func describeSecurityGroups(ctx context.Context, api EC2API, networkID string) ([]types.SecurityGroup, error) {
	var result []types.SecurityGroup

	pg := ec2.NewDescribeSecurityGroupsPaginator(api, &ec2.DescribeSecurityGroupsInput{
		Filters: vpcFilter(networkID),
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		result = append(result, page.SecurityGroups...)
	}

	return result, nil
}

// securityGroupRules are the ingress and egress rules of all groups in the VPC,
// including the default group.
type securityGroupRules struct {
	api EC2API
}

func (h *securityGroupRules) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	groups, err := describeSecurityGroups(ctx, h.api, networkID)
	if err != nil {
		return nil, err
	}

	if len(groups) == 0 {
		return nil, nil
	}

	groupIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, aws.ToString(g.GroupId))
	}

	var result []resource.Ref

	pg := ec2.NewDescribeSecurityGroupRulesPaginator(h.api, &ec2.DescribeSecurityGroupRulesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("group-id"),
				Values: groupIDs,
			},
		},
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, r := range page.SecurityGroupRules {
			result = append(result, resource.Ref{
				Kind:      resource.SecurityGroupRule,
				ID:        aws.ToString(r.SecurityGroupRuleId),
				NetworkID: networkID,
				Parent:    aws.ToString(r.GroupId),
				Attrs:     map[string]string{"egress": strconv.FormatBool(aws.ToBool(r.IsEgress))},
			})
		}
	}

	return result, nil
}

func (h *securityGroupRules) delete(ctx context.Context, ref resource.Ref) error {
	if ref.Attrs["egress"] == "true" {
		_, err := h.api.RevokeSecurityGroupEgress(ctx, &ec2.RevokeSecurityGroupEgressInput{
			GroupId:              aws.String(ref.Parent),
			SecurityGroupRuleIds: []string{ref.ID},
		})
		return err
	}

	_, err := h.api.RevokeSecurityGroupIngress(ctx, &ec2.RevokeSecurityGroupIngressInput{
		GroupId:              aws.String(ref.Parent),
		SecurityGroupRuleIds: []string{ref.ID},
	})

	return err
}

type securityGroups struct {
	api EC2API
}

func (h *securityGroups) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	groups, err := describeSecurityGroups(ctx, h.api, networkID)
	if err != nil {
		return nil, err
	}

	result := make([]resource.Ref, 0, len(groups))
	for _, g := range groups {
		name := aws.ToString(g.GroupName)

		result = append(result, resource.Ref{
			Kind:      resource.SecurityGroup,
			ID:        aws.ToString(g.GroupId),
			NetworkID: networkID,
			IsDefault: name == defaultSecurityGroupName,
			Attrs:     map[string]string{"name": name},
		})
	}

	return result, nil
}

func (h *securityGroups) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: aws.String(ref.ID),
	})

	return err
}
