package ec2

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

// defaultRuleNumber is the lowest number of the implicit deny-all entries (32767 for IPv4,
// 32768 for IPv6), which cannot be deleted.
const defaultRuleNumber = 32767

func describeNetworkAcls(ctx context.Context, api EC2API, networkID string) ([]types.NetworkAcl, error) {
	var result []types.NetworkAcl

	pg := ec2.NewDescribeNetworkAclsPaginator(api, &ec2.DescribeNetworkAclsInput{
		Filters: vpcFilter(networkID),
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		result = append(result, page.NetworkAcls...)
	}

	return result, nil
}

type networkAclEntries struct {
	api EC2API
}

// list returns the inbound entries of each ACL before its outbound entries.
func (h *networkAclEntries) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	acls, err := describeNetworkAcls(ctx, h.api, networkID)
	if err != nil {
		return nil, err
	}

	var result []resource.Ref
	for _, acl := range acls {
		aclID := aws.ToString(acl.NetworkAclId)

		for _, egress := range []bool{false, true} {
			for _, entry := range acl.Entries {
				ruleNumber := aws.ToInt32(entry.RuleNumber)
				if aws.ToBool(entry.Egress) != egress || ruleNumber >= defaultRuleNumber {
					continue
				}

				result = append(result, resource.Ref{
					Kind:      resource.NetworkAclEntry,
					ID:        networkAclEntryID(aclID, egress, ruleNumber),
					NetworkID: networkID,
					Parent:    aclID,
					Attrs: map[string]string{
						"egress":      strconv.FormatBool(egress),
						"rule_number": strconv.Itoa(int(ruleNumber)),
					},
				})
			}
		}
	}

	return result, nil
}

func networkAclEntryID(aclID string, egress bool, ruleNumber int32) string {
	direction := "ingress"
	if egress {
		direction = "egress"
	}
	return fmt.Sprintf("%s:%s:%d", aclID, direction, ruleNumber)
}

func (h *networkAclEntries) delete(ctx context.Context, ref resource.Ref) error {
	ruleNumber, err := strconv.ParseInt(ref.Attrs["rule_number"], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid rule number of %s: %w", ref.ID, err)
	}

	_, err = h.api.DeleteNetworkAclEntry(ctx, &ec2.DeleteNetworkAclEntryInput{
		NetworkAclId: aws.String(ref.Parent),
		RuleNumber:   aws.Int32(int32(ruleNumber)),
		Egress:       aws.Bool(ref.Attrs["egress"] == "true"),
	})

	return err
}

type networkAcls struct {
	api EC2API
}

func (h *networkAcls) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	acls, err := describeNetworkAcls(ctx, h.api, networkID)
	if err != nil {
		return nil, err
	}

	result := make([]resource.Ref, 0, len(acls))
	for _, acl := range acls {
		result = append(result, resource.Ref{
			Kind:      resource.NetworkAcl,
			ID:        aws.ToString(acl.NetworkAclId),
			NetworkID: networkID,
			IsDefault: aws.ToBool(acl.IsDefault),
		})
	}

	return result, nil
}

func (h *networkAcls) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DeleteNetworkAcl(ctx, &ec2.DeleteNetworkAclInput{
		NetworkAclId: aws.String(ref.ID),
	})

	return err
}
