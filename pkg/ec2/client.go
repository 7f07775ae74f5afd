// Package ec2 implements resource.Client on top of the EC2 API.
package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

// EC2API is the subset of the EC2 API needed to tear down a VPC.
// It is implemented by *ec2.Client.
type EC2API interface {
	ec2.DescribeVpcsAPIClient
	ec2.DescribeNatGatewaysAPIClient
	ec2.DescribeInternetGatewaysAPIClient
	ec2.DescribeRouteTablesAPIClient
	ec2.DescribeInstancesAPIClient
	ec2.DescribeSubnetsAPIClient
	ec2.DescribeSecurityGroupsAPIClient
	ec2.DescribeSecurityGroupRulesAPIClient
	ec2.DescribeNetworkAclsAPIClient
	ec2.DescribeVpcEndpointsAPIClient

	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput,
		optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)

	DeleteVpc(ctx context.Context, params *ec2.DeleteVpcInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteVpcOutput, error)
	DeleteNatGateway(ctx context.Context, params *ec2.DeleteNatGatewayInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteNatGatewayOutput, error)
	ReleaseAddress(ctx context.Context, params *ec2.ReleaseAddressInput,
		optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)
	DetachInternetGateway(ctx context.Context, params *ec2.DetachInternetGatewayInput,
		optFns ...func(*ec2.Options)) (*ec2.DetachInternetGatewayOutput, error)
	DeleteInternetGateway(ctx context.Context, params *ec2.DeleteInternetGatewayInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteInternetGatewayOutput, error)
	DisassociateRouteTable(ctx context.Context, params *ec2.DisassociateRouteTableInput,
		optFns ...func(*ec2.Options)) (*ec2.DisassociateRouteTableOutput, error)
	DeleteRouteTable(ctx context.Context, params *ec2.DeleteRouteTableInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteRouteTableOutput, error)
	TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput,
		optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
	DeleteSubnet(ctx context.Context, params *ec2.DeleteSubnetInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteSubnetOutput, error)
	RevokeSecurityGroupIngress(ctx context.Context, params *ec2.RevokeSecurityGroupIngressInput,
		optFns ...func(*ec2.Options)) (*ec2.RevokeSecurityGroupIngressOutput, error)
	RevokeSecurityGroupEgress(ctx context.Context, params *ec2.RevokeSecurityGroupEgressInput,
		optFns ...func(*ec2.Options)) (*ec2.RevokeSecurityGroupEgressOutput, error)
	DeleteSecurityGroup(ctx context.Context, params *ec2.DeleteSecurityGroupInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error)
	DeleteNetworkAclEntry(ctx context.Context, params *ec2.DeleteNetworkAclEntryInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteNetworkAclEntryOutput, error)
	DeleteNetworkAcl(ctx context.Context, params *ec2.DeleteNetworkAclInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteNetworkAclOutput, error)
	DeleteVpcEndpoints(ctx context.Context, params *ec2.DeleteVpcEndpointsInput,
		optFns ...func(*ec2.Options)) (*ec2.DeleteVpcEndpointsOutput, error)
}

// handler lists and deletes the resources of one kind.
type handler interface {
	list(ctx context.Context, networkID string) ([]resource.Ref, error)
	delete(ctx context.Context, ref resource.Ref) error
}

// stater is implemented by handlers of async kinds.
type stater interface {
	describeState(ctx context.Context, ref resource.Ref) (resource.State, error)
}

// Client implements resource.Client for the resources of a VPC.
type Client struct {
	handlers map[resource.Kind]handler
}

var _ resource.Client = (*Client)(nil)

// New returns a client that uses api for all calls.
func New(api EC2API) *Client {
	return &Client{
		handlers: map[resource.Kind]handler{
			resource.NatGateway:            &natGateways{api: api},
			resource.ElasticIp:             &elasticIps{api: api},
			resource.InternetGateway:       &internetGateways{api: api},
			resource.RouteTableAssociation: &routeTableAssociations{api: api},
			resource.RouteTable:            &routeTables{api: api},
			resource.Instance:              &instances{api: api},
			resource.Subnet:                &subnets{api: api},
			resource.SecurityGroupRule:     &securityGroupRules{api: api},
			resource.SecurityGroup:         &securityGroups{api: api},
			resource.NetworkAclEntry:       &networkAclEntries{api: api},
			resource.NetworkAcl:            &networkAcls{api: api},
			resource.VpcEndpoint:           &vpcEndpoints{api: api},
			resource.Network:               &vpcs{api: api},
		},
	}
}

// NewFromConfig returns a client for the region and credentials of cfg.
func NewFromConfig(cfg aws.Config) *Client {
	return New(ec2.NewFromConfig(cfg))
}

func (c *Client) handler(kind resource.Kind) (handler, error) {
	h, ok := c.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported resource type: %s", kind)
	}
	return h, nil
}

// List returns the current resources of kind in the VPC.
func (c *Client) List(ctx context.Context, kind resource.Kind, networkID string) ([]resource.Ref, error) {
	h, err := c.handler(kind)
	if err != nil {
		return nil, err
	}

	refs, err := h.list(ctx, networkID)
	if err != nil {
		return nil, classify(err)
	}

	return refs, nil
}

// Delete deletes a single resource.
func (c *Client) Delete(ctx context.Context, ref resource.Ref) error {
	h, err := c.handler(ref.Kind)
	if err != nil {
		return err
	}

	return classify(h.delete(ctx, ref))
}

// DescribeState returns the deletion state of a NAT gateway or an instance.
func (c *Client) DescribeState(ctx context.Context, ref resource.Ref) (resource.State, error) {
	h, err := c.handler(ref.Kind)
	if err != nil {
		return "", err
	}

	s, ok := h.(stater)
	if !ok {
		return "", fmt.Errorf("state of %s cannot be described", ref.Kind)
	}

	state, err := s.describeState(ctx, ref)
	if err != nil {
		return "", classify(err)
	}

	return state, nil
}

func vpcFilter(networkID string) []types.Filter {
	return []types.Filter{
		{
			Name:   aws.String("vpc-id"),
			Values: []string{networkID},
		},
	}
}
