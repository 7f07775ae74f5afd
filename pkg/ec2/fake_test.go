package ec2_test

import (
	"context"
	"sync"

	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
)

// fakeEC2 returns canned describe outputs and records the inputs of all other calls.
type fakeEC2 struct {
	mu sync.Mutex

	vpcs               []types.Vpc
	natGateways        []types.NatGateway
	addresses          []types.Address
	internetGateways   []types.InternetGateway
	routeTables        []types.RouteTable
	instances          []types.Instance
	subnets            []types.Subnet
	securityGroups     []types.SecurityGroup
	securityGroupRules []types.SecurityGroupRule
	networkAcls        []types.NetworkAcl
	vpcEndpoints       []types.VpcEndpoint

	unsuccessfulEndpoints []types.UnsuccessfulItem

	// errs maps an operation name to the error it returns
	errs map[string]error

	calls  []string
	inputs []interface{}
}

func newFakeEC2() *fakeEC2 {
	return &fakeEC2{errs: map[string]error{}}
}

func apiErr(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "message of " + code}
}

func (f *fakeEC2) record(op string, input interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, op)
	f.inputs = append(f.inputs, input)

	return f.errs[op]
}

func (f *fakeEC2) lastInput() interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.inputs[len(f.inputs)-1]
}

func (f *fakeEC2) DescribeVpcs(_ context.Context, in *awsec2.DescribeVpcsInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error) {
	if err := f.record("DescribeVpcs", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeVpcsOutput{Vpcs: f.vpcs}, nil
}

func (f *fakeEC2) DescribeNatGateways(_ context.Context, in *awsec2.DescribeNatGatewaysInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeNatGatewaysOutput, error) {
	if err := f.record("DescribeNatGateways", in); err != nil {
		return nil, err
	}

	if len(in.NatGatewayIds) == 0 {
		return &awsec2.DescribeNatGatewaysOutput{NatGateways: f.natGateways}, nil
	}

	var result []types.NatGateway
	for _, gw := range f.natGateways {
		for _, id := range in.NatGatewayIds {
			if *gw.NatGatewayId == id {
				result = append(result, gw)
			}
		}
	}
	return &awsec2.DescribeNatGatewaysOutput{NatGateways: result}, nil
}

func (f *fakeEC2) DescribeAddresses(_ context.Context, in *awsec2.DescribeAddressesInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeAddressesOutput, error) {
	if err := f.record("DescribeAddresses", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeAddressesOutput{Addresses: f.addresses}, nil
}

func (f *fakeEC2) DescribeInternetGateways(_ context.Context, in *awsec2.DescribeInternetGatewaysInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeInternetGatewaysOutput, error) {
	if err := f.record("DescribeInternetGateways", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeInternetGatewaysOutput{InternetGateways: f.internetGateways}, nil
}

func (f *fakeEC2) DescribeRouteTables(_ context.Context, in *awsec2.DescribeRouteTablesInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error) {
	if err := f.record("DescribeRouteTables", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeRouteTablesOutput{RouteTables: f.routeTables}, nil
}

func (f *fakeEC2) DescribeInstances(_ context.Context, in *awsec2.DescribeInstancesInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error) {
	if err := f.record("DescribeInstances", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: f.instances}},
	}, nil
}

func (f *fakeEC2) DescribeSubnets(_ context.Context, in *awsec2.DescribeSubnetsInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error) {
	if err := f.record("DescribeSubnets", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeSubnetsOutput{Subnets: f.subnets}, nil
}

func (f *fakeEC2) DescribeSecurityGroups(_ context.Context, in *awsec2.DescribeSecurityGroupsInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error) {
	if err := f.record("DescribeSecurityGroups", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeSecurityGroupsOutput{SecurityGroups: f.securityGroups}, nil
}

func (f *fakeEC2) DescribeSecurityGroupRules(_ context.Context, in *awsec2.DescribeSecurityGroupRulesInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupRulesOutput, error) {
	if err := f.record("DescribeSecurityGroupRules", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeSecurityGroupRulesOutput{SecurityGroupRules: f.securityGroupRules}, nil
}

func (f *fakeEC2) DescribeNetworkAcls(_ context.Context, in *awsec2.DescribeNetworkAclsInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeNetworkAclsOutput, error) {
	if err := f.record("DescribeNetworkAcls", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeNetworkAclsOutput{NetworkAcls: f.networkAcls}, nil
}

func (f *fakeEC2) DescribeVpcEndpoints(_ context.Context, in *awsec2.DescribeVpcEndpointsInput,
	_ ...func(*awsec2.Options)) (*awsec2.DescribeVpcEndpointsOutput, error) {
	if err := f.record("DescribeVpcEndpoints", in); err != nil {
		return nil, err
	}
	return &awsec2.DescribeVpcEndpointsOutput{VpcEndpoints: f.vpcEndpoints}, nil
}

func (f *fakeEC2) DeleteVpc(_ context.Context, in *awsec2.DeleteVpcInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteVpcOutput, error) {
	return &awsec2.DeleteVpcOutput{}, f.record("DeleteVpc", in)
}

func (f *fakeEC2) DeleteNatGateway(_ context.Context, in *awsec2.DeleteNatGatewayInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteNatGatewayOutput, error) {
	return &awsec2.DeleteNatGatewayOutput{}, f.record("DeleteNatGateway", in)
}

func (f *fakeEC2) ReleaseAddress(_ context.Context, in *awsec2.ReleaseAddressInput,
	_ ...func(*awsec2.Options)) (*awsec2.ReleaseAddressOutput, error) {
	return &awsec2.ReleaseAddressOutput{}, f.record("ReleaseAddress", in)
}

func (f *fakeEC2) DetachInternetGateway(_ context.Context, in *awsec2.DetachInternetGatewayInput,
	_ ...func(*awsec2.Options)) (*awsec2.DetachInternetGatewayOutput, error) {
	return &awsec2.DetachInternetGatewayOutput{}, f.record("DetachInternetGateway", in)
}

func (f *fakeEC2) DeleteInternetGateway(_ context.Context, in *awsec2.DeleteInternetGatewayInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteInternetGatewayOutput, error) {
	return &awsec2.DeleteInternetGatewayOutput{}, f.record("DeleteInternetGateway", in)
}

func (f *fakeEC2) DisassociateRouteTable(_ context.Context, in *awsec2.DisassociateRouteTableInput,
	_ ...func(*awsec2.Options)) (*awsec2.DisassociateRouteTableOutput, error) {
	return &awsec2.DisassociateRouteTableOutput{}, f.record("DisassociateRouteTable", in)
}

func (f *fakeEC2) DeleteRouteTable(_ context.Context, in *awsec2.DeleteRouteTableInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteRouteTableOutput, error) {
	return &awsec2.DeleteRouteTableOutput{}, f.record("DeleteRouteTable", in)
}

func (f *fakeEC2) TerminateInstances(_ context.Context, in *awsec2.TerminateInstancesInput,
	_ ...func(*awsec2.Options)) (*awsec2.TerminateInstancesOutput, error) {
	return &awsec2.TerminateInstancesOutput{}, f.record("TerminateInstances", in)
}

func (f *fakeEC2) DeleteSubnet(_ context.Context, in *awsec2.DeleteSubnetInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteSubnetOutput, error) {
	return &awsec2.DeleteSubnetOutput{}, f.record("DeleteSubnet", in)
}

func (f *fakeEC2) RevokeSecurityGroupIngress(_ context.Context, in *awsec2.RevokeSecurityGroupIngressInput,
	_ ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupIngressOutput, error) {
	return &awsec2.RevokeSecurityGroupIngressOutput{}, f.record("RevokeSecurityGroupIngress", in)
}

func (f *fakeEC2) RevokeSecurityGroupEgress(_ context.Context, in *awsec2.RevokeSecurityGroupEgressInput,
	_ ...func(*awsec2.Options)) (*awsec2.RevokeSecurityGroupEgressOutput, error) {
	return &awsec2.RevokeSecurityGroupEgressOutput{}, f.record("RevokeSecurityGroupEgress", in)
}

func (f *fakeEC2) DeleteSecurityGroup(_ context.Context, in *awsec2.DeleteSecurityGroupInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteSecurityGroupOutput, error) {
	return &awsec2.DeleteSecurityGroupOutput{}, f.record("DeleteSecurityGroup", in)
}

func (f *fakeEC2) DeleteNetworkAclEntry(_ context.Context, in *awsec2.DeleteNetworkAclEntryInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteNetworkAclEntryOutput, error) {
	return &awsec2.DeleteNetworkAclEntryOutput{}, f.record("DeleteNetworkAclEntry", in)
}

func (f *fakeEC2) DeleteNetworkAcl(_ context.Context, in *awsec2.DeleteNetworkAclInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteNetworkAclOutput, error) {
	return &awsec2.DeleteNetworkAclOutput{}, f.record("DeleteNetworkAcl", in)
}

func (f *fakeEC2) DeleteVpcEndpoints(_ context.Context, in *awsec2.DeleteVpcEndpointsInput,
	_ ...func(*awsec2.Options)) (*awsec2.DeleteVpcEndpointsOutput, error) {
	if err := f.record("DeleteVpcEndpoints", in); err != nil {
		return nil, err
	}
	return &awsec2.DeleteVpcEndpointsOutput{Unsuccessful: f.unsuccessfulEndpoints}, nil
}
