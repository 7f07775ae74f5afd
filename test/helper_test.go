package test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/jckuester/vpcsweeper/pkg/ec2"
	"github.com/jckuester/vpcsweeper/pkg/resource"
	"github.com/onsi/gomega/gexec"
	"github.com/stretchr/testify/require"
)

const (
	packagePath = "github.com/jckuester/vpcsweeper"

	// profile is used as profile for the test account if not overwritten by TEST_AWS_PROFILE.
	profile = "myaccount1"
	// region is used as test region if not overwritten by TEST_AWS_REGION.
	region = "us-west-2"
)

// EnvVars contains environment variables for tests.
type EnvVars struct {
	AWSProfile string
	AWSRegion  string
	EC2        *awsec2.Client
}

// InitEnv skips the test unless acceptance tests are enabled via TEST_ACC
// and returns a client for the test account.
func InitEnv(t *testing.T) EnvVars {
	t.Helper()

	if testing.Short() || os.Getenv("TEST_ACC") == "" {
		t.Skip("Skipping acceptance test (set TEST_ACC to run it against a real AWS account).")
	}

	profile := getEnvOrDefault(t, "TEST_AWS_PROFILE", profile)
	region := getEnvOrDefault(t, "TEST_AWS_REGION", region)

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithSharedConfigProfile(profile),
		config.WithRegion(region))
	require.NoError(t, err)

	return EnvVars{
		AWSProfile: profile,
		AWSRegion:  region,
		EC2:        awsec2.NewFromConfig(cfg),
	}
}

func getEnvOrDefault(t *testing.T, envName, defaultValue string) string {
	varValue := os.Getenv(envName)
	if varValue == "" {
		varValue = defaultValue

		t.Logf("env %s not set, therefore using the following default value: %s",
			envName, defaultValue)
	}
	return varValue
}

func runBinary(t *testing.T, env EnvVars, userInput string, args ...string) (*bytes.Buffer, error) {
	defer gexec.CleanupBuildArtifacts()

	compiledPath, err := gexec.Build(packagePath)
	require.NoError(t, err)

	args = append([]string{"--profile", env.AWSProfile, "--region", env.AWSRegion}, args...)

	logBuffer := &bytes.Buffer{}

	p := exec.Command(compiledPath, args...)
	p.Stdin = strings.NewReader(userInput)
	p.Stdout = logBuffer
	p.Stderr = logBuffer

	err = p.Run()

	return logBuffer, err
}

// createVpc creates a VPC with a subnet, an attached internet gateway, a route table
// associated with the subnet, and a security group with an ingress rule.
func createVpc(t *testing.T, env EnvVars) string {
	t.Helper()

	ctx := context.Background()

	vpc, err := env.EC2.CreateVpc(ctx, &awsec2.CreateVpcInput{
		CidrBlock: aws.String("10.1.0.0/16"),
		TagSpecifications: []types.TagSpecification{{
			ResourceType: types.ResourceTypeVpc,
			Tags:         []types.Tag{{Key: aws.String("Name"), Value: aws.String("vpcsweeper-testacc")}},
		}},
	})
	require.NoError(t, err)

	vpcID := aws.ToString(vpc.Vpc.VpcId)

	err = awsec2.NewVpcAvailableWaiter(env.EC2).Wait(ctx,
		&awsec2.DescribeVpcsInput{VpcIds: []string{vpcID}}, 2*time.Minute)
	require.NoError(t, err)

	subnet, err := env.EC2.CreateSubnet(ctx, &awsec2.CreateSubnetInput{
		VpcId:     aws.String(vpcID),
		CidrBlock: aws.String("10.1.1.0/24"),
	})
	require.NoError(t, err)

	igw, err := env.EC2.CreateInternetGateway(ctx, &awsec2.CreateInternetGatewayInput{})
	require.NoError(t, err)

	_, err = env.EC2.AttachInternetGateway(ctx, &awsec2.AttachInternetGatewayInput{
		InternetGatewayId: igw.InternetGateway.InternetGatewayId,
		VpcId:             aws.String(vpcID),
	})
	require.NoError(t, err)

	rtb, err := env.EC2.CreateRouteTable(ctx, &awsec2.CreateRouteTableInput{VpcId: aws.String(vpcID)})
	require.NoError(t, err)

	_, err = env.EC2.AssociateRouteTable(ctx, &awsec2.AssociateRouteTableInput{
		RouteTableId: rtb.RouteTable.RouteTableId,
		SubnetId:     subnet.Subnet.SubnetId,
	})
	require.NoError(t, err)

	sg, err := env.EC2.CreateSecurityGroup(ctx, &awsec2.CreateSecurityGroupInput{
		GroupName:   aws.String("vpcsweeper-testacc"),
		Description: aws.String("vpcsweeper acceptance test"),
		VpcId:       aws.String(vpcID),
	})
	require.NoError(t, err)

	_, err = env.EC2.AuthorizeSecurityGroupIngress(ctx, &awsec2.AuthorizeSecurityGroupIngressInput{
		GroupId:    sg.GroupId,
		IpProtocol: aws.String("tcp"),
		FromPort:   aws.Int32(443),
		ToPort:     aws.Int32(443),
		CidrIp:     aws.String("10.0.0.0/8"),
	})
	require.NoError(t, err)

	return vpcID
}

// destroyVpc removes whatever a failed test left behind.
func destroyVpc(t *testing.T, env EnvVars, vpcID string) {
	_, err := resource.NewTeardown(ec2.New(env.EC2)).Run(context.Background(), vpcID)
	if err != nil && !errors.Is(err, resource.ErrNetworkNotFound) {
		t.Logf("failed to clean up %s: %s", vpcID, err)
	}
}

func vpcExists(t *testing.T, env EnvVars, id string) bool {
	resp, err := env.EC2.DescribeVpcs(context.Background(), &awsec2.DescribeVpcsInput{
		VpcIds: []string{id},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidVpcID.NotFound" {
			return false
		}
		t.Fatal(err)
	}

	return len(resp.Vpcs) > 0
}
