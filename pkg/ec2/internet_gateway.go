package ec2

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/jckuester/vpcsweeper/pkg/resource"
)

type internetGateways struct {
	api EC2API
}

func (h *internetGateways) list(ctx context.Context, networkID string) ([]resource.Ref, error) {
	var result []resource.Ref

	pg := ec2.NewDescribeInternetGatewaysPaginator(h.api, &ec2.DescribeInternetGatewaysInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("attachment.vpc-id"),
				Values: []string{networkID},
			},
		},
	})
	for pg.HasMorePages() {
		page, err := pg.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, gw := range page.InternetGateways {
			result = append(result, resource.Ref{
				Kind:      resource.InternetGateway,
				ID:        aws.ToString(gw.InternetGatewayId),
				NetworkID: networkID,
			})
		}
	}

	return result, nil
}

// delete detaches the gateway from the VPC first, if it is still attached.
func (h *internetGateways) delete(ctx context.Context, ref resource.Ref) error {
	_, err := h.api.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
		InternetGatewayId: aws.String(ref.ID),
		VpcId:             aws.String(ref.NetworkID),
	})
	if err != nil {
		var apiErr smithy.APIError
		if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "Gateway.NotAttached" {
			return err
		}
	} else {
		log.WithFields(log.Fields{
			"id":     ref.ID,
			"vpc_id": ref.NetworkID,
		}).Debug("detached internet gateway")
	}

	_, err = h.api.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
		InternetGatewayId: aws.String(ref.ID),
	})

	return err
}
