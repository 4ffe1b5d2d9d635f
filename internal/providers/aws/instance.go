package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"ec2inventory/internal/models"
	"ec2inventory/pkg/logging"
)

// InstanceService handles interactions with AWS EC2 instances
type InstanceService struct {
	client EC2ClientAPI
	logger logging.Logger
}

// NewInstanceServiceWithConfig creates a new InstanceService from a loaded AWS SDK configuration
func NewInstanceServiceWithConfig(cfg aws.Config, logger logging.Logger) *InstanceService {
	return NewInstanceServiceWithClient(ec2.NewFromConfig(cfg), logger)
}

// NewInstanceServiceWithClient creates a new InstanceService with a provided client
func NewInstanceServiceWithClient(client EC2ClientAPI, logger logging.Logger) *InstanceService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &InstanceService{
		client: client,
		logger: logger,
	}
}

// ListRunningInstances returns every running instance whose tag tagKey has one of tagValues,
// in the order the API returned them. Instances without a public IP are kept.
func (s *InstanceService) ListRunningInstances(ctx context.Context, tagKey string, tagValues []string) ([]models.Instance, error) {
	if err := validateTagFilter(tagKey, tagValues); err != nil {
		return nil, err
	}

	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("tag:" + tagKey),
				Values: tagValues,
			},
		},
	}

	var instances []models.Instance
	var seen int
	for {
		resp, err := s.client.DescribeInstances(ctx, input)
		if err != nil {
			return nil, ClassifyAWSError(
				fmt.Errorf("failed to describe EC2 instances tagged %s: %w", tagKey, err),
				EC2ResourceType, "tag:"+tagKey)
		}

		for _, reservation := range resp.Reservations {
			for _, instance := range reservation.Instances {
				seen++
				details := convertInstance(instance)
				if !details.IsRunning() {
					s.logger.Debug("Skipping instance %s in state %q", details.InstanceID, details.State)
					continue
				}
				instances = append(instances, details)
			}
		}

		if aws.ToString(resp.NextToken) == "" {
			break
		}
		input.NextToken = resp.NextToken
	}

	s.logger.Debug("Matched %d instances for tag %s, %d running", seen, tagKey, len(instances))
	return instances, nil
}

func validateTagFilter(tagKey string, tagValues []string) error {
	if tagKey == "" {
		return NewAWSError(ErrInvalidInput, EC2ResourceType, "", "tag key must not be empty", nil)
	}
	if len(tagValues) == 0 {
		return NewAWSError(ErrInvalidInput, EC2ResourceType, "tag:"+tagKey, "at least one tag value is required", nil)
	}
	for _, v := range tagValues {
		if v == "" {
			return NewAWSError(ErrInvalidInput, EC2ResourceType, "tag:"+tagKey, "tag values must not be empty", nil)
		}
	}
	return nil
}

// convertInstance converts an AWS SDK instance to the domain model
func convertInstance(instance types.Instance) models.Instance {
	details := models.Instance{
		InstanceID:   aws.ToString(instance.InstanceId),
		PublicIP:     aws.ToString(instance.PublicIpAddress),
		PrivateIP:    aws.ToString(instance.PrivateIpAddress),
		InstanceType: string(instance.InstanceType),
		LaunchTime:   instance.LaunchTime,
		Tags:         convertTags(instance.Tags),
	}
	if instance.State != nil {
		details.State = string(instance.State.Name)
	}
	return details
}

// convertTags converts AWS SDK tags to a map
func convertTags(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}

	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil && tag.Value != nil {
			result[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}
	return result
}
