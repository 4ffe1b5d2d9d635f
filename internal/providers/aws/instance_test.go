package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ec2inventory/internal/models"
	"ec2inventory/internal/providers/aws/mocks"
	"ec2inventory/pkg/logging"
)

// newTestInstance builds an SDK instance with the given state and optional public IP
func newTestInstance(id string, state types.InstanceStateName, publicIP string) types.Instance {
	instance := types.Instance{
		InstanceId:       aws.String(id),
		InstanceType:     types.InstanceTypeT2Micro,
		PrivateIpAddress: aws.String("10.0.0.10"),
		State:            &types.InstanceState{Name: state},
		Tags: []types.Tag{
			{Key: aws.String("Name"), Value: aws.String("ansible_vm1")},
		},
	}
	if publicIP != "" {
		instance.PublicIpAddress = aws.String(publicIP)
	}
	return instance
}

func tagFilterMatches(tagKey string, tagValues []string) func(*ec2.DescribeInstancesInput) bool {
	return func(input *ec2.DescribeInstancesInput) bool {
		return len(input.Filters) == 1 &&
			aws.ToString(input.Filters[0].Name) == "tag:"+tagKey &&
			assert.ObjectsAreEqual(tagValues, input.Filters[0].Values)
	}
}

func TestListRunningInstances_FiltersRunning(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	tagValues := []string{"ansible_vm1", "ansible_vm2"}

	launched := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	running := newTestInstance("i-1", types.InstanceStateNameRunning, "1.2.3.4")
	running.LaunchTime = aws.Time(launched)

	resp := &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{
				Instances: []types.Instance{
					running,
					newTestInstance("i-2", types.InstanceStateNameStopped, "9.9.9.9"),
				},
			},
			{
				Instances: []types.Instance{
					newTestInstance("i-3", types.InstanceStateNameRunning, ""),
					newTestInstance("i-4", types.InstanceStateNameRunning, "5.6.7.8"),
				},
			},
		},
	}

	mockClient.On("DescribeInstances", mock.Anything, mock.MatchedBy(tagFilterMatches("Name", tagValues))).
		Return(resp, nil).Once()

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	instances, err := service.ListRunningInstances(context.Background(), "Name", tagValues)

	require.NoError(t, err)
	require.Len(t, instances, 3)
	assert.Equal(t, "i-1", instances[0].InstanceID)
	assert.Equal(t, "i-3", instances[1].InstanceID, "running instance without public IP is kept")
	assert.Equal(t, "i-4", instances[2].InstanceID)

	assert.Equal(t, models.InstanceStateRunning, instances[0].State)
	assert.Equal(t, "t2.micro", instances[0].InstanceType)
	assert.Equal(t, "10.0.0.10", instances[0].PrivateIP)
	assert.Equal(t, "ansible_vm1", instances[0].Tags["Name"])
	require.NotNil(t, instances[0].LaunchTime)
	assert.True(t, launched.Equal(*instances[0].LaunchTime))
}

func TestListRunningInstances_FollowsNextToken(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)

	firstPage := &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{Instances: []types.Instance{newTestInstance("i-1", types.InstanceStateNameRunning, "1.2.3.4")}},
		},
		NextToken: aws.String("page-2"),
	}
	secondPage := &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{Instances: []types.Instance{newTestInstance("i-2", types.InstanceStateNameRunning, "5.6.7.8")}},
		},
	}

	mockClient.On("DescribeInstances", mock.Anything, mock.MatchedBy(func(input *ec2.DescribeInstancesInput) bool {
		return input.NextToken == nil
	})).Return(firstPage, nil).Once()
	mockClient.On("DescribeInstances", mock.Anything, mock.MatchedBy(func(input *ec2.DescribeInstancesInput) bool {
		return aws.ToString(input.NextToken) == "page-2"
	})).Return(secondPage, nil).Once()

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	instances, err := service.ListRunningInstances(context.Background(), "Name", []string{"ansible_vm1"})

	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "1.2.3.4", instances[0].PublicIP)
	assert.Equal(t, "5.6.7.8", instances[1].PublicIP)
}

func TestListRunningInstances_NoMatches(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)
	mockClient.On("DescribeInstances", mock.Anything, mock.Anything).
		Return(&ec2.DescribeInstancesOutput{}, nil).Once()

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	instances, err := service.ListRunningInstances(context.Background(), "Name", []string{"ansible_vm1"})

	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestListRunningInstances_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		tagKey    string
		tagValues []string
	}{
		{name: "Empty tag key", tagKey: "", tagValues: []string{"ansible_vm1"}},
		{name: "No tag values", tagKey: "Name", tagValues: nil},
		{name: "Empty tag value", tagKey: "Name", tagValues: []string{"ansible_vm1", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: the client must not be called
			mockClient := mocks.NewEC2ClientAPI(t)
			service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())

			instances, err := service.ListRunningInstances(context.Background(), tt.tagKey, tt.tagValues)

			assert.Nil(t, instances)
			assert.True(t, IsErrorCategory(err, ErrInvalidInput))
		})
	}
}

func TestListRunningInstances_AWSError(t *testing.T) {
	mockClient := mocks.NewEC2ClientAPI(t)

	expectedError := errors.New("UnauthorizedOperation: You are not authorized to perform this operation")
	mockClient.On("DescribeInstances", mock.Anything, mock.Anything).Return(nil, expectedError).Once()

	service := NewInstanceServiceWithClient(mockClient, logging.NewMockLogger())
	instances, err := service.ListRunningInstances(context.Background(), "Name", []string{"ansible_vm1"})

	assert.Nil(t, instances)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedError, "the SDK error must stay reachable")

	var awsErr *Error
	require.True(t, errors.As(err, &awsErr))
	assert.Equal(t, ErrPermissionDenied, awsErr.Category)
	assert.Equal(t, EC2ResourceType, awsErr.ResourceType)
	assert.Equal(t, "tag:Name", awsErr.ResourceID)
}
