package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"ec2inventory/internal/models"
	"ec2inventory/internal/secure"
)

// EC2ClientAPI defines the interface for EC2 operations we need to mock
//
//go:generate mockery --name=EC2ClientAPI --output=./mocks
type EC2ClientAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// SecretsManagerClientAPI defines the interface for Secrets Manager operations we need to mock
//
//go:generate mockery --name=SecretsManagerClientAPI --output=./mocks
type SecretsManagerClientAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// InstanceServiceAPI defines the interface for instance operations
//
//go:generate mockery --name=InstanceServiceAPI --output=./mocks
type InstanceServiceAPI interface {
	ListRunningInstances(ctx context.Context, tagKey string, tagValues []string) ([]models.Instance, error)
}

// SecretServiceAPI defines the interface for secret retrieval
//
//go:generate mockery --name=SecretServiceAPI --output=./mocks
type SecretServiceAPI interface {
	GetSecret(ctx context.Context, secretID string) (*secure.Secret, error)
}
