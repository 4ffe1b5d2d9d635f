package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"ec2inventory/internal/secure"
	"ec2inventory/pkg/logging"
)

// SecretService retrieves secret payloads from AWS Secrets Manager
type SecretService struct {
	client SecretsManagerClientAPI
	logger logging.Logger
}

// NewSecretServiceWithConfig creates a new SecretService from a loaded AWS SDK configuration
func NewSecretServiceWithConfig(cfg aws.Config, logger logging.Logger) *SecretService {
	return NewSecretServiceWithClient(secretsmanager.NewFromConfig(cfg), logger)
}

// NewSecretServiceWithClient creates a new SecretService with a provided client
func NewSecretServiceWithClient(client SecretsManagerClientAPI, logger logging.Logger) *SecretService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &SecretService{
		client: client,
		logger: logger,
	}
}

// GetSecret fetches the current value of secretID. SecretString is preferred,
// SecretBinary is used when no string payload is stored.
func (s *SecretService) GetSecret(ctx context.Context, secretID string) (*secure.Secret, error) {
	if secretID == "" {
		return nil, NewAWSError(ErrInvalidInput, SecretsManagerResourceType, "", "secret identifier must not be empty", nil)
	}

	resp, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, ClassifyAWSError(
			fmt.Errorf("failed to get secret value %s: %w", secretID, err),
			SecretsManagerResourceType, secretID)
	}

	var payload []byte
	switch {
	case resp.SecretString != nil && *resp.SecretString != "":
		payload = []byte(*resp.SecretString)
	case len(resp.SecretBinary) > 0:
		payload = append([]byte(nil), resp.SecretBinary...)
	default:
		return nil, NewAWSError(ErrResourceNotFound, SecretsManagerResourceType, secretID, "secret has no value", nil)
	}

	secret, err := secure.NewSecret(payload)
	if err != nil {
		return nil, NewAWSError(ErrInternalError, SecretsManagerResourceType, secretID, "failed to protect secret value", err)
	}

	s.logger.Debug("Fetched secret %s (version %s)", secretID, aws.ToString(resp.VersionId))
	return secret, nil
}
