package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// CWLogsRepository encapsula operações da AWS CloudWatch Logs.
type CWLogsRepository struct {
	Client *client.AWSClient
}

// CreateLogGroup cria o Log Group. Um grupo já existente devolve um erro
// que satisfaz errors.Is(err, ErrAlreadyExists).
func (r *CWLogsRepository) CreateLogGroup(ctx context.Context, name string) error {
	_, err := r.Client.CWLogs.CreateLogGroup(ctx, &cw.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		if isAPIErrorCode(err, "ResourceAlreadyExistsException", "ResourceAlreadyExists") {
			return fmt.Errorf("CreateLogGroup %s: %w", name, classify(ErrAlreadyExists, err))
		}
		return fmt.Errorf("CreateLogGroup %s: %w", name, err)
	}
	return nil
}

// PutSubscriptionFilter cria ou substitui o filtro com o mesmo nome no log group.
func (r *CWLogsRepository) PutSubscriptionFilter(ctx context.Context, f types.SubscriptionFilter) error {
	_, err := r.Client.CWLogs.PutSubscriptionFilter(ctx, &cw.PutSubscriptionFilterInput{
		LogGroupName:   aws.String(f.LogGroupName),
		FilterName:     aws.String(f.FilterName),
		FilterPattern:  aws.String(f.FilterPattern),
		DestinationArn: aws.String(f.DestinationArn),
	})
	if err != nil {
		if isAPIErrorCode(err, "ResourceNotFoundException") {
			return fmt.Errorf("PutSubscriptionFilter %s: %w", f.LogGroupName, classify(ErrNotFound, err))
		}
		return fmt.Errorf("PutSubscriptionFilter %s: %w", f.LogGroupName, err)
	}
	return nil
}
