package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambda "github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// LambdaRepository encapsula as operações de permissão da AWS Lambda.
type LambdaRepository struct {
	Client *client.AWSClient
}

// AddPermission adiciona o statement de invocação. Um statement com o mesmo id
// devolve um erro que satisfaz errors.Is(err, ErrAlreadyExists).
func (r *LambdaRepository) AddPermission(ctx context.Context, grant types.PermissionGrant) error {
	input := &lambda.AddPermissionInput{
		FunctionName: aws.String(grant.Resource),
		StatementId:  aws.String(grant.StatementID),
		Action:       aws.String(grant.Action),
		Principal:    aws.String(grant.Principal),
	}
	if grant.Qualifier != "" {
		input.Qualifier = aws.String(grant.Qualifier)
	}

	_, err := r.Client.Lambda.AddPermission(ctx, input)
	if err != nil {
		if isAPIErrorCode(err, "ResourceConflictException") {
			return fmt.Errorf("AddPermission %s: %w", grant.StatementID, classify(ErrAlreadyExists, err))
		}
		return fmt.Errorf("AddPermission %s: %w", grant.StatementID, err)
	}
	return nil
}

// RemovePermission remove o statement. A ausência do statement devolve um erro
// que satisfaz errors.Is(err, ErrNotFound).
func (r *LambdaRepository) RemovePermission(ctx context.Context, functionArn, statementID, qualifier string) error {
	input := &lambda.RemovePermissionInput{
		FunctionName: aws.String(functionArn),
		StatementId:  aws.String(statementID),
	}
	if qualifier != "" {
		input.Qualifier = aws.String(qualifier)
	}

	_, err := r.Client.Lambda.RemovePermission(ctx, input)
	if err != nil {
		if isAPIErrorCode(err, "ResourceNotFoundException") {
			return fmt.Errorf("RemovePermission %s: %w", statementID, classify(ErrNotFound, err))
		}
		return fmt.Errorf("RemovePermission %s: %w", statementID, err)
	}
	return nil
}
