package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	lambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	sts "github.com/aws/aws-sdk-go-v2/service/sts"
)

// LambdaAPI é o subconjunto do cliente Lambda usado pelo reconciliador de permissões.
type LambdaAPI interface {
	AddPermission(ctx context.Context, params *lambda.AddPermissionInput, optFns ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error)
	RemovePermission(ctx context.Context, params *lambda.RemovePermissionInput, optFns ...func(*lambda.Options)) (*lambda.RemovePermissionOutput, error)
}

// LogsAPI é o subconjunto do cliente CloudWatch Logs usado pelas assinaturas.
type LogsAPI interface {
	CreateLogGroup(ctx context.Context, params *cw.CreateLogGroupInput, optFns ...func(*cw.Options)) (*cw.CreateLogGroupOutput, error)
	PutSubscriptionFilter(ctx context.Context, params *cw.PutSubscriptionFilterInput, optFns ...func(*cw.Options)) (*cw.PutSubscriptionFilterOutput, error)
}

// STSAPI resolve a conta das credenciais em uso.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// S3API grava o relatório da execução.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	_ LambdaAPI = (*lambda.Client)(nil)
	_ LogsAPI   = (*cw.Client)(nil)
	_ STSAPI    = (*sts.Client)(nil)
	_ S3API     = (*s3.Client)(nil)
)

// AWSClient contém clientes e informações de configuração AWS de um scope.
type AWSClient struct {
	Config  aws.Config
	Lambda  LambdaAPI
	CWLogs  LogsAPI
	STS     STSAPI
	S3      S3API
	Region  string
	Profile string

	mu        sync.Mutex
	accountID string
}

// New cria um novo AWSClient para a região e o profile fornecidos.
// Profile vazio usa a cadeia padrão de credenciais.
func New(ctx context.Context, region, profile string) (*AWSClient, error) {
	var opts []func(*config.LoadOptions) error
	if strings.TrimSpace(region) != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if strings.TrimSpace(profile) != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &AWSClient{
		Config:  cfg,
		Lambda:  lambda.NewFromConfig(cfg),
		CWLogs:  cw.NewFromConfig(cfg),
		STS:     sts.NewFromConfig(cfg),
		S3:      s3.NewFromConfig(cfg),
		Region:  cfg.Region,
		Profile: profile,
	}, nil
}

// AccountID devolve a conta das credenciais, consultando o STS uma única vez.
func (c *AWSClient) AccountID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accountID != "" {
		return c.accountID, nil
	}
	id, err := getAccountID(ctx, c.STS)
	if err != nil {
		return "", err
	}
	c.accountID = id
	return id, nil
}

// SetAccountID fixa a conta, dispensando a chamada ao STS.
func (c *AWSClient) SetAccountID(id string) {
	c.mu.Lock()
	c.accountID = id
	c.mu.Unlock()
}

func getAccountID(ctx context.Context, stsClient STSAPI) (string, error) {
	if stsClient == nil {
		return "", fmt.Errorf("getting account ID: sts client not configured")
	}
	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("getting account ID: %w", err)
	}
	account := aws.ToString(result.Account)
	if account == "" {
		return "", fmt.Errorf("getting account ID: empty account in caller identity")
	}
	return account, nil
}
