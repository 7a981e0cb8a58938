// Package awsfake implementa em memória as APIs Lambda, CloudWatch Logs, STS e S3
// usadas pelo reconciliador, com a mesma semântica de erros da AWS.
package awsfake

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	lambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	sts "github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// Statement é uma permissão registrada na função.
type Statement struct {
	FunctionName string
	StatementID  string
	Qualifier    string
	Principal    string
	Action       string
}

// Cloud guarda o estado remoto simulado.
type Cloud struct {
	Account string

	// Falhas injetadas. Quando presentes, substituem o comportamento normal.
	AddPermissionErr    error
	RemovePermissionErr error
	CreateLogGroupErr   map[string]error
	PutFilterErr        map[string]error
	PutObjectErr        error
	CallerIdentityErr   error

	mu         sync.Mutex
	statements map[string]Statement
	groups     map[string]bool
	filters    map[string]map[string]types.SubscriptionFilter
	objects    map[string][]byte
	calls      []string
	stsCalls   int
}

// New cria uma nuvem vazia para a conta informada.
func New(account string) *Cloud {
	return &Cloud{
		Account:           account,
		CreateLogGroupErr: map[string]error{},
		PutFilterErr:      map[string]error{},
		statements:        map[string]Statement{},
		groups:            map[string]bool{},
		filters:           map[string]map[string]types.SubscriptionFilter{},
		objects:           map[string][]byte{},
	}
}

// Client monta um AWSClient apontando todas as APIs para esta nuvem.
func (c *Cloud) Client(region string) *client.AWSClient {
	return &client.AWSClient{
		Lambda: lambdaAPI{c},
		CWLogs: logsAPI{c},
		STS:    stsAPI{c},
		S3:     s3API{c},
		Region: region,
	}
}

// Factory devolve um client.Factory ligado a esta nuvem.
func (c *Cloud) Factory() client.Factory {
	return func(_ context.Context, region, _ string) (*client.AWSClient, error) {
		return c.Client(region), nil
	}
}

// AddLogGroup cria um log group previamente existente.
func (c *Cloud) AddLogGroup(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups[name] = true
}

// AddStatement registra uma permissão previamente existente.
func (c *Cloud) AddStatement(s Statement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statements[statementKey(s.FunctionName, s.Qualifier, s.StatementID)] = s
}

// Statements devolve as permissões atuais.
func (c *Cloud) Statements() []Statement {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Statement, 0, len(c.statements))
	for _, s := range c.statements {
		out = append(out, s)
	}
	return out
}

// HasLogGroup informa se o log group existe.
func (c *Cloud) HasLogGroup(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groups[name]
}

// LogGroups devolve quantos log groups existem.
func (c *Cloud) LogGroups() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.groups)
}

// Filters devolve os subscription filters de um log group.
func (c *Cloud) Filters(logGroup string) []types.SubscriptionFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.SubscriptionFilter, 0, len(c.filters[logGroup]))
	for _, f := range c.filters[logGroup] {
		out = append(out, f)
	}
	return out
}

// Object devolve o conteúdo gravado em bucket/key.
func (c *Cloud) Object(bucket, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.objects[bucket+"/"+key]
	return b, ok
}

// Calls devolve a sequência de operações remotas recebidas.
func (c *Cloud) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// STSCalls conta as chamadas GetCallerIdentity.
func (c *Cloud) STSCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stsCalls
}

func (c *Cloud) record(op, resource string) {
	c.calls = append(c.calls, op+" "+resource)
}

func statementKey(function, qualifier, id string) string {
	return function + "|" + qualifier + "|" + id
}

type lambdaAPI struct{ c *Cloud }

func (a lambdaAPI) AddPermission(_ context.Context, in *lambda.AddPermissionInput, _ ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error) {
	c := a.c
	c.mu.Lock()
	defer c.mu.Unlock()

	fn := aws.ToString(in.FunctionName)
	c.record("AddPermission", fn)
	if c.AddPermissionErr != nil {
		return nil, c.AddPermissionErr
	}
	key := statementKey(fn, aws.ToString(in.Qualifier), aws.ToString(in.StatementId))
	if _, ok := c.statements[key]; ok {
		return nil, &lambdatypes.ResourceConflictException{
			Message: aws.String(fmt.Sprintf("The statement id (%s) provided already exists.", aws.ToString(in.StatementId))),
		}
	}
	c.statements[key] = Statement{
		FunctionName: fn,
		StatementID:  aws.ToString(in.StatementId),
		Qualifier:    aws.ToString(in.Qualifier),
		Principal:    aws.ToString(in.Principal),
		Action:       aws.ToString(in.Action),
	}
	return &lambda.AddPermissionOutput{}, nil
}

func (a lambdaAPI) RemovePermission(_ context.Context, in *lambda.RemovePermissionInput, _ ...func(*lambda.Options)) (*lambda.RemovePermissionOutput, error) {
	c := a.c
	c.mu.Lock()
	defer c.mu.Unlock()

	fn := aws.ToString(in.FunctionName)
	c.record("RemovePermission", fn)
	if c.RemovePermissionErr != nil {
		return nil, c.RemovePermissionErr
	}
	key := statementKey(fn, aws.ToString(in.Qualifier), aws.ToString(in.StatementId))
	if _, ok := c.statements[key]; !ok {
		return nil, &lambdatypes.ResourceNotFoundException{
			Message: aws.String("No policy is associated with the given resource."),
		}
	}
	delete(c.statements, key)
	return &lambda.RemovePermissionOutput{}, nil
}

type logsAPI struct{ c *Cloud }

func (a logsAPI) CreateLogGroup(_ context.Context, in *cw.CreateLogGroupInput, _ ...func(*cw.Options)) (*cw.CreateLogGroupOutput, error) {
	c := a.c
	c.mu.Lock()
	defer c.mu.Unlock()

	name := aws.ToString(in.LogGroupName)
	c.record("CreateLogGroup", name)
	if err := c.CreateLogGroupErr[name]; err != nil {
		return nil, err
	}
	if c.groups[name] {
		return nil, &cwtypes.ResourceAlreadyExistsException{
			Message: aws.String("The specified log group already exists"),
		}
	}
	c.groups[name] = true
	return &cw.CreateLogGroupOutput{}, nil
}

func (a logsAPI) PutSubscriptionFilter(_ context.Context, in *cw.PutSubscriptionFilterInput, _ ...func(*cw.Options)) (*cw.PutSubscriptionFilterOutput, error) {
	c := a.c
	c.mu.Lock()
	defer c.mu.Unlock()

	group := aws.ToString(in.LogGroupName)
	c.record("PutSubscriptionFilter", group)
	if err := c.PutFilterErr[group]; err != nil {
		return nil, err
	}
	if !c.groups[group] {
		return nil, &cwtypes.ResourceNotFoundException{
			Message: aws.String("The specified log group does not exist."),
		}
	}
	if c.filters[group] == nil {
		c.filters[group] = map[string]types.SubscriptionFilter{}
	}
	name := aws.ToString(in.FilterName)
	c.filters[group][name] = types.SubscriptionFilter{
		LogGroupName:   group,
		FilterName:     name,
		FilterPattern:  aws.ToString(in.FilterPattern),
		DestinationArn: aws.ToString(in.DestinationArn),
	}
	return &cw.PutSubscriptionFilterOutput{}, nil
}

type stsAPI struct{ c *Cloud }

func (a stsAPI) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	c := a.c
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stsCalls++
	if c.CallerIdentityErr != nil {
		return nil, c.CallerIdentityErr
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(c.Account)}, nil
}

type s3API struct{ c *Cloud }

func (a s3API) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	var body []byte
	if in.Body != nil {
		b, err := io.ReadAll(in.Body)
		if err != nil {
			return nil, err
		}
		body = b
	}

	c := a.c
	c.mu.Lock()
	defer c.mu.Unlock()

	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	c.record("PutObject", key)
	if c.PutObjectErr != nil {
		return nil, c.PutObjectErr
	}
	c.objects[key] = body
	return &s3.PutObjectOutput{}, nil
}
