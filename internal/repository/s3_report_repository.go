package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// ReportPrefix é o prefixo das chaves de relatório no bucket.
const ReportPrefix = "logstream/reports"

// ReportRepository grava o relatório de cada execução no S3.
type ReportRepository struct {
	Client *client.AWSClient
	Bucket string
}

// ReportKey devolve a chave do relatório: <prefix>/<stage>/<region>/<run id>.json
func ReportKey(report *types.RunReport) string {
	return path.Join(ReportPrefix, report.Scope.Stage, report.Scope.Region, report.RunID+".json")
}

// PutReport grava o relatório. Sem bucket configurado, não faz nada.
func (r *ReportRepository) PutReport(ctx context.Context, report *types.RunReport) (string, error) {
	if r.Bucket == "" {
		return "", nil
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	key := ReportKey(report)
	_, err = r.Client.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put report failed: %w", err)
	}
	return key, nil
}
