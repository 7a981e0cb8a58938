package provider

import (
	"context"
	"time"

	"github.com/hashicorp/terraform-plugin-sdk/v2/diag"
	"github.com/hashicorp/terraform-plugin-sdk/v2/helper/schema"
	"github.com/hashicorp/terraform-plugin-sdk/v2/helper/validation"

	"github.com/raywall/terraform-provider-logstream/internal/client"
	"github.com/raywall/terraform-provider-logstream/internal/logging"
	"github.com/raywall/terraform-provider-logstream/internal/models"
	"github.com/raywall/terraform-provider-logstream/internal/resource"
	"github.com/raywall/terraform-provider-logstream/internal/service"
)

// Provider retorna o schema e resources map.
func Provider() *schema.Provider {
	return &schema.Provider{
		Schema: map[string]*schema.Schema{
			"region": {
				Type:        schema.TypeString,
				Optional:    true,
				DefaultFunc: schema.EnvDefaultFunc("AWS_REGION", "us-east-1"),
				Description: "AWS region to use for resources",
			},
			"profile": {
				Type:        schema.TypeString,
				Optional:    true,
				DefaultFunc: schema.EnvDefaultFunc("AWS_PROFILE", ""),
				Description: "Profile de credenciais compartilhadas da AWS.",
			},
			"report_bucket": {
				Type:        schema.TypeString,
				Optional:    true,
				Description: "Bucket S3 para armazenar o relatório de cada execução.",
			},
			"settle_delay_ms": {
				Type:         schema.TypeInt,
				Optional:     true,
				Default:      int(service.DefaultSettleDelay / time.Millisecond),
				ValidateFunc: validation.IntAtLeast(1),
				Description:  "Espera após cada mudança de permissão do sink, em milissegundos.",
			},
			"throttle_delay_ms": {
				Type:         schema.TypeInt,
				Optional:     true,
				Default:      int(service.DefaultThrottleDelay / time.Millisecond),
				ValidateFunc: validation.IntAtLeast(1),
				Description:  "Espera após cada chamada ao CloudWatch Logs, em milissegundos.",
			},
		},
		ResourcesMap: map[string]*schema.Resource{
			"logstream_subscriptions": resource.ResourceLogStreamSubscriptions(),
		},
		ConfigureContextFunc: providerConfigure,
	}
}

func providerConfigure(_ context.Context, d *schema.ResourceData) (interface{}, diag.Diagnostics) {
	return configureBundle(d), nil
}

func configureBundle(d *schema.ResourceData) *models.ConfigurationBundle {
	profile := d.Get("profile").(string)

	// Clientes criados sob demanda por scope, todos com o profile do provider.
	pool := &client.Pool{
		New: func(ctx context.Context, region, _ string) (*client.AWSClient, error) {
			return client.New(ctx, region, profile)
		},
	}

	return &models.ConfigurationBundle{
		Cloud:         pool,
		Region:        d.Get("region").(string),
		SettleDelay:   time.Duration(d.Get("settle_delay_ms").(int)) * time.Millisecond,
		ThrottleDelay: time.Duration(d.Get("throttle_delay_ms").(int)) * time.Millisecond,
		ReportBucket:  d.Get("report_bucket").(string),
		Clock:         service.RealClock{},
		Log:           logging.New(nil, false),
	}
}
