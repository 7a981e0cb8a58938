package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/terraform-plugin-sdk/v2/diag"
	"github.com/hashicorp/terraform-plugin-sdk/v2/helper/schema"

	"github.com/raywall/terraform-provider-logstream/internal/models"
	"github.com/raywall/terraform-provider-logstream/internal/project"
	"github.com/raywall/terraform-provider-logstream/internal/service"
)

// ResourceLogStreamSubscriptions define o schema do recurso.
func ResourceLogStreamSubscriptions() *schema.Resource {
	return &schema.Resource{
		Description:   "Garante log group, subscription filter e permissão de invocação do sink para as funções implantadas.",
		CreateContext: resourceCreate,
		ReadContext:   resourceRead,
		UpdateContext: resourceUpdate,
		DeleteContext: resourceDelete,
		Schema: map[string]*schema.Schema{
			"stage": {Type: schema.TypeString, Required: true},
			"region": {
				Type:        schema.TypeString,
				Optional:    true,
				Computed:    true,
				Description: "Região do scope. Usa a região do provider quando omitida.",
			},
			"functions": {
				Type:        schema.TypeList,
				Required:    true,
				MinItems:    1,
				Description: "Nomes implantados das funções cujos logs devem ser enviados ao sink.",
				Elem:        &schema.Schema{Type: schema.TypeString},
			},
			"sink_function": {Type: schema.TypeString, Required: true},
			"external_sink": {
				Type:        schema.TypeBool,
				Optional:    true,
				Default:     false,
				Description: "Se true, sink_function já é o nome implantado de uma função fora do projeto.",
			},
			"project": {Type: schema.TypeString, Optional: true},
			"name_template": {
				Type:     schema.TypeString,
				Optional: true,
				Default:  project.DefaultNameTemplate,
			},
			"qualifier": {Type: schema.TypeString, Optional: true},
			"report":    {Type: schema.TypeString, Computed: true},
		},
	}
}

// resourceCreate (Controller) - Mapeia e chama o Service
func resourceCreate(ctx context.Context, d *schema.ResourceData, m interface{}) diag.Diagnostics {
	bundle, ok := m.(*models.ConfigurationBundle)
	if !ok || bundle.Cloud == nil {
		return diag.FromErr(fmt.Errorf("log streaming service not configured"))
	}

	region := d.Get("region").(string)
	if region == "" {
		region = bundle.Region
	}
	in := project.Inline{
		Project:      d.Get("project").(string),
		NameTemplate: d.Get("name_template").(string),
		Stage:        d.Get("stage").(string),
		Region:       region,
		SinkFunction: d.Get("sink_function").(string),
		ExternalSink: d.Get("external_sink").(bool),
		Qualifier:    d.Get("qualifier").(string),
	}
	meta, err := project.FromInline(in)
	if err != nil {
		return diag.FromErr(fmt.Errorf("invalid log streaming configuration: %w", err))
	}

	opts := service.Options{Stage: in.Stage, Region: in.Region}
	report, runErr := bundle.Convergence(meta).PostDeploy(ctx, opts, extractFunctions(d))

	var phaseErr *service.PhaseError
	if runErr != nil && (report == nil || errors.As(runErr, &phaseErr)) {
		return diag.FromErr(fmt.Errorf("log streaming failed: %w", runErr))
	}

	d.SetId(fmt.Sprintf("%s/%s/%s", in.Stage, in.Region, report.Sink.DeployedName))
	_ = d.Set("region", in.Region)
	if err := setReport(d, report); err != nil {
		return diag.FromErr(err)
	}

	// Falhas por log group não desfazem o que foi aplicado; o estado é salvo.
	if runErr != nil {
		return diag.FromErr(runErr)
	}
	return nil
}

// resourceRead não consulta a AWS: o estado fica como a última execução deixou.
func resourceRead(_ context.Context, _ *schema.ResourceData, _ interface{}) diag.Diagnostics {
	return nil
}

// resourceUpdate (Controller)
func resourceUpdate(ctx context.Context, d *schema.ResourceData, m interface{}) diag.Diagnostics {
	return resourceCreate(ctx, d, m)
}

// resourceDelete apenas esquece o estado; assinaturas e permissão permanecem.
func resourceDelete(_ context.Context, d *schema.ResourceData, _ interface{}) diag.Diagnostics {
	d.SetId("")
	return nil
}

func setReport(d *schema.ResourceData, report interface{}) error {
	b, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}
	return d.Set("report", string(b))
}

func extractFunctions(d *schema.ResourceData) []string {
	raw := d.Get("functions").([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
