package types

// InvokeFunctionAction é a ação concedida ao serviço de logs.
const InvokeFunctionAction = "lambda:InvokeFunction"

// PermissionGrant representa o statement que permite ao CloudWatch Logs invocar o sink.
// StatementID é a chave de idempotência: remove-then-add substitui o statement.
type PermissionGrant struct {
	StatementID string `json:"statement_id"`
	Principal   string `json:"principal"`
	Action      string `json:"action"`
	Resource    string `json:"resource"`
	Qualifier   string `json:"qualifier,omitempty"`
}

// LogsPrincipal devolve o principal regional do CloudWatch Logs.
func LogsPrincipal(region string) string {
	return "logs." + region + ".amazonaws.com"
}

// NewPermissionGrant monta o statement canônico para um sink.
func NewPermissionGrant(sink SinkIdentity, region string) PermissionGrant {
	return PermissionGrant{
		StatementID: sink.DeployedName,
		Principal:   LogsPrincipal(region),
		Action:      InvokeFunctionAction,
		Resource:    sink.FunctionArn,
		Qualifier:   sink.Qualifier,
	}
}
