package types

import "fmt"

// SinkIdentity é o destino de invocação totalmente qualificado que recebe os eventos de log.
type SinkIdentity struct {
	DeployedName string `json:"deployed_name"`
	FunctionArn  string `json:"function_arn"`
	Qualifier    string `json:"qualifier,omitempty"`
}

// FunctionArn monta o ARN de uma função Lambda.
func FunctionArn(region, accountID, deployedName string) string {
	return fmt.Sprintf("arn:aws:lambda:%s:%s:function:%s", region, accountID, deployedName)
}

// DestinationArn é o ARN usado no subscription filter; inclui o qualifier quando presente.
func (s SinkIdentity) DestinationArn() string {
	if s.Qualifier == "" {
		return s.FunctionArn
	}
	return s.FunctionArn + ":" + s.Qualifier
}
