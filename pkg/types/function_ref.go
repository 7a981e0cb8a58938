package types

// FunctionRef liga o nome lógico de uma função ao nome implantado no scope.
type FunctionRef struct {
	LogicalName  string `json:"logical_name"`
	DeployedName string `json:"deployed_name"`
	Scope        Scope  `json:"scope"`
}
