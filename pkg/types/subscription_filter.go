package types

// SubscriptionFilter liga um log group ao sink. FilterName é fixo (nome do sink),
// então um novo put com o mesmo nome substitui o filtro existente.
type SubscriptionFilter struct {
	LogGroupName   string `json:"log_group_name"`
	FilterName     string `json:"filter_name"`
	FilterPattern  string `json:"filter_pattern"`
	DestinationArn string `json:"destination_arn"`
}

// NewSubscriptionFilter monta o filtro match-all de um target para o sink.
func NewSubscriptionFilter(target LogGroupTarget, sink SinkIdentity) SubscriptionFilter {
	return SubscriptionFilter{
		LogGroupName:   target.LogGroupName,
		FilterName:     sink.DeployedName,
		FilterPattern:  "",
		DestinationArn: sink.DestinationArn(),
	}
}
