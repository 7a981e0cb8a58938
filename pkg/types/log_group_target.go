package types

// LogGroupPrefix é o prefixo dos log groups gerados pela Lambda.
const LogGroupPrefix = "/aws/lambda/"

// LogGroupTarget é um log group que deve ser assinado para o sink.
type LogGroupTarget struct {
	FunctionName string `json:"function_name"`
	LogGroupName string `json:"log_group_name"`
}

// NewLogGroupTarget deriva o log group a partir do nome implantado da função.
func NewLogGroupTarget(deployedName string) LogGroupTarget {
	return LogGroupTarget{
		FunctionName: deployedName,
		LogGroupName: LogGroupPrefix + deployedName,
	}
}
