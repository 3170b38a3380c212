package parser

// Grammar rule names, as they appear in the error chain.
const (
	RuleProgram    = "program"
	RuleBlock      = "block"
	RuleOperator   = "operator"
	RuleExpression = "expression"
	RuleFactor     = "factor"
	RulePrimary    = "primary"
)
