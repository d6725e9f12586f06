package calculator

import "go-chi-compute/internal/compute"

// CalcRequest is the JSON body for binary operations (add, subtract, multiply,
// divide, power). Both operands are required.
type CalcRequest struct {
	A *compute.Number `json:"a"`
	B *compute.Number `json:"b"`
}

// CalcResponse is the JSON response for binary operations.
type CalcResponse struct {
	Operation string         `json:"operation"`
	A         compute.Number `json:"a"`
	B         compute.Number `json:"b"`
	Result    compute.Number `json:"result"`
}

// AggregateRequest is the JSON body for POST /calculator/sum and /average.
type AggregateRequest struct {
	Numbers []compute.Number `json:"numbers"`
}

// AggregateResponse is the JSON response for list aggregates.
type AggregateResponse struct {
	Operation string           `json:"operation"`
	Numbers   []compute.Number `json:"numbers"`
	Result    compute.Number   `json:"result"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string         `json:"op"`    // "add", "subtract", "multiply", "divide", "power"
	Value compute.Number `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial compute.Number `json:"initial"` // starting value
	Steps   []ChainStep    `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial compute.Number `json:"initial"`
	Steps   []ChainResult  `json:"steps"`
	Result  compute.Number `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string         `json:"op"`
	Value  compute.Number `json:"value"`
	Result compute.Number `json:"result"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	Name    string                     `json:"calculator_name"`
	History []compute.CalculatorRecord `json:"history"`
}
