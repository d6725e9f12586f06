package processor

import "go-chi-compute/internal/compute"

// NumbersRequest is the JSON body for POST /processor/numbers.
type NumbersRequest struct {
	Numbers []compute.Number `json:"numbers"`
}

// FilterRequest is the JSON body for POST /processor/filter. Value is the
// argument of predicates that take one (gt, lt, eq, contains).
type FilterRequest struct {
	Items     []any  `json:"items"`
	Predicate string `json:"predicate"`
	Value     any    `json:"value,omitempty"`
}

// FilterResponse is the JSON response for POST /processor/filter.
type FilterResponse struct {
	Predicate string `json:"predicate"`
	Items     []any  `json:"items"`
	Count     int    `json:"count"`
}

// ConvertRequest is the JSON body for POST /processor/json.
type ConvertRequest struct {
	Data any `json:"data"`
}

// ConvertResponse carries the rendered text, or a "conversion failed: ..."
// message.
type ConvertResponse struct {
	JSON string `json:"json"`
}

// HistoryResponse is the JSON response for GET /processor/history.
type HistoryResponse struct {
	Name    string                    `json:"processor_name"`
	History []compute.ProcessorRecord `json:"history"`
}
