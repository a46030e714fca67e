// Package apierror holds the JSON error envelopes returned to clients.
// Internal details (stack traces, SQL errors) never reach these types.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError lists the offending request fields and the failed rule.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// StockError is returned when an order asks for more units than are left.
type StockError struct {
	Detail     string `json:"detail"`
	Producto   string `json:"producto"`
	Disponible int    `json:"disponible"`
	Solicitado int    `json:"solicitado"`
}

func NewStock(detail, producto string, disponible, solicitado int) *StockError {
	return &StockError{Detail: detail, Producto: producto, Disponible: disponible, Solicitado: solicitado}
}
