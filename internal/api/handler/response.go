package handler

// envelope is the canonical response shape for every endpoint:
// {"success": bool, "data"|"message"|"errors": ...}.
type envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one entry in a validation failure list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK wraps a successful payload.
func OK(data any) envelope {
	return envelope{Success: true, Data: data}
}

// OKMessage wraps a successful operation that carries no payload.
func OKMessage(msg string) envelope {
	return envelope{Success: true, Message: msg}
}

// Fail wraps a failure message.
func Fail(msg string) envelope {
	return envelope{Success: false, Message: msg}
}

// FailFields wraps a field-level validation failure.
func FailFields(fields []FieldError) envelope {
	return envelope{Success: false, Errors: fields}
}
