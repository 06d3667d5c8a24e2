// Package dto holds the JSON shapes of the API and the mappers between them and the
// storage models. Storage uses snake_case columns; the API speaks camelCase.
package dto

// Envelope wraps every successful response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Message is a success envelope with a human readable message.
func Message(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
