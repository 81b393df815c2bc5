package dto

// ErrorResponse cuerpo de error HTTP: {success:false, message, error?}.
// Error lleva el mensaje del almacén sin filtrar (riesgo conocido de fuga de diagnóstico).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse respuesta de éxito sin payload adicional.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewError construye el envelope de error.
func NewError(message string, err error) ErrorResponse {
	out := ErrorResponse{Success: false, Message: message}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// NewMessage construye el envelope de éxito.
func NewMessage(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}
