package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse respuesta de creación (transacciones y precios).
type CreatedResponse struct {
	ID string `json:"id"`
}
