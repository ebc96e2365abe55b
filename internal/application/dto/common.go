package dto

// CollectionResponse estado de una colección tal como la ve la interfaz:
// registros del espejo, si hay una carga en curso y el error de la última carga.
type CollectionResponse[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
