package dto

// Envelope wraps every data response. Data and Count are set only on
// success; Error only on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewSuccessEnvelope(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func NewCollectionEnvelope(message string, data []ProductResponse) Envelope {
	count := len(data)
	return Envelope{Success: true, Message: message, Data: data, Count: &count}
}

func NewFailureEnvelope(message, errText string) Envelope {
	return Envelope{Success: false, Message: message, Error: errText}
}

// HealthResponse is the liveness body. It never depends on the store.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
