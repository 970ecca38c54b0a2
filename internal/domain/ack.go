package domain

const (
	StatusSuccess = "success"
	StatusError   = "error"

	SuccessMessage = "Data saved successfully to Static IP Database"
)

// Ack is the body of every ingest response.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func AckSuccess() Ack {
	return Ack{Status: StatusSuccess, Message: SuccessMessage}
}

func AckError(err error) Ack {
	return Ack{Status: StatusError, Message: err.Error()}
}

func (a Ack) OK() bool {
	return a.Status == StatusSuccess
}
