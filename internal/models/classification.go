package models

const ClassificationStatusSuccess = "success"

// Classification is the remote classifier verdict for a single order
type Classification struct {
	Status string  `json:"status"`
	Data   float64 `json:"data"`
}

func (c Classification) IsSuccess() bool {
	return c.Status == ClassificationStatusSuccess
}
