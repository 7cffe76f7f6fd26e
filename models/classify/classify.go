package classify

import (
	"snpit/models"

	"github.com/google/uuid"
)

type State string

const (
	Queued  State = "Queued"
	Running State = "Running"
	Done    State = "Done"
	Error   State = "Error"
)

type ClassificationRequest struct {
	Id        uuid.UUID      `json:"id"`
	Filename  string         `json:"filename"`
	State     State          `json:"state"`
	Message   string         `json:"message"`
	Result    *models.Result `json:"result,omitempty"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

func (r *ClassificationRequest) IsFinished() bool {
	return r.State == Done || r.State == Error
}

type ClassificationResponseDTO struct {
	Id       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	State    State     `json:"state"`
	Message  string    `json:"message"`
}
