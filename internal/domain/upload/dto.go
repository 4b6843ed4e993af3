package upload

import (
	"github.com/cmlabs-hris/senam-dashboard/internal/pkg/validator"
)

// ============= Request DTOs =============

// SelectFileRequest carries a file chosen on the upload surface.
type SelectFileRequest struct {
	Filename string
	Data     []byte
}

func (r *SelectFileRequest) Validate() error {
	if validator.IsEmpty(r.Filename) || len(r.Data) == 0 {
		return ErrNoFile
	}
	return nil
}

// ============= Response DTOs =============

type SubmitResponse struct {
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Years   []string `json:"years"`
	Status  *Status  `json:"status"`
}
