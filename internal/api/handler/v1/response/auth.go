package response

import (
	"github.com/volleyhub/registration-api/internal/cascade"
	"github.com/volleyhub/registration-api/internal/domain"
)

type LoginResponse struct {
	User domain.User `json:"user"`
}

// DeleteResponse reports how many rows a cascading delete removed per table.
type DeleteResponse struct {
	Deleted map[string]int64 `json:"deleted"`
}

func NewDeleteResponse(result cascade.Result) DeleteResponse {
	deleted := make(map[string]int64, len(result))
	for entity, n := range result {
		deleted[string(entity)] = n
	}

	return DeleteResponse{Deleted: deleted}
}
