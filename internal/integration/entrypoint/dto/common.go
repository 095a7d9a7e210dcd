// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/google/uuid"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// DataResponse wraps every successful payload.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// NewDataResponse wraps data in a DataResponse.
func NewDataResponse[T any](data T) DataResponse[T] {
	return DataResponse[T]{Data: data}
}

// IDResponse identifies a created or deleted resource.
type IDResponse struct {
	ID string `json:"id"`
}

// BulkDeleteRequest represents the request body of the bulk-delete endpoints.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// ParseIDs converts the request ids to UUIDs.
func (r BulkDeleteRequest) ParseIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ToIDResponses converts deleted ids to their response form.
func ToIDResponses(ids []uuid.UUID) []IDResponse {
	responses := make([]IDResponse, len(ids))
	for i, id := range ids {
		responses[i] = IDResponse{ID: id.String()}
	}
	return responses
}
