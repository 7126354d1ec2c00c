// File: internal/dto/hits.go
package dto

import "time"

// swagger:model dto.PathHitsResponse
type PathHitsResponse struct {
	Path     string    `json:"path" example:"/"`
	Hits     int64     `json:"hits" example:"42"`
	LastSeen time.Time `json:"last_seen" example:"2025-05-09T15:04:05Z"`
}

// swagger:model dto.HitsQuery
type HitsQuery struct {
	Limit int `query:"limit" validate:"min=0,max=1000" example:"10"`
}
