// File: internal/dto/ping.go
package dto

// PingResponse 健康檢查回應模型
// swagger:model dto.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
	Workers int    `json:"workers" example:"4"`
	Alive   int    `json:"alive" example:"4"`
}
