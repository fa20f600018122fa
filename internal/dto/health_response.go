package dto

// HealthResponse 健康檢查回應模型
// swagger:model dto.HealthResponse
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
