package dto

// EventRequest 建立活動請求，image 可省略
// swagger:model dto.EventRequest
type EventRequest struct {
	Title string `json:"title" validate:"required" example:"Hack Night"`
	Type  string `json:"type" validate:"required" example:"hackathon"`
	Date  string `json:"date" validate:"required" example:"2025-04-01"`
	Desc  string `json:"desc" validate:"required" example:"Build things overnight"`
	Image string `json:"image" example:"/uploads/image-1700000000000-3f9a1c2e.png"`
	Link  string `json:"link" validate:"required" example:"https://example.com/hack"`
}
