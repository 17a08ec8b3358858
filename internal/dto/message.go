package dto

// HTTPError 所有失敗回應的本體，與成功訊息同形
// swagger:model dto.HTTPError
type HTTPError struct {
	Message string `json:"message" example:"Event not found"`
}

// MessageResponse 一般訊息回應
// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Event removed"`
}

// URLResponse carries the public URL of a stored upload.
// swagger:model dto.URLResponse
type URLResponse struct {
	URL string `json:"url" example:"/uploads/image-1700000000000-3f9a1c2e.png"`
}

// ChatRequest 聊天請求
// swagger:model dto.ChatRequest
type ChatRequest struct {
	Message string `json:"message" validate:"required" example:"hello"`
}

// ChatResponse 聊天回應
// swagger:model dto.ChatResponse
type ChatResponse struct {
	Response string `json:"response" example:"Hi! How can I help?"`
}
