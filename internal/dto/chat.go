package dto

// ChatTurn is one prior exchange supplied by the widget.
// Type is "user" or "bot", matching the frontend's history shape.
type ChatTurn struct {
	Type    string `json:"type"    binding:"required,oneof=user bot"`
	Message string `json:"message" binding:"required"`
}

// ChatRequest is the body of POST /api/chat.
// Message is validated in the service so the empty-message error keeps the
// exact wording the widget expects.
type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history" binding:"omitempty,max=50,dive"`
}

// ChatResponse carries the model's reply. The chat endpoint does not use
// the v1 envelope: the widget consumes {reply} / {error} directly.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatErrorResponse is the chat endpoint's error shape.
type ChatErrorResponse struct {
	Error string `json:"error"`
}
