package dto

// FeedbackRequest is a user-submitted note, optionally with a reply
// address.
type FeedbackRequest struct {
	Type    string `json:"type" validate:"omitempty,oneof=bug feature general other"`
	Message string `json:"message" validate:"required,max=4000"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// FeedbackResponse acknowledges receipt.
type FeedbackResponse struct {
	Message string `json:"message"`
}
