package domain

// ReviewSubmission is one inbound review. It only lives for a single request.
type ReviewSubmission struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Review string `json:"review"`
}

// NotificationEvent is published for reviews classified as NEGATIVE.
type NotificationEvent struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Review string `json:"review"`
}

func NewNotificationEvent(s ReviewSubmission) NotificationEvent {
	return NotificationEvent{
		Name:   s.Name,
		Email:  s.Email,
		Review: s.Review,
	}
}
