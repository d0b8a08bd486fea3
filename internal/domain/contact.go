package domain

// ============================================================
// Contact API — POST /v1/contact
// ============================================================

// ContactRequest is the body of POST /v1/contact, submitted by the
// frontend once the user agreed to share contact details.
type ContactRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	ConversationSummary string `json:"conversationSummary,omitempty"`
	SelectedService     string `json:"selectedService,omitempty"`
}

// ContactResponse acknowledges the submission. NotificationSent is
// informational only: delivery failure never fails the submission.
type ContactResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	NotificationSent bool   `json:"notificationSent"`
}
