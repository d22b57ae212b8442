package model

import "time"

// SubmissionStatus is the moderation state of a user-proposed FAQ question.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// FAQ is a published question/answer pair with helpfulness counters.
type FAQ struct {
	ID              string    `json:"id"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	CategoryID      string    `json:"category_id"`
	IsPublished     bool      `json:"is_published"`
	HelpfulCount    int64     `json:"helpful_count"`
	NotHelpfulCount int64     `json:"not_helpful_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FAQSubmission is a user question awaiting an admin-authored answer.
// Approving a submission promotes it into a published FAQ.
type FAQSubmission struct {
	ID          string           `json:"id"`
	Question    string           `json:"question"`
	CategoryID  string           `json:"category_id"`
	SubmittedBy string           `json:"submitted_by"`
	Status      SubmissionStatus `json:"status"`
	AdminAnswer string           `json:"admin_answer,omitempty"`
	AdminNotes  string           `json:"admin_notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
