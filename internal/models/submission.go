package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is the persisted feedback document. Field names follow the wire
// format expected by the dashboard frontend.
type Submission struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Rating             int                `json:"rating" bson:"rating"`
	Review             string             `json:"review" bson:"review"`
	AIResponse         string             `json:"ai_response" bson:"ai_response"`
	AISummary          string             `json:"ai_summary" bson:"ai_summary"`
	RecommendedActions string             `json:"recommended_actions" bson:"recommended_actions"`
	Timestamp          time.Time          `json:"timestamp" bson:"timestamp"`
	Status             string             `json:"status" bson:"status"`
}

// StatusSuccess is the only status written by the current pipeline.
const StatusSuccess = "success"

// SubmissionRequest is the creation payload. Review length is checked in the
// handler after trimming, so the precise error messages survive validation.
type SubmissionRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

// SubmissionResponse is the full single-item shape, including the
// user-facing AI reply.
type SubmissionResponse struct {
	ID                 string    `json:"id"`
	Rating             int       `json:"rating"`
	Review             string    `json:"review"`
	AIResponse         string    `json:"ai_response"`
	AISummary          string    `json:"ai_summary"`
	RecommendedActions string    `json:"recommended_actions"`
	Timestamp          time.Time `json:"timestamp"`
	Status             string    `json:"status"`
}

// AdminSubmission is the list-item shape for the admin dashboard. It omits
// ai_response, which is only shown on single-item fetch.
type AdminSubmission struct {
	ID                 string    `json:"id"`
	Rating             int       `json:"rating"`
	Review             string    `json:"review"`
	AISummary          string    `json:"ai_summary"`
	RecommendedActions string    `json:"recommended_actions"`
	Timestamp          time.Time `json:"timestamp"`
	Status             string    `json:"status"`
}

type SubmissionListResponse struct {
	Total       int64             `json:"total"`
	Submissions []AdminSubmission `json:"submissions"`
}

// ToResponse maps a stored submission to the full response shape.
func (s *Submission) ToResponse() SubmissionResponse {
	return SubmissionResponse{
		ID:                 s.ID.Hex(),
		Rating:             s.Rating,
		Review:             s.Review,
		AIResponse:         s.AIResponse,
		AISummary:          s.AISummary,
		RecommendedActions: s.RecommendedActions,
		Timestamp:          s.Timestamp,
		Status:             s.Status,
	}
}

// ToAdmin maps a stored submission to the list-item shape.
func (s *Submission) ToAdmin() AdminSubmission {
	return AdminSubmission{
		ID:                 s.ID.Hex(),
		Rating:             s.Rating,
		Review:             s.Review,
		AISummary:          s.AISummary,
		RecommendedActions: s.RecommendedActions,
		Timestamp:          s.Timestamp,
		Status:             s.Status,
	}
}
