package models

import "time"

// AuditEntityReport is the entity name recorded for report audit entries
const AuditEntityReport = "Report"

// Audit actions
const (
	AuditActionCreated         = "CREATED"
	AuditActionApprovedManual  = "APPROVED_MANUAL"
	AuditActionRejectedManual  = "REJECTED_MANUAL"
	AuditActionApprovedAuto    = "APPROVED_AUTO"
	AuditActionNeedsReviewAuto = "NEEDS_REVIEW_AUTO"
)

// AuditLog is an append-only record of a change to an entity
type AuditLog struct {
	ID          string                 `json:"id" bson:"_id"`
	Entity      string                 `json:"entity" bson:"entity"`
	EntityID    string                 `json:"entityId" bson:"entity_id"`
	Action      string                 `json:"action" bson:"action"`
	ActorUserID *string                `json:"actorUserId,omitempty" bson:"actor_user_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt" bson:"created_at"`
}

// ModerationDecision is one worker outcome applied inside a batch
type ModerationDecision struct {
	Report *Report
	Audit  *AuditLog
}
