package models

import "time"

// Audit actions recorded by the backend.
const (
	AuditReceiptScan      = "RECEIPT_SCAN"
	AuditReceiptDelete    = "RECEIPT_DELETE"
	AuditListCreate       = "LIST_CREATE"
	AuditPaymentInitiated = "PAYMENT_INITIATED"
	AuditPaymentCompleted = "PAYMENT_COMPLETED"
	AuditPlanActivated    = "PLAN_ACTIVATED"
)

// AuditLog represents an audit trail event.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	UserID     string                 `json:"userId" firestore:"userId"` // Who performed the action
	Action     string                 `json:"action" firestore:"action"`
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"` // e.g., "RECEIPT", "PAYMENT", "LIST"
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`     // ID of the affected entity
	IPAddress  string                 `json:"ipAddress,omitempty" firestore:"ipAddress,omitempty"`
	UserAgent  string                 `json:"userAgent,omitempty" firestore:"userAgent,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"` // Additional information
}
