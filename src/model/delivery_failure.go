package model

import "time"

// DeliveryFailure is a fault record the broker never acknowledged, kept for
// auditing and replay.
type DeliveryFailure struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Publisher delivery id, also sent as the fault-id header
	DeliveryID string `gorm:"size:36;uniqueIndex" json:"delivery_id"`
	Topic      string `gorm:"size:249;index" json:"topic"`

	// Serialized fault record as it was handed to the producer
	Payload string `gorm:"type:text" json:"payload"`
	Error   string `gorm:"type:text" json:"error"`

	EnqueuedAt time.Time `json:"enqueued_at"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
