package models

import "time"

// Activity event types.
const (
	EventRefresh       = "REFRESH"
	EventRefreshFailed = "REFRESH_FAILED"
	EventCommentAdded  = "COMMENT_ADDED"
	EventCommentFailed = "COMMENT_FAILED"
	EventSignIn        = "SIGN_IN"
)

// ActivityEvent is a single entry of the dashboard activity log.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // REFRESH | REFRESH_FAILED | COMMENT_ADDED | COMMENT_FAILED | SIGN_IN
	UserID      int       `json:"user_id"`     // 0 when unknown
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
