package models

import "time"

// Category is the expiry threshold a notification was sent for.
type Category string

const (
	CategorySevenDays Category = "SEVEN_DAYS"
	CategoryOneDay    Category = "ONE_DAY"
	CategoryExpired   Category = "EXPIRED"
)

// Urgency mirrors the desktop notification urgency levels.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// NotificationRecord marks a (token, category) notification as delivered.
type NotificationRecord struct {
	ID               int64
	TokenID          string
	Category         Category
	Message          string
	DaysBeforeExpiry int
	SentAt           time.Time
}

// ExpiringToken is the scheduler's view of a token: no value, only what is
// needed to classify and describe it.
type ExpiringToken struct {
	ID          string
	ServiceName string
	TokenName   string
	TokenType   TokenType
	ExpiryDate  Date
}

// NotificationSettings are the per-token notification preferences. A token
// without a settings row has notifications enabled.
type NotificationSettings struct {
	TokenID          string
	Enabled          bool
	NotifyDaysBefore int
}

// DefaultNotifyDaysBefore is stored when settings are first written.
const DefaultNotifyDaysBefore = 7
