package domain

import "time"

// OtpRecord is the single outstanding email one-time code for a user.
// PK: user_id. Issuing a new code overwrites the previous record.
type OtpRecord struct {
	UserID     string     `json:"user_id" dynamodbav:"user_id"`
	Email      string     `json:"email" dynamodbav:"email"`
	Code       string     `json:"-" dynamodbav:"code"`
	ExpiresAt  time.Time  `json:"expires_at" dynamodbav:"expires_at"`
	Consumed   bool       `json:"consumed" dynamodbav:"consumed"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty" dynamodbav:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" dynamodbav:"created_at"`
}

// Expired reports whether the code is past its expiry at now.
func (o *OtpRecord) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
