package domain

import "time"

// Profile is a waitlist submission. PK: user_id.
type Profile struct {
	UserID             string    `json:"id" dynamodbav:"user_id"`
	FullName           string    `json:"full_name" dynamodbav:"full_name"`
	PhoneNumber        string    `json:"phone_number" dynamodbav:"phone_number"`
	Age                int       `json:"age" dynamodbav:"age"`
	Gender             string    `json:"gender" dynamodbav:"gender"`
	Institution        string    `json:"institution" dynamodbav:"institution"`
	InstitutionalEmail string    `json:"institutional_email" dynamodbav:"institutional_email"`
	FromLocation       string    `json:"from_location" dynamodbav:"from_location"`
	ToLocation         string    `json:"to_location" dynamodbav:"to_location"`
	LeaveHomeTime      string    `json:"leave_home_time" dynamodbav:"leave_home_time"`
	LeaveCollegeTime   string    `json:"leave_college_time" dynamodbav:"leave_college_time"`
	DaysOfCommute      []string  `json:"days_of_commute" dynamodbav:"days_of_commute"`
	PreferHosting      bool      `json:"prefer_hosting" dynamodbav:"prefer_hosting"`
	PreferTakingRide   bool      `json:"prefer_taking_ride" dynamodbav:"prefer_taking_ride"`
	VehicleType        string    `json:"vehicle_type" dynamodbav:"vehicle_type"`
	ComfortableWith    string    `json:"comfortable_with" dynamodbav:"comfortable_with"`
	AgreedToTerms      bool      `json:"agreed_to_terms" dynamodbav:"agreed_to_terms"`
	EmailVerified      bool      `json:"email_verified" dynamodbav:"email_verified"`
	CreatedAt          time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// ProfileInput is the two-step waitlist form as submitted by the user.
type ProfileInput struct {
	FullName           string   `json:"full_name" validate:"required"`
	PhoneNumber        string   `json:"phone_number" validate:"required,number,len=10"`
	Age                int      `json:"age" validate:"required,min=1,max=120"`
	Gender             string   `json:"gender" validate:"required"`
	Institution        string   `json:"institution" validate:"required"`
	InstitutionalEmail string   `json:"institutional_email" validate:"required,email"`
	FromLocation       string   `json:"from_location" validate:"required"`
	ToLocation         string   `json:"to_location" validate:"required"`
	LeaveHomeTime      string   `json:"leave_home_time" validate:"required"`
	LeaveCollegeTime   string   `json:"leave_college_time" validate:"required"`
	DaysOfCommute      []string `json:"days_of_commute" validate:"required,min=1,dive,required"`
	PreferHosting      bool     `json:"prefer_hosting"`
	PreferTakingRide   bool     `json:"prefer_taking_ride" validate:"required_without=PreferHosting"`
	VehicleType        string   `json:"vehicle_type" validate:"required,oneof=2_wheeler 4_wheeler"`
	ComfortableWith    string   `json:"comfortable_with" validate:"required,oneof=male female both"`
	AgreedToTerms      bool     `json:"agreed_to_terms" validate:"required"`
}
