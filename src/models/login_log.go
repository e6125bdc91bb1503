package models

import "time"

// LoginLog is one authentication attempt, successful or not
type LoginLog struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	IPAddress string    `json:"ip_address"`
	Timestamp time.Time `json:"timestamp"`
	Role      *Role     `json:"role"` // set only when the attempt matched an account
}
