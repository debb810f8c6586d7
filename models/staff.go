package models

import "time"

// Staff is an admin or waitstaff account.
type Staff struct {
	UserID        string    `json:"userId" bson:"userId"`
	Username      string    `json:"username" bson:"username"`
	Password      string    `json:"-" bson:"password"` // bcrypt hash
	Role          []string  `json:"role" bson:"role"`  // "admin", "waitstaff"
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"-" bson:"last_login,omitempty"`
}
