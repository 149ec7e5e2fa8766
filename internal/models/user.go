package models

// User is a row of the users table shared with the account service.
// ID holds the hex form of the user's ObjectID so comments can reference it.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:24"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TableName pins the gorm table so it does not depend on pluralization rules.
func (User) TableName() string { return "users" }

// UserCompact is the author projection attached to comments
type UserCompact struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToCompact returns the compact projection of the user
func (u User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
