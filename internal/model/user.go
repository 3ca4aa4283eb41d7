package model

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a row of the users table. Column names match the table the catalog
// has always used, so existing rows stay readable.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Email    string `json:"email" gorm:"size:255;not null;index"`
	Password string `json:"password" gorm:"size:255;not null"`
	Role     string `json:"role" gorm:"size:20;not null;default:'user'"`
	APIKey   string `json:"apiKey" gorm:"column:apiKey;size:32;not null"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// UserSummary is the admin view of a user. The password is never part of it.
type UserSummary struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	APIKey string `json:"apiKey" gorm:"column:apiKey"`
}

// Summary returns the admin view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, Role: u.Role, APIKey: u.APIKey}
}

// RegisteredUser is what registration hands back to the caller.
type RegisteredUser struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	APIKey string `json:"apiKey"`
}
