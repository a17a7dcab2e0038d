package entity

import "time"

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"` // cleared before any response is written
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Validate() error {
	if u.Username == "" {
		return Invalid("username is required")
	}
	if u.Password == "" {
		return Invalid("password is required")
	}
	if u.Email == "" {
		return Invalid("email is required")
	}
	if u.FullName == "" {
		return Invalid("fullName is required")
	}
	return nil
}

// Sanitized returns a copy safe to serialize in a response.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
