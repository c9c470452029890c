package domain

// AdminUserID is the user allowed to manage categories and read any
// user's statistics.
const AdminUserID int64 = 1

// User is a registered account. Users are read-only from the task
// pipeline's perspective; the store seeds them at startup.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	// HashedPassword is the bcrypt hash checked at login. Never serialized.
	HashedPassword string `json:"-"`
}

// IsAdmin reports whether the user id has administrative rights.
func IsAdmin(userID int64) bool {
	return userID == AdminUserID
}
