package domain

import "time"

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"` // PBKDF2-SHA256 derived key
	Salt         []byte    `db:"salt"`
	CreatedAt    time.Time `db:"created_at"`
}

func NewUser(username, email string, passwordHash, salt []byte, now time.Time) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    now.UTC(),
	}
}

// SetPassword replaces the stored credential with a freshly derived hash and salt.
func (u *User) SetPassword(passwordHash, salt []byte) {
	u.PasswordHash = passwordHash
	u.Salt = salt
}
