package model

// User is an account row in the external users table.
//
// PasswordPlain is the legacy demo credential. Once PasswordHashed holds a
// recognized Argon2id string it is the authoritative credential and the
// plaintext is retained for display only, never verified again.
type User struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	PasswordPlain  string `json:"password_plain,omitempty"`
	PasswordHashed string `json:"password_hashed,omitempty"`
	Admin          int    `json:"admin"`
}

func (u *User) IsAdmin() bool {
	return u.Admin == 1
}
