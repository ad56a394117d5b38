package models

// User is a teacher account. Accounts are provisioned out of band and are
// read-only to the API.
type User struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Profile is the public view of a User returned by login and session checks.
type Profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Profile strips the credential from u.
func (u *User) Profile() Profile {
	return Profile{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
	}
}
