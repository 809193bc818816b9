package user

type User struct {
	ID          int
	FullName    string
	Email       string
	Password    string // bcrypt hash, never plaintext
	PhoneNumber string
	Country     string
	RoleID      int
	RoleName    string
}

// UserView is the public projection of a user joined with its role.
type UserView struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
	RoleID      int    `json:"role_id"`
	RoleName    string `json:"role_name"`
}

type SignupInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
	Country         string
	RoleName        string // empty means role.Default
}

type CreateParams struct {
	FullName     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Country      string
	RoleID       int
}
