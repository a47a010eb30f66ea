package models

type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsApproved  bool   `json:"isApproved"`
	Phone       string `json:"phone,omitempty"`
	CPF         string `json:"cpf,omitempty"`
	Description string `json:"description,omitempty"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Identity is a token/user pair. The two are installed and destroyed
// together; a session never holds one without the other.
type Identity struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CPF         string `json:"cpf,omitempty"`
	Description string `json:"description,omitempty"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// EvaluationRequest is the approval-gate application a visitor submits
// before an admin reviews the account. ConfirmEmail is checked locally
// and never forwarded.
type EvaluationRequest struct {
	FullName     string `json:"fullName"`
	Profession   string `json:"profession,omitempty"`
	Email        string `json:"email"`
	ConfirmEmail string `json:"confirmEmail"`
	Phone        string `json:"phone,omitempty"`
	Style        string `json:"style,omitempty"`
}
