package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerAdminRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerCustomerRequest struct {
	Name       string `json:"name"        validate:"required"`
	NationalID string `json:"national_id" validate:"required"`
	Phone      string `json:"phone"       validate:"required"`
	Password   string `json:"password"    validate:"required"`
}

// Login requests carry no validate tags: a missing field must produce the
// same generic failure as a wrong password, which the service decides.
type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type customerLoginRequest struct {
	NationalID string `json:"national_id"`
	Password   string `json:"password"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type checkNationalIDRequest struct {
	NationalID string `json:"national_id" validate:"required"`
}

// --- Response types ---

type checkNationalIDResponse struct {
	Exists bool `json:"exists"`
}
