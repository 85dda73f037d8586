package model

type Auth struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
}
