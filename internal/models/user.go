package models

// UserRole mirrors the roles known to the dashboard's identity provider.
type UserRole string

const (
	RoleStudent      UserRole = "student"
	RoleAdmin        UserRole = "admin"
	RoleClerk        UserRole = "clerk"
	RoleHostelWarden UserRole = "hostel-warden"
)

// User is the subset of the identity collaborator's user the grade engine needs.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role"`
	IsActive  bool     `json:"isActive"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
