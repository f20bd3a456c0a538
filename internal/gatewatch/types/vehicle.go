package types

// VehicleRequest is the body of POST /v1/vehicles and PUT /v1/vehicles/{plate}.
// ExpiresAt is an RFC 3339 date-time or empty for no expiry.
type VehicleRequest struct {
	Plate       string `json:"plate"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	VehicleType string `json:"vehicle_type"`
	EmployeeID  int64  `json:"employee_id"`
	Authorized  *bool  `json:"authorized,omitempty"` // defaults to true on create
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// VehicleResponse is one registry row joined with its owner.
type VehicleResponse struct {
	Plate       string `json:"plate"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	VehicleType string `json:"vehicle_type"`
	EmployeeID  int64  `json:"employee_id"`
	Authorized  bool   `json:"authorized"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	Department  string `json:"department,omitempty"`
}

// OperatorResponse is one gate operator, as returned by GET /v1/operators.
type OperatorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EmployeeResponse is one active employee, as returned by GET /v1/employees.
type EmployeeResponse struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}
