package dto

// CreateTechnicianRequest payload.
type CreateTechnicianRequest struct {
	Name string `json:"name"`
}

// TechnicianResponse response.
type TechnicianResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
