package domain

// Technician is a shop worker tickets can be assigned to.
type Technician struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
