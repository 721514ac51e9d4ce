package domain

// Device is a customer-owned unit under repair. Type is a free-text
// category such as "Laptop" or "Phone".
type Device struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Brand  string `json:"brand,omitempty"`
	Model  string `json:"model,omitempty"`
	Serial string `json:"serial,omitempty"`
}
