package dto

// CreateDeviceRequest payload.
type CreateDeviceRequest struct {
	Type   string `json:"type"`
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Serial string `json:"serial"`
}

// DeviceResponse response.
type DeviceResponse struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Brand  string `json:"brand,omitempty"`
	Model  string `json:"model,omitempty"`
	Serial string `json:"serial,omitempty"`
}
