package models

import "github.com/google/uuid"

// Wire envelopes. The backend wraps single records as {success, message, data}
// and lists as {success, cars} / {success, meets}; failures come back as
// {success: false, message}.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// BackendVehicle is a car record as the server stores it. The numeric ID is
// what local vehicles keep as BackendID.
type BackendVehicle struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Horsepower  int           `json:"horsepower"`
	Stage       int           `json:"stage"`
	Specs       []Spec        `json:"specs"`
	Mods        []Mod         `json:"mods"`
	IsJailbreak bool          `json:"is_jailbreak"`
	Class       *VehicleClass `json:"class"`
}

// ToVehicle maps a backend record to the local shape, minting a fresh local
// ID. The ordered spec and mod lists carry over as-is.
func (b *BackendVehicle) ToVehicle() Vehicle {
	id := b.ID
	return Vehicle{
		ID:          uuid.NewString(),
		BackendID:   &id,
		Name:        b.Name,
		Description: b.Description,
		ImageRef:    b.ImageURL,
		Horsepower:  b.Horsepower,
		Stage:       b.Stage,
		Specs:       b.Specs,
		Mods:        b.Mods,
		IsJailbreak: b.IsJailbreak,
		Class:       b.Class,
	}
}

// VehicleRequest is the create/update body. UserID is snake_case on the wire.
type VehicleRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Horsepower  int           `json:"horsepower"`
	Stage       int           `json:"stage"`
	Specs       []Spec        `json:"specs"`
	Mods        []Mod         `json:"mods"`
	IsJailbreak bool          `json:"is_jailbreak"`
	Class       *VehicleClass `json:"class,omitempty"`
	UserID      int64         `json:"user_id"`
}

// VehicleRequestFrom builds the wire body for a local vehicle.
func VehicleRequestFrom(v *Vehicle, userID int64) VehicleRequest {
	return VehicleRequest{
		Name:        v.Name,
		Description: v.Description,
		ImageURL:    v.ImageRef,
		Horsepower:  v.Horsepower,
		Stage:       v.Stage,
		Specs:       v.Specs,
		Mods:        v.Mods,
		IsJailbreak: v.IsJailbreak,
		Class:       v.Class,
		UserID:      userID,
	}
}

type VehicleEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *BackendVehicle `json:"data"`
}

type VehiclesEnvelope struct {
	Success bool             `json:"success"`
	Cars    []BackendVehicle `json:"cars"`
}

type MeetupsEnvelope struct {
	Success bool     `json:"success"`
	Meets   []Meetup `json:"meets"`
}

// ErrorEnvelope is the structured error body non-2xx responses may carry.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// UploadResponse is returned by the multipart image upload endpoint.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}
