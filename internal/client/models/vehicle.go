// Package models defines the client-side domain types: users, vehicles,
// merch items, meetups, and the wire envelopes the backend speaks.
package models

import "github.com/google/uuid"

// Stage bounds for tuning stages. StageStock..StageThree map to 0..3.
const (
	StageStock = 0
	StageMax   = 3
)

// VehicleClass is an optional backend-assigned classification.
type VehicleClass string

const (
	VehicleClassStreet VehicleClass = "street"
	VehicleClassTrack  VehicleClass = "track"
	VehicleClassShow   VehicleClass = "show"
	VehicleClassDrift  VehicleClass = "drift"
)

// Spec is a single labelled value on a vehicle's spec sheet
// ("0-60", "3.1s"). Order is user-defined and preserved.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Mod is a single modification line on a vehicle's build list.
type Mod struct {
	Title   string `json:"title"`
	Notes   string `json:"notes"`
	IsMajor bool   `json:"is_major"`
}

// Vehicle is a user's car as held on-device.
//
// ID is generated locally and never changes. BackendID stays nil until the
// first successful create call; once set it is the join key for every
// subsequent update and delete. A vehicle with a nil BackendID exists only
// on this device.
type Vehicle struct {
	ID          string        `json:"id"`
	BackendID   *int64        `json:"backend_id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageRef    string        `json:"image_ref"`
	Horsepower  int           `json:"horsepower"`
	Stage       int           `json:"stage"`
	Specs       []Spec        `json:"specs"`
	Mods        []Mod         `json:"mods"`
	IsJailbreak bool          `json:"is_jailbreak"`
	Class       *VehicleClass `json:"class,omitempty"`
}

// NewPlaceholderVehicle returns the minimal default vehicle appended when the
// user taps "add" before filling anything in.
func NewPlaceholderVehicle() Vehicle {
	return Vehicle{
		ID:          uuid.NewString(),
		Name:        "New Car",
		Description: "Tell us about your build",
		Stage:       StageStock,
		Specs:       []Spec{},
		Mods:        []Mod{},
	}
}
