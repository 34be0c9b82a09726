package request

import (
	"smartride-portal/internal/data/entity"

	"github.com/google/uuid"
)

// LoginRequest is posted to a role portal's login route. Drivers and
// passengers sign in with an email, the admin with a username.
type LoginRequest struct {
	Email    string `json:"email" validate:"required_without=Username,omitempty,email"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`

	// Filled by the handler.
	Portal    entity.UserRole `json:"-"`
	Previous  *uuid.UUID      `json:"-"`
	UserAgent *string         `json:"-"`
	IPAddress *string         `json:"-"`
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
	VehicleModel string `json:"vehicleModel,omitempty" validate:"omitempty,max=100"`
	LicensePlate string `json:"licensePlate,omitempty" validate:"omitempty,max=20"`
	Capacity     *int   `json:"capacity,omitempty" validate:"omitempty,min=1"`

	// Set from the portal the form was posted to.
	Role entity.UserRole `json:"-" validate:"oneof=DRIVER PASSENGER"`
}
