package models

import "time"

type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Email        string    `json:"email" bson:"email"`
	Password     string    `json:"-" bson:"password"`
	FullName     string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	City         string    `json:"city,omitempty" bson:"city,omitempty"`
	Country      string    `json:"country,omitempty" bson:"country,omitempty"`
	Street       string    `json:"street,omitempty" bson:"street,omitempty"`
	ZipCode      string    `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Role         []string  `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	IsStaff      bool      `json:"is_staff" bson:"is_staff"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin    time.Time `json:"last_login" bson:"last_login"`
	RefreshToken string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// DeliveryAddress joins the user's address fields into the single-line form
// stored on orders.
func (u User) DeliveryAddress() string {
	addr := ""
	for _, part := range []string{u.Street, u.City, u.ZipCode, u.Country} {
		if part == "" {
			continue
		}
		if addr != "" {
			addr += ", "
		}
		addr += part
	}
	return addr
}
