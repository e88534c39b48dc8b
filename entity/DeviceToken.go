package entity

import (
	"gorm.io/gorm"
)

// DeviceToken identifies one device for push delivery and session
// re-authentication. A token belongs to exactly one user or one admin;
// re-registering moves it.
type DeviceToken struct {
	gorm.Model
	Token string `json:"token" gorm:"uniqueIndex;not null"`

	UserID *uint `json:"user_id,omitempty"`
	User   *User `json:"-"`

	AdminID *uint `json:"admin_id,omitempty"`
	Admin   *Admin `json:"-"`
}
