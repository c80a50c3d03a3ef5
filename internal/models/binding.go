package models

import "time"

type IdentityBinding struct {
	RequesterID    string    `json:"requester_id" db:"requester_id"`
	RequesterLabel string    `json:"requester_label" db:"requester_label"`
	ExternalID     string    `json:"external_id" db:"external_id"`
	ExternalLabel  string    `json:"external_label" db:"external_label"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type AllowListEntry struct {
	ExternalID    string    `json:"external_id" db:"external_id"`
	ExternalLabel string    `json:"external_label" db:"external_label"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
