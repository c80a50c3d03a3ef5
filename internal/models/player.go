package models

// PlayerInfo is the canonical account data returned by the player directory.
type PlayerInfo struct {
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}

// Label prefers the title display name and falls back to the account username.
func (p *PlayerInfo) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}
