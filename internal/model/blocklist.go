package model

// Blocklist is a user's set of blocked domains
type Blocklist struct {
	UserID  string   `json:"userId"`
	Domains []string `json:"domains"`
}
