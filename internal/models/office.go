package models

// Office представляет отделение, к которому привязывается отправление.
type Office struct {
	UID     string `json:"uid"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}
