package tui

import "github.com/rgehrsitz/takehome/internal/domain"

// ConfigLoadedMsg signals the profile file has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
