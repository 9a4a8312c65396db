package cmd

import "time"

// Config carries everything the dashboard agent needs at startup. Values
// come from the environment (see cmd/app/main.go).
type Config struct {
	BackendBaseURL    string
	TrackingWSURL     string
	ViewerID          string
	ViewerRole        string
	ViewerToken       string
	PollInterval      time.Duration
	ReconnectDelay    time.Duration
	KeepaliveInterval time.Duration
	HTTPTimeout       time.Duration
	FetchLimit        int
}
