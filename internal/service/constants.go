package service

import "time"

const (
	// DefaultFetchTimeout bounds a source fetch when none is configured
	DefaultFetchTimeout = 30 * time.Second

	// RecentActivitiesLimit is the number of activities shown on the leaderboard screen
	RecentActivitiesLimit = 10

	// TopRunnersLimit caps the running table
	TopRunnersLimit = 10
)
