package model

import "time"

// ClubID uniquely identifies a club
type ClubID string

// TeamID uniquely identifies a team within a club
type TeamID string

// Club is a sports club record
type Club struct {
	ID        ClubID
	Name      string
	Slug      string
	Sport     string
	County    string
	Color     string
	CreatedAt time.Time
}

// Demo club attributes used before a real club is set or created
const (
	DemoClubID   ClubID = "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"
	DemoClubName string = "Ashford Town FC"
)

// DefaultClub returns the demo club every session starts scoped to
func DefaultClub() Club {
	return Club{
		ID:    DemoClubID,
		Name:  DemoClubName,
		Sport: "football",
		Color: "#1d4ed8",
	}
}
