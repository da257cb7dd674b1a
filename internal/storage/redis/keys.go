package redis

import (
	"fmt"

	"github.com/tmorey/clubdesk/internal/model"
)

// Key prefix for all club data
const keyPrefix = "clubdesk"

// Key generation functions for each collection

// profileKey returns the Redis key for a Profile
func profileKey(id model.UserID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, id)
}

// clubKey returns the Redis key for a Club
func clubKey(id model.ClubID) string {
	return fmt.Sprintf("%s:club:%s", keyPrefix, id)
}

// clubSlugIndexKey returns the Redis key for the slug -> club_id index
func clubSlugIndexKey(slug string) string {
	return fmt.Sprintf("%s:idx:club_slug:%s", keyPrefix, slug)
}

// userRolesKey returns the Redis key for the LIST of a user's role assignments
func userRolesKey(id model.UserID) string {
	return fmt.Sprintf("%s:user_roles:%s", keyPrefix, id)
}

// credentialKey returns the Redis key for a Credential
func credentialKey(id model.UserID) string {
	return fmt.Sprintf("%s:credential:%s", keyPrefix, id)
}

// credentialEmailIndexKey returns the Redis key for the email -> user_id index
func credentialEmailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:credential_email:%s", keyPrefix, email)
}

// householdKey returns the Redis key for a Household
func householdKey(id model.HouseholdID) string {
	return fmt.Sprintf("%s:household:%s", keyPrefix, id)
}

// householdEmailIndexKey returns the Redis key for the contact email -> household_id index
func householdEmailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:household_email:%s", keyPrefix, email)
}

// playerRecordKey returns the Redis key for a PlayerRecord
func playerRecordKey(id model.PlayerRecordID) string {
	return fmt.Sprintf("%s:player_record:%s", keyPrefix, id)
}

// playerEmailIndexKey returns the Redis key for the SET of player records for an email
func playerEmailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:player_email:%s", keyPrefix, email)
}

// teamStaffKey returns the Redis key for a TeamStaff record
func teamStaffKey(id model.TeamStaffID) string {
	return fmt.Sprintf("%s:team_staff:%s", keyPrefix, id)
}

// staffEmailIndexKey returns the Redis key for the SET of staff records for an email
func staffEmailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:staff_email:%s", keyPrefix, email)
}
