// Package models defines the documents stored by CampTrack.
//
// # Storage shape
//
// Every model is persisted as one JSON document in a named collection of the
// document store (see internal/storage). Field names in the `json` tags are
// the document field names, so they are also what storage queries filter on.
//
// # Relationships
//
// There are no foreign keys. Relationships are carried as ID strings and,
// where a "list mine" lookup must be fast, as reverse index documents
// (UserTeams, Visited, Favorites) that map an ID to true. Reverse indexes are
// derived data; the owning document is always authoritative:
//   - Team.Members is authoritative for membership; UserTeams is derived.
//   - VisitRecord.Teammates is authoritative for participation; Visited is
//     written once at creation and never resynced.
//
// # Timestamps
//
// All timestamps are Unix epoch milliseconds (int64).
package models

// Collection names used by the ledgers.
const (
	CollectionUsers         = "users"
	CollectionTeams         = "teams"
	CollectionTeamRequests  = "teamRequests"
	CollectionUserTeams     = "userTeams"
	CollectionFavorites     = "favorites"
	CollectionVisits        = "visits"
	CollectionVisited       = "visited"
	CollectionNotifications = "notifications"
	CollectionPlaces        = "places"
	CollectionReports       = "reports"
	CollectionBackpacks     = "backpacks"
	CollectionPosts         = "posts"
	CollectionPostComments  = "postComments"
)
