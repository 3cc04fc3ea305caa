// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package account implements the identity side of the catalog: registration,
login, the artist verification workflow, the follow graph, and notification
delivery.

Architecture:

  - Account: One record per identity, tagged with an immutable role. Role
    payloads are optional sub-structs instead of an inheritance tree; callers
    switch on Role rather than on dynamic types.
  - Service: Orchestrates business logic (Register, Login, Verify, Follow).
  - Repository: Abstracted storage, including the pending-approval queue and
    per-recipient notification queues.

Usernames are unique case-insensitively and are the foreign key everywhere
else in the system (songs, edits, comments reference usernames, never
pointers into this package).
*/
package account

import (
	"strings"
	"time"

	"github.com/ngocanhtran/verso/internal/platform/sec"
)

// Account is a registered identity. Role is immutable after creation;
// exactly one of the role payloads is set, matching Role.
type Account struct {
	Username string `json:"username"`
	// PasswordHash is a bcrypt hash. It is serialized only into the local
	// snapshot file, never rendered by the front-end.
	PasswordHash string    `json:"password_hash"`
	DisplayName  string    `json:"display_name"`
	Age          int       `json:"age"`
	Email        string    `json:"email"`
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	User   *UserProfile   `json:"user,omitempty"`
	Artist *ArtistProfile `json:"artist,omitempty"`
	Admin  *AdminProfile  `json:"admin,omitempty"`
}

// UserProfile is the payload for regular users.
type UserProfile struct {
	// Following is the ordered set of followed artist usernames (no
	// duplicates).
	Following []string `json:"following,omitempty"`
}

// ArtistProfile is the payload for artist accounts.
type ArtistProfile struct {
	// Verified gates login, follows, album creation, and search visibility.
	// Only an administrator action sets it.
	Verified bool `json:"verified"`
	// GeniusID is the external catalog id, set for imported artists.
	GeniusID int64  `json:"genius_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// AdminProfile is the payload for administrator accounts. Level and
// department are informational only.
type AdminProfile struct {
	AdminLevel string `json:"admin_level"`
	Department string `json:"department"`
}

// IsVerifiedArtist reports whether the account is an artist that has been
// approved by an administrator.
func (a *Account) IsVerifiedArtist() bool {
	return a.Role == sec.RoleArtist && a.Artist != nil && a.Artist.Verified
}

// IsFollowing reports whether a regular user currently follows the given
// artist username.
func (a *Account) IsFollowing(artistUsername string) bool {
	if a.User == nil {
		return false
	}
	for _, f := range a.User.Following {
		if strings.EqualFold(f, artistUsername) {
			return true
		}
	}
	return false
}

// Field names used by the validation layer.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldAge         = "age"
	FieldEmail       = "email"
)
