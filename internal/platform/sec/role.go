// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package sec

import "strings"

// # Account Roles

// Role represents the capability set granted to an account. It is immutable
// after the account is created.
type Role string

const (
	// Can verify artists and adjudicate any lyric edit
	RoleAdmin Role = "admin"

	// Can publish songs/albums and adjudicate edits on their own songs
	RoleArtist Role = "artist"

	// Default role: browse, comment, follow, propose lyric edits
	RoleUser Role = "user"
)

// ParseRole maps a free-form role string to a [Role]. Unknown values
// default to [RoleUser], matching the registration flow.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "artist":
		return RoleArtist
	default:
		return RoleUser
	}
}

// DisplayName returns the user-facing label for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "System Administrator"
	case RoleArtist:
		return "Content Creator"
	default:
		return "Regular User"
	}
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleArtist:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
