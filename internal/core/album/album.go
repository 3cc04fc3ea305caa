// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

// Package album implements album creation and tracklist management.
//
// The album record owns the ordered tracklist; the song's AlbumID back-ref
// is updated in the same store critical section, so the two can never
// disagree.
package album

import "time"

// Album groups songs released together by a single artist.
type Album struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ArtistID    string    `json:"artist_id"` // owning artist username
	ReleaseDate time.Time `json:"release_date"`
	// TrackIDs is the ordered tracklist (song ids).
	TrackIDs  []string  `json:"track_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasTrack reports whether the song is already on the tracklist.
func (a *Album) HasTrack(songID string) bool {
	for _, id := range a.TrackIDs {
		if id == songID {
			return true
		}
	}
	return false
}

// Field names used by the validation layer.
const (
	FieldTitle       = "title"
	FieldArtist      = "artist"
	FieldReleaseDate = "release_date"
)
