// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package song implements the song half of the catalog: song records, comment
threads, view accounting, and genre classification.

Architecture:

  - Song: The canonical record. Artists are referenced by username; an
    artist's discography is a derived view computed by the store, never a
    second mutable list.
  - Comment: Embedded in the owning song and mutated through the repository,
    so like/dislike updates are visible without a separate commit call.
  - Service: Validation and orchestration; all state lives behind Repository.
*/
package song

import (
	"strings"
	"time"
)

// Lyrics placeholders. A song whose lyrics equal LyricsLoading is in the
// pending-lyrics sub-state: it was imported and the background fetch has not
// resolved yet.
const (
	LyricsLoading     = "Loading lyrics..."
	LyricsUnavailable = "Lyrics not available"
)

// Song is the canonical song record.
type Song struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Lyrics is the live lyrics text. It is mutated by the owning artist or
	// by an approved lyric edit, and by the background import fetch while
	// still a placeholder.
	Lyrics string `json:"lyrics"`
	// ArtistIDs is the ordered, non-empty list of owning artists (usernames).
	ArtistIDs []string  `json:"artist_ids"`
	AlbumID   string    `json:"album_id,omitempty"`
	Genre     Genre     `json:"genre"`
	Tags      []string  `json:"tags,omitempty"`
	ReleaseDate time.Time `json:"release_date"`
	// Views is monotonically non-negative; increments go through the store
	// so concurrent callers never lose updates.
	Views int `json:"views"`
	// GeniusID is the external catalog id (0 = not imported). Imports are
	// deduplicated on it.
	GeniusID     int64     `json:"genius_id,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Comments     []Comment `json:"comments,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasArtist reports whether the given username is among the song's owning
// artists. Usernames compare case-insensitively everywhere in Verso.
func (s *Song) HasArtist(username string) bool {
	for _, id := range s.ArtistIDs {
		if strings.EqualFold(id, username) {
			return true
		}
	}
	return false
}

// LyricsPending reports whether the song is still waiting for its imported
// lyrics to arrive.
func (s *Song) LyricsPending() bool {
	return s.Lyrics == LyricsLoading
}

// Comment is a user remark attached to a song. CreatedAt is immutable after
// construction; like/dislike counters never go negative.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"` // username
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
}

// Score returns the comment's net score (likes − dislikes).
func (c *Comment) Score() int {
	return c.Likes - c.Dislikes
}

// Field names used by the validation layer.
const (
	FieldTitle        = "title"
	FieldArtist       = "artist"
	FieldGenre        = "genre"
	FieldReleaseDate  = "release_date"
	FieldThumbnailURL = "thumbnail_url"
	FieldCommentText  = "text"
)
