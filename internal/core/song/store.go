// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package song

import "context"

// Repository is the storage contract for songs and their comment threads.
//
// Implementations must apply each call atomically: AddView increments are
// never lost under concurrent callers, and UpdateComment/SetLyrics commit
// entirely or not at all.
type Repository interface {
	CreateSong(ctx context.Context, s *Song) error
	GetSong(ctx context.Context, id string) (*Song, error)
	// GetSongByGeniusID resolves a song by its external catalog id, for
	// import deduplication. Returns apperr.NotFound when absent.
	GetSongByGeniusID(ctx context.Context, geniusID int64) (*Song, error)
	// ListSongs returns all songs in insertion order.
	ListSongs(ctx context.Context) ([]*Song, error)
	// SongsByArtist is the derived "artist's songs" view, in insertion order.
	SongsByArtist(ctx context.Context, username string) ([]*Song, error)
	// AddView increments the view counter by exactly one.
	AddView(ctx context.Context, id string) error
	// SetLyrics replaces the live lyrics text.
	SetLyrics(ctx context.Context, id, lyrics string) error
	AddComment(ctx context.Context, songID string, c Comment) error
	// UpdateComment mutates a single comment under the store lock.
	UpdateComment(ctx context.Context, songID, commentID string, fn func(*Comment) error) error
}
