// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package album

import (
	"context"

	"github.com/ngocanhtran/verso/internal/core/song"
)

// Repository is the storage contract for albums.
type Repository interface {
	CreateAlbum(ctx context.Context, a *Album) error
	GetAlbum(ctx context.Context, id string) (*Album, error)
	// AlbumByTitle resolves an album by title, case-insensitive. First match
	// in insertion order wins.
	AlbumByTitle(ctx context.Context, title string) (*Album, error)
	AlbumsByArtist(ctx context.Context, username string) ([]*Album, error)
	ListAlbums(ctx context.Context) ([]*Album, error)
	// AttachSong appends the song to the album's tracklist and back-fills
	// the song's AlbumID in one critical section. The guard runs under the
	// store lock and may veto the attachment by returning an error; on veto
	// nothing is mutated.
	AttachSong(ctx context.Context, albumID, songID string, guard func(*Album, *song.Song) error) error
}
