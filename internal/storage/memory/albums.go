// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package memory

import (
	"context"
	"strings"

	"github.com/ngocanhtran/verso/internal/core/album"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
)

// Compile-time check that the store satisfies the album contract.
var _ album.Repository = (*Store)(nil)

// CreateAlbum inserts a new album.
func (s *Store) CreateAlbum(_ context.Context, a *album.Album) error {
	if a == nil {
		return apperr.ValidationError("Album is required")
	}

	s.mu.Lock()
	if _, exists := s.albums[a.ID]; exists {
		s.mu.Unlock()
		return apperr.Conflict("Album already exists")
	}
	s.albums[a.ID] = cloneAlbum(a)
	s.albumOrder = append(s.albumOrder, a.ID)
	s.mu.Unlock()

	s.commit()
	return nil
}

// GetAlbum returns a single album by id.
func (s *Store) GetAlbum(_ context.Context, id string) (*album.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.albums[id]
	if !ok {
		return nil, apperr.NotFound("Album")
	}
	return cloneAlbum(a), nil
}

// AlbumByTitle resolves an album by title, case-insensitive, first match in
// insertion order.
func (s *Store) AlbumByTitle(_ context.Context, title string) (*album.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.albumOrder {
		if strings.EqualFold(s.albums[id].Title, title) {
			return cloneAlbum(s.albums[id]), nil
		}
	}
	return nil, apperr.NotFound("Album")
}

// AlbumsByArtist returns the artist's albums in insertion order.
func (s *Store) AlbumsByArtist(_ context.Context, username string) ([]*album.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*album.Album, 0)
	for _, id := range s.albumOrder {
		if strings.EqualFold(s.albums[id].ArtistID, username) {
			out = append(out, cloneAlbum(s.albums[id]))
		}
	}
	return out, nil
}

// ListAlbums returns all albums in insertion order.
func (s *Store) ListAlbums(_ context.Context) ([]*album.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*album.Album, 0, len(s.albumOrder))
	for _, id := range s.albumOrder {
		out = append(out, cloneAlbum(s.albums[id]))
	}
	return out, nil
}

// AttachSong appends the song to the album's tracklist and back-fills the
// song's AlbumID in one critical section. The guard may veto; on veto (or
// missing album/song) nothing is mutated.
func (s *Store) AttachSong(_ context.Context, albumID, songID string, guard func(*album.Album, *song.Song) error) error {
	s.mu.Lock()
	a, ok := s.albums[albumID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Album")
	}
	sng, ok := s.songs[songID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Song")
	}

	if guard != nil {
		if err := guard(cloneAlbum(a), cloneSong(sng)); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	a.TrackIDs = append(a.TrackIDs, songID)
	sng.AlbumID = albumID
	s.mu.Unlock()

	s.commit()
	return nil
}
