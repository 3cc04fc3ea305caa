// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package memory

import (
	"context"

	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
)

// Compile-time check that the store satisfies the song contract.
var _ song.Repository = (*Store)(nil)

// CreateSong inserts a new song and indexes its external catalog id for
// import deduplication.
func (s *Store) CreateSong(_ context.Context, sng *song.Song) error {
	if sng == nil {
		return apperr.ValidationError("Song is required")
	}

	s.mu.Lock()
	if _, exists := s.songs[sng.ID]; exists {
		s.mu.Unlock()
		return apperr.Conflict("Song already exists")
	}
	if sng.GeniusID != 0 {
		if _, exists := s.songByGeniusID[sng.GeniusID]; exists {
			s.mu.Unlock()
			return apperr.Conflict("Song with this external id already imported")
		}
		s.songByGeniusID[sng.GeniusID] = sng.ID
	}
	s.songs[sng.ID] = cloneSong(sng)
	s.songOrder = append(s.songOrder, sng.ID)
	s.mu.Unlock()

	s.commit()
	return nil
}

// GetSong returns a single song by id.
func (s *Store) GetSong(_ context.Context, id string) (*song.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sng, ok := s.songs[id]
	if !ok {
		return nil, apperr.NotFound("Song")
	}
	return cloneSong(sng), nil
}

// GetSongByGeniusID resolves a song by its external catalog id.
func (s *Store) GetSongByGeniusID(_ context.Context, geniusID int64) (*song.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.songByGeniusID[geniusID]
	if !ok {
		return nil, apperr.NotFound("Song")
	}
	return cloneSong(s.songs[id]), nil
}

// ListSongs returns all songs in insertion order.
func (s *Store) ListSongs(_ context.Context) ([]*song.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*song.Song, 0, len(s.songOrder))
	for _, id := range s.songOrder {
		out = append(out, cloneSong(s.songs[id]))
	}
	return out, nil
}

// SongsByArtist is the derived "artist's songs" view: a filter over the
// canonical song table, in insertion order. There is no second list to keep
// in sync.
func (s *Store) SongsByArtist(_ context.Context, username string) ([]*song.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*song.Song, 0)
	for _, id := range s.songOrder {
		if s.songs[id].HasArtist(username) {
			out = append(out, cloneSong(s.songs[id]))
		}
	}
	return out, nil
}

// AddView increments the view counter by exactly one. Serialized by the
// store lock, so concurrent callers never lose an increment.
func (s *Store) AddView(_ context.Context, id string) error {
	s.mu.Lock()
	sng, ok := s.songs[id]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Song")
	}
	sng.Views++
	s.mu.Unlock()

	s.commit()
	return nil
}

// SetLyrics replaces the song's live lyrics text.
func (s *Store) SetLyrics(_ context.Context, id, lyrics string) error {
	s.mu.Lock()
	sng, ok := s.songs[id]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Song")
	}
	sng.Lyrics = lyrics
	s.mu.Unlock()

	s.commit()
	return nil
}

// AddComment appends the comment to the song's thread.
func (s *Store) AddComment(_ context.Context, songID string, c song.Comment) error {
	s.mu.Lock()
	sng, ok := s.songs[songID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Song")
	}
	sng.Comments = append(sng.Comments, c)
	s.mu.Unlock()

	s.commit()
	return nil
}

// UpdateComment applies fn to a single comment under the store lock.
func (s *Store) UpdateComment(_ context.Context, songID, commentID string, fn func(*song.Comment) error) error {
	s.mu.Lock()
	sng, ok := s.songs[songID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Song")
	}

	for i := range sng.Comments {
		if sng.Comments[i].ID != commentID {
			continue
		}
		updated := sng.Comments[i]
		if err := fn(&updated); err != nil {
			s.mu.Unlock()
			return err
		}
		sng.Comments[i] = updated
		s.mu.Unlock()

		s.commit()
		return nil
	}

	s.mu.Unlock()
	return apperr.NotFound("Comment")
}
