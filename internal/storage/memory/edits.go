// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package memory

import (
	"context"

	"github.com/ngocanhtran/verso/internal/core/review"
	"github.com/ngocanhtran/verso/internal/core/song"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
)

// Compile-time check that the store satisfies the review contract.
var _ review.Repository = (*Store)(nil)

// CreateEdit appends a new lyric edit to the catalog.
func (s *Store) CreateEdit(_ context.Context, e *review.Edit) error {
	if e == nil {
		return apperr.ValidationError("Lyric edit is required")
	}

	s.mu.Lock()
	if _, exists := s.edits[e.ID]; exists {
		s.mu.Unlock()
		return apperr.Conflict("Lyric edit already exists")
	}
	s.edits[e.ID] = cloneEdit(e)
	s.editOrder = append(s.editOrder, e.ID)
	s.mu.Unlock()

	s.commit()
	return nil
}

// GetEdit returns a single edit by id.
func (s *Store) GetEdit(_ context.Context, id string) (*review.Edit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.edits[id]
	if !ok {
		return nil, apperr.NotFound("Lyric edit")
	}
	return cloneEdit(e), nil
}

// ListEdits returns edits matching the filter in submission order. Decided
// edits are kept forever; nothing is purged.
func (s *Store) ListEdits(_ context.Context, f review.Filter) ([]*review.Edit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*review.Edit, 0)
	for _, id := range s.editOrder {
		if f.Matches(s.edits[id]) {
			out = append(out, cloneEdit(s.edits[id]))
		}
	}
	return out, nil
}

// Decide runs fn against copies of the edit and its target song under the
// store lock, and commits both mutations together when fn succeeds. When fn
// fails, neither record changes — a decision can never half-apply.
func (s *Store) Decide(_ context.Context, editID string, fn func(e *review.Edit, sng *song.Song) error) error {
	s.mu.Lock()
	current, ok := s.edits[editID]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Lyric edit")
	}
	targetSong, ok := s.songs[current.SongID]
	if !ok {
		// Dangling song reference: an ordinary failure, not a fault.
		s.mu.Unlock()
		return apperr.NotFound("Song")
	}

	updatedEdit := cloneEdit(current)
	updatedSong := cloneSong(targetSong)
	if err := fn(updatedEdit, updatedSong); err != nil {
		s.mu.Unlock()
		return err
	}
	s.edits[editID] = updatedEdit
	s.songs[current.SongID] = updatedSong
	s.mu.Unlock()

	s.commit()
	return nil
}
