// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package review

import (
	"context"

	"github.com/ngocanhtran/verso/internal/core/song"
)

// Repository is the storage contract for lyric edits.
type Repository interface {
	CreateEdit(ctx context.Context, e *Edit) error
	GetEdit(ctx context.Context, id string) (*Edit, error)
	// ListEdits returns edits matching the filter in submission order. The
	// full history is kept; decided edits are never purged.
	ListEdits(ctx context.Context, f Filter) ([]*Edit, error)
	// Decide runs fn against the edit and its target song under the store
	// lock. Mutations made by fn commit together when it returns nil; when
	// it returns an error nothing is persisted. This is the only path that
	// may change an edit's status or apply lyrics from an edit.
	Decide(ctx context.Context, editID string, fn func(e *Edit, s *song.Song) error) error
}
