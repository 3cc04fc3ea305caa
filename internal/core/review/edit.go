// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

/*
Package review implements the lyric-edit moderation workflow, the core state
machine of the catalog.

Any authenticated user may propose a correction to a song's lyrics. The
proposal snapshots the lyrics as they were at that moment and waits in
Pending state until an owning artist or an administrator approves or
rejects it. Approval applies the proposed text to the song's live lyrics;
rejection records a reason and leaves the song untouched. Both outcomes are
terminal: no operation ever transitions an edit out of Approved or Rejected.

The edit-state change and the lyrics application commit together through the
repository's Decide primitive, so a decision can never half-apply.
*/
package review

import "time"

// Status is the disposition of a lyric edit.
type Status string

const (
	// StatusPending is the initial state; the edit awaits adjudication.
	StatusPending Status = "pending"
	// StatusApproved is terminal; the proposed lyrics were applied.
	StatusApproved Status = "approved"
	// StatusRejected is terminal; the song's lyrics were left untouched.
	StatusRejected Status = "rejected"
)

// Edit is a proposed replacement of a song's lyrics.
type Edit struct {
	ID string `json:"id"`
	// SuggestedBy is the proposing user's username.
	SuggestedBy string `json:"suggested_by"`
	SongID      string `json:"song_id"`
	// OriginalLyrics is a snapshot of the song's lyrics at proposal time,
	// not a live reference. It is what the proposer was looking at, kept so
	// reviewers can judge stale proposals.
	OriginalLyrics string `json:"original_lyrics"`
	ProposedLyrics string `json:"proposed_lyrics"`
	// Explanation is the proposer's free-text rationale.
	Explanation string    `json:"explanation"`
	SuggestedAt time.Time `json:"suggested_at"`
	Status      Status    `json:"status"`
	// ReviewedBy is set only on disposition.
	ReviewedBy string `json:"reviewed_by,omitempty"`
	// RejectionReason is set only when Status is StatusRejected.
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// Decided reports whether the edit has reached a terminal state.
func (e *Edit) Decided() bool {
	return e.Status != StatusPending
}

// Filter narrows edit listings. Zero fields match everything.
type Filter struct {
	SongID      string
	SuggestedBy string
	Status      Status
}

// Matches reports whether the edit satisfies every set filter field.
func (f Filter) Matches(e *Edit) bool {
	if f.SongID != "" && e.SongID != f.SongID {
		return false
	}
	if f.SuggestedBy != "" && e.SuggestedBy != f.SuggestedBy {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}

// Field names used by the validation layer.
const (
	FieldProposedLyrics  = "proposed_lyrics"
	FieldRejectionReason = "reason"
)
