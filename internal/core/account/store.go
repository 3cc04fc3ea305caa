// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package account

import "context"

// Repository is the storage contract for accounts, the artist approval
// queue, and notification queues.
//
// Username lookups are case-insensitive. Absent records surface as
// apperr.NotFound, never as nil results.
type Repository interface {
	// CreateAccount inserts a new account. Returns apperr.Conflict when the
	// username is already taken (case-insensitive).
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, username string) (*Account, error)
	// ListAccounts returns all accounts in registration order.
	ListAccounts(ctx context.Context) ([]*Account, error)
	// UpdateAccount mutates a single account under the store lock. The
	// closure must not retain the pointer.
	UpdateAccount(ctx context.Context, username string, fn func(*Account) error) error
	// FindArtistByDisplayName resolves an artist account by display name
	// (case-insensitive), for import reconciliation.
	FindArtistByDisplayName(ctx context.Context, name string) (*Account, error)

	// # Approval queue

	EnqueueApproval(ctx context.Context, username string) error
	// DequeueApproval removes the artist from the pending queue. Removal of
	// an absent entry is a no-op.
	DequeueApproval(ctx context.Context, username string) error
	ApprovalQueue(ctx context.Context) ([]string, error)

	// # Notifications

	// AppendNotification appends to the recipient's queue, creating the
	// queue on first use. No deduplication.
	AppendNotification(ctx context.Context, username, message string) error
	Notifications(ctx context.Context, username string) ([]string, error)
	ClearNotifications(ctx context.Context, username string) error
}
