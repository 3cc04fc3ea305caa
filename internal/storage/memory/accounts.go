// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package memory

import (
	"context"
	"strings"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/platform/apperr"
	"github.com/ngocanhtran/verso/internal/platform/sec"
)

// Compile-time check that the store satisfies the account contract.
var _ account.Repository = (*Store)(nil)

// CreateAccount inserts a new account. Usernames are unique
// case-insensitively; inserting a duplicate fails with a Conflict and
// mutates nothing.
func (s *Store) CreateAccount(_ context.Context, a *account.Account) error {
	if a == nil {
		return apperr.ValidationError("Account is required")
	}
	k := key(a.Username)

	s.mu.Lock()
	if _, exists := s.accounts[k]; exists {
		s.mu.Unlock()
		return apperr.Conflict("Username is already taken")
	}
	s.accounts[k] = cloneAccount(a)
	s.accountOrder = append(s.accountOrder, k)
	s.mu.Unlock()

	s.commit()
	return nil
}

// GetAccount returns the account with the given username, case-insensitive.
func (s *Store) GetAccount(_ context.Context, username string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[key(username)]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return cloneAccount(a), nil
}

// ListAccounts returns all accounts in registration order.
func (s *Store) ListAccounts(_ context.Context) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*account.Account, 0, len(s.accountOrder))
	for _, k := range s.accountOrder {
		out = append(out, cloneAccount(s.accounts[k]))
	}
	return out, nil
}

// UpdateAccount applies fn to the account under the store lock. If fn
// returns an error the account is left untouched.
func (s *Store) UpdateAccount(_ context.Context, username string, fn func(*account.Account) error) error {
	k := key(username)

	s.mu.Lock()
	current, ok := s.accounts[k]
	if !ok {
		s.mu.Unlock()
		return apperr.NotFound("Account")
	}

	// fn works on a copy; the copy only replaces the canonical record when
	// fn succeeds, so failed updates cannot half-apply.
	updated := cloneAccount(current)
	if err := fn(updated); err != nil {
		s.mu.Unlock()
		return err
	}
	s.accounts[k] = updated
	s.mu.Unlock()

	s.commit()
	return nil
}

// FindArtistByDisplayName resolves an artist by display name,
// case-insensitive, in registration order.
func (s *Store) FindArtistByDisplayName(_ context.Context, name string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, k := range s.accountOrder {
		a := s.accounts[k]
		if a.Role == sec.RoleArtist && strings.EqualFold(a.DisplayName, name) {
			return cloneAccount(a), nil
		}
	}
	return nil, apperr.NotFound("Artist")
}

// # Approval queue

// EnqueueApproval appends the artist to the pending-approval queue.
func (s *Store) EnqueueApproval(_ context.Context, username string) error {
	k := key(username)

	s.mu.Lock()
	for _, queued := range s.approvalQueue {
		if queued == k {
			s.mu.Unlock()
			return nil
		}
	}
	s.approvalQueue = append(s.approvalQueue, k)
	s.mu.Unlock()

	s.commit()
	return nil
}

// DequeueApproval removes the artist from the queue; removing an absent
// entry is a no-op.
func (s *Store) DequeueApproval(_ context.Context, username string) error {
	k := key(username)

	s.mu.Lock()
	removed := false
	for i, queued := range s.approvalQueue {
		if queued == k {
			s.approvalQueue = append(s.approvalQueue[:i], s.approvalQueue[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.commit()
	}
	return nil
}

// ApprovalQueue returns the pending artists in enqueue order.
func (s *Store) ApprovalQueue(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.approvalQueue...), nil
}

// # Notifications

// AppendNotification appends to the recipient's queue, creating it on first
// use. Blank messages are ignored.
func (s *Store) AppendNotification(_ context.Context, username, message string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	k := key(username)

	s.mu.Lock()
	s.notifications[k] = append(s.notifications[k], message)
	s.mu.Unlock()

	s.commit()
	return nil
}

// Notifications returns the recipient's queue in delivery order. Unknown
// recipients get an empty slice, not an error.
func (s *Store) Notifications(_ context.Context, username string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.notifications[key(username)]...), nil
}

// ClearNotifications drains the recipient's queue.
func (s *Store) ClearNotifications(_ context.Context, username string) error {
	s.mu.Lock()
	delete(s.notifications, key(username))
	s.mu.Unlock()

	s.commit()
	return nil
}
