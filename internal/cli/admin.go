// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package cli

import (
	"context"
	"errors"

	"github.com/ngocanhtran/verso/internal/core/review"
)

func (c *CLI) adminMenu(ctx context.Context) error {
	c.printf("")
	c.printf("-- %s (admin) --", c.current.DisplayName)
	c.printf("1) Artist approval queue")
	c.printf("2) All lyric corrections")
	c.printf("3) Adjudicate pending corrections")
	c.printf("4) Search users")
	c.printf("5) Notifications")
	c.printf("0) Log out")

	choice, err := c.promptChoice(5)
	if err != nil {
		if errors.Is(err, errInputClosed) {
			c.current = nil
			return nil
		}
		return err
	}

	switch choice {
	case 0:
		c.logout()
		return nil
	case 1:
		return c.approvalQueue(ctx)
	case 2:
		return c.allEdits(ctx)
	case 3:
		return c.adjudicatePending(ctx)
	case 4:
		return c.searchUsers(ctx)
	case 5:
		return c.showNotifications(ctx)
	}
	return nil
}

func (c *CLI) approvalQueue(ctx context.Context) error {
	pending, err := c.accounts.ArtistsForApproval(ctx)
	if err != nil {
		c.fail(err)
		return nil
	}
	if len(pending) == 0 {
		c.printf("No artists waiting for approval.")
		return nil
	}
	for i, a := range pending {
		c.printf("  %d) %s (@%s, %s)", i+1, a.DisplayName, a.Username, a.Email)
	}

	n, err := c.promptInt("Verify which (0 to skip)")
	if err != nil {
		return err
	}
	if n < 1 || n > len(pending) {
		return nil
	}

	target := pending[n-1]
	if verifyErr := c.accounts.VerifyArtist(ctx, c.current.Username, target.Username); verifyErr != nil {
		c.fail(verifyErr)
		return nil
	}
	c.printf("Verified %s. They can now log in.", target.DisplayName)
	return nil
}

func (c *CLI) allEdits(ctx context.Context) error {
	edits, err := c.reviews.AllEdits(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	if len(edits) == 0 {
		c.printf("No lyric corrections yet.")
		return nil
	}
	for _, e := range edits {
		c.renderEdit(e)
	}
	return nil
}

// adjudicatePending narrows the full history down to the undecided edits and
// hands them to the shared review flow.
func (c *CLI) adjudicatePending(ctx context.Context) error {
	edits, err := c.reviews.AllEdits(ctx, c.current.Username)
	if err != nil {
		c.fail(err)
		return nil
	}
	pending := make([]*review.Edit, 0, len(edits))
	for _, e := range edits {
		if e.Status == review.StatusPending {
			pending = append(pending, e)
		}
	}
	return c.adjudicate(ctx, pending)
}

func (c *CLI) searchUsers(ctx context.Context) error {
	query, err := c.prompt("Search")
	if err != nil {
		return err
	}
	users, searchErr := c.accounts.SearchUsers(ctx, query)
	if searchErr != nil {
		c.fail(searchErr)
		return nil
	}
	if len(users) == 0 {
		c.printf("No matches.")
		return nil
	}
	for _, a := range users {
		c.printf("  * %s (@%s) [%s]", a.DisplayName, a.Username, a.Role.DisplayName())
	}
	return nil
}
