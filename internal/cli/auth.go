// Copyright (c) 2026 Verso. All rights reserved.
// Author: ngocanh.tran.dev@gmail.com

package cli

import (
	"context"
	"errors"

	"github.com/ngocanhtran/verso/internal/core/account"
	"github.com/ngocanhtran/verso/internal/platform/sec"
)

// authMenu runs until a login succeeds or the user exits. The bool result
// reports "exit requested".
func (c *CLI) authMenu(ctx context.Context) (bool, error) {
	c.printf("")
	c.printf("1) Login")
	c.printf("2) Register")
	c.printf("0) Exit")

	choice, err := c.promptChoice(2)
	if err != nil {
		if errors.Is(err, errInputClosed) {
			return true, nil
		}
		return false, err
	}

	switch choice {
	case 0:
		return true, nil
	case 1:
		return false, c.login(ctx)
	case 2:
		return false, c.register(ctx)
	}
	return false, nil
}

func (c *CLI) login(ctx context.Context) error {
	username, err := c.prompt("Username")
	if err != nil {
		return err
	}
	password, err := c.prompt("Password")
	if err != nil {
		return err
	}

	acct, loginErr := c.accounts.Login(ctx, username, password)
	if loginErr != nil {
		c.fail(loginErr)
		return nil
	}

	c.current = acct
	c.printf("Welcome back, %s (%s).", acct.DisplayName, acct.Role.DisplayName())
	return nil
}

func (c *CLI) register(ctx context.Context) error {
	username, err := c.prompt("Username")
	if err != nil {
		return err
	}
	password, err := c.prompt("Password")
	if err != nil {
		return err
	}
	displayName, err := c.prompt("Display name")
	if err != nil {
		return err
	}
	age, err := c.promptInt("Age")
	if err != nil {
		return err
	}
	email, err := c.prompt("Email")
	if err != nil {
		return err
	}
	role, err := c.prompt("Role (user/artist/admin)")
	if err != nil {
		return err
	}

	acct, regErr := c.accounts.Register(ctx, account.RegisterInput{
		Username:    username,
		Password:    password,
		DisplayName: displayName,
		Age:         age,
		Email:       email,
		Role:        role,
	})
	if regErr != nil {
		c.fail(regErr)
		return nil
	}

	c.printf("Registered %s.", acct.Username)
	if acct.Role == sec.RoleArtist {
		c.printf("Artist accounts need administrator approval before login.")
		return nil
	}

	c.current = acct
	c.printf("You are now logged in.")
	return nil
}
