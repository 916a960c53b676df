package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core"
	"github.com/harmonyhs/harmony/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, uname)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr, err = cli.usrRepo.GetUserByUsernameOrEmail(ctx, email)
		if err != nil && errors.Cause(err) != user.ErrNotFound {
			return err
		}
	}

	found := usr.ID != ""
	now := time.Now().UTC()
	if !found {
		usr = user.User{
			Username:  uname,
			Email:     email,
			CreatedAt: now,
		}
	}
	if isAdmin {
		usr.Roles = user.AllRoles
	}
	usr.IsActive = true
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if found {
		isActive := true
		_, err = cli.usrRepo.UpdateUser(ctx, usr, &isActive)
	} else {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	}
	return err
}
