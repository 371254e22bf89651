package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/auxillary/internal/client/client"
	"github.com/dmitrijs2005/auxillary/internal/common"
)

func (a *App) Register(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	msg, err := a.client.Register(ctx, client.RegisterParams{
		UserName:        userName,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		fmt.Fprintln(a.out, describe(err))
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	tokens, err := a.client.Login(ctx, userName, string(password))
	if err != nil {
		fmt.Fprintln(a.out, describe(err))
		return err
	}

	fmt.Fprintln(a.out, "Logged in.")
	fmt.Fprintf(a.out, "Access token:  %s\n", tokens.AccessToken)
	fmt.Fprintf(a.out, "Refresh token: %s\n", tokens.RefreshToken)
	return nil
}
