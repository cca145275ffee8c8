package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dkazlou/gearhub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, username, and password and creates an account.
// On success the session is already authenticated (the API client stored the
// returned token) and the garage cache is re-scoped to the new user.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, email, string(password), username); err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	if user := a.auth.CurrentUser(); user != nil {
		a.garage.SetUser(user.ID)
	}
	fmt.Println("Welcome to the club!")
	return nil
}

// Login prompts for credentials and authenticates. Errors are shown to the
// user; the auth state stays unauthenticated and nothing retries.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	if user := a.auth.CurrentUser(); user != nil {
		a.garage.SetUser(user.ID)
	}
	fmt.Println("Logged in")
	return nil
}

// Logout clears the session. Safe to call when already logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Println("Logout failed:", err)
		return err
	}
	a.garage.SetUser(0)
	fmt.Println("Logged out")
	return nil
}
