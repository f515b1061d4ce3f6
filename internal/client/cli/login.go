package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/vocab/internal/client/api"
	"github.com/iudanet/vocab/internal/client/auth"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	userID, err := c.io.ReadInput("User ID: ")
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	result, err := c.authService.Login(ctx, userID, password)
	if err != nil {
		return loginFailure(err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("User ID: %s\n", result.UserID)
	c.io.Println("Your session has been saved.")

	return nil
}

// loginFailure формулирует причину неудачного входа для пользователя
func loginFailure(err error) error {
	var netErr *api.NetworkError
	var serverErr *api.ServerError

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fmt.Errorf("login failed: %w", err)
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return fmt.Errorf("login failed: %w", err)
	case errors.As(err, &netErr):
		return fmt.Errorf("could not reach the server, check your network connection: %w", err)
	case errors.As(err, &serverErr):
		return fmt.Errorf("login failed with status %d: %w", serverErr.StatusCode, err)
	default:
		return err
	}
}
