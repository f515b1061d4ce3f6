package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	status, err := c.authService.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}

	if !status.LoggedIn() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'vocab login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	if status.HasAccessToken {
		c.io.Println("Access token: stored")
	} else {
		c.io.Println("Access token: missing, a new one will be issued on the next request")
	}
	c.io.Println("Refresh token: stored")

	return nil
}
