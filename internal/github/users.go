package github

import (
	"context"
	"fmt"
	"strings"
)

// ValidateUser checks that the argument names an existing GitHub user.
// Email-shaped input is rejected before any API call: the membership
// endpoints take usernames, and an email would address the wrong entity.
func (c *Client) ValidateUser(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if strings.Contains(username, "@") {
		return &EmailInputError{Input: username}
	}

	err := retryTransient(ctx, func() error {
		_, _, err := c.users.Get(ctx, username)
		return err
	})
	if err != nil {
		return fmt.Errorf("validating user %q: %w", username, err)
	}
	return nil
}
