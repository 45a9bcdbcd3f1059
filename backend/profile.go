package backend

import (
	"context"
	"net/http"

	"tablenow/models"
)

// UpdateProfile applies a partial profile update for the authenticated user
// and returns the refreshed profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, userID int64, patch models.ProfilePatch) (*models.Profile, error) {
	payload := struct {
		UserID int64 `json:"user_id"`
		models.ProfilePatch
	}{UserID: userID, ProfilePatch: patch}

	var profile models.Profile
	if err := c.do(ctx, http.MethodPost, "update-profile", nil, token, payload, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteAccount removes the authenticated user's account.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "delete-account", nil, token, nil, nil)
}
