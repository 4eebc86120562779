// internal/app/iaso/profiles.go
package iaso

import (
	"context"
	"fmt"
	"time"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

type profileDTO struct {
	UserID      flexInt64 `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Color       string    `json:"color,omitempty"`
}

// Profiles lists the full user-profile catalog.
func (c *Client) Profiles(ctx context.Context) ([]models.Profile, error) {
	var resp struct {
		Profiles []profileDTO `json:"profiles"`
	}
	if err := c.get(ctx, "/api/profiles/", nil, &resp); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]models.Profile, 0, len(resp.Profiles))
	for _, d := range resp.Profiles {
		out = append(out, models.Profile{
			UserID:      int64(d.UserID),
			DisplayName: d.DisplayName,
			Color:       d.Color,
			SyncedAt:    now,
		})
	}
	return out, nil
}

// SaveProfileColor persists a user's display color upstream.
func (c *Client) SaveProfileColor(ctx context.Context, userID int64, color string) error {
	body := struct {
		Color string `json:"color"`
	}{Color: color}
	return c.do(ctx, "PATCH", fmt.Sprintf("/api/profiles/%d/", userID), nil, body, nil)
}
