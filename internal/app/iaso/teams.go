// internal/app/iaso/teams.go
package iaso

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

type teamDTO struct {
	ID       flexInt64       `json:"id"`
	Name     string          `json:"name"`
	Type     models.TeamType `json:"type"`
	SubTeams []flexInt64     `json:"sub_teams"`
	Users    []flexInt64     `json:"users"`
	Color    string          `json:"color,omitempty"`
}

func (d teamDTO) toModel(now time.Time) models.Team {
	t := models.Team{
		ID:       int64(d.ID),
		Name:     d.Name,
		Type:     d.Type,
		Color:    d.Color,
		SyncedAt: now,
	}
	for _, id := range d.SubTeams {
		t.SubTeamIDs = append(t.SubTeamIDs, int64(id))
	}
	for _, id := range d.Users {
		t.UserIDs = append(t.UserIDs, int64(id))
	}
	return t
}

// Teams lists the full team catalog.
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	var resp struct {
		Teams []teamDTO `json:"teams"`
	}
	if err := c.get(ctx, "/api/teams/", nil, &resp); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]models.Team, 0, len(resp.Teams))
	for _, d := range resp.Teams {
		out = append(out, d.toModel(now))
	}
	return out, nil
}

// TeamSubTree lists a team and every team nested under it.
func (c *Client) TeamSubTree(ctx context.Context, teamID int64) ([]models.Team, error) {
	q := url.Values{}
	q.Set("ancestor", strconv.FormatInt(teamID, 10))

	var resp struct {
		Teams []teamDTO `json:"teams"`
	}
	if err := c.get(ctx, "/api/teams/", q, &resp); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]models.Team, 0, len(resp.Teams))
	for _, d := range resp.Teams {
		out = append(out, d.toModel(now))
	}
	return out, nil
}

// SaveTeamColor persists a team's display color upstream. Persisted color is
// canonical; palette defaults only fill gaps locally.
func (c *Client) SaveTeamColor(ctx context.Context, teamID int64, color string) error {
	body := struct {
		Color string `json:"color"`
	}{Color: color}
	return c.do(ctx, "PATCH", fmt.Sprintf("/api/teams/%d/", teamID), nil, body, nil)
}
