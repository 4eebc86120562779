// internal/app/iaso/orgunits.go
package iaso

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"net/url"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Geography filter values for org unit listings.
const (
	GeographyAny   = "any"
	GeographyShape = "shape"
)

// OrgUnitFilter mirrors the upstream catalog filters.
type OrgUnitFilter struct {
	TypeID           int64
	ParentIDs        []int64
	Geography        string // "", GeographyAny or GeographyShape
	ValidationStatus string
	Page             int
	Limit            int
}

type orgUnitDTO struct {
	ID               flexInt64       `json:"id"`
	Name             string          `json:"name"`
	OrgUnitTypeID    flexInt64       `json:"org_unit_type_id"`
	Parent           *orgUnitDTO     `json:"parent,omitempty"`
	GeoJSON          json.RawMessage `json:"geo_json,omitempty"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
	ValidationStatus string          `json:"validation_status,omitempty"`
}

// toModel converts the DTO and its inline parent chain. The chain arrives
// nested in the payload; ids repeat across rows but each row owns its copy.
func (d *orgUnitDTO) toModel(now time.Time) models.OrgUnit {
	ou := models.OrgUnit{
		ID:               int64(d.ID),
		Name:             d.Name,
		OrgUnitTypeID:    int64(d.OrgUnitTypeID),
		GeoJSON:          d.GeoJSON,
		Latitude:         d.Latitude,
		Longitude:        d.Longitude,
		ValidationStatus: d.ValidationStatus,
		SyncedAt:         now,
	}
	if d.Parent != nil {
		parent := d.Parent.toModel(now)
		ou.Parent = &parent
		ou.ParentID = &parent.ID
	}
	return ou
}

// OrgUnitPage is one page of the org unit catalog.
type OrgUnitPage struct {
	OrgUnits []models.OrgUnit
	Count    int
	HasNext  bool
}

// OrgUnits lists one page of the org unit catalog.
func (c *Client) OrgUnits(ctx context.Context, f OrgUnitFilter) (OrgUnitPage, error) {
	q := url.Values{}
	if f.TypeID != 0 {
		q.Set("orgUnitTypeId", strconv.FormatInt(f.TypeID, 10))
	}
	if len(f.ParentIDs) > 0 {
		parts := make([]string, len(f.ParentIDs))
		for i, id := range f.ParentIDs {
			parts[i] = strconv.FormatInt(id, 10)
		}
		q.Set("orgUnitParentIds", strings.Join(parts, ","))
	}
	if f.Geography != "" {
		q.Set("geography", f.Geography)
	}
	if f.ValidationStatus != "" {
		q.Set("validation_status", f.ValidationStatus)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var resp struct {
		OrgUnits []orgUnitDTO `json:"orgunits"`
		Count    int          `json:"count"`
		HasNext  bool         `json:"has_next"`
	}
	if err := c.get(ctx, "/api/orgunits/", q, &resp); err != nil {
		return OrgUnitPage{}, err
	}

	now := time.Now().UTC()
	page := OrgUnitPage{Count: resp.Count, HasNext: resp.HasNext}
	page.OrgUnits = make([]models.OrgUnit, 0, len(resp.OrgUnits))
	for i := range resp.OrgUnits {
		page.OrgUnits = append(page.OrgUnits, resp.OrgUnits[i].toModel(now))
	}
	return page, nil
}

// AllOrgUnits walks every page of the catalog matching the filter. Used by
// the sync worker; page size is the upstream default when f.Limit is zero.
func (c *Client) AllOrgUnits(ctx context.Context, f OrgUnitFilter) ([]models.OrgUnit, error) {
	var out []models.OrgUnit
	page := f
	if page.Page == 0 {
		page.Page = 1
	}
	for {
		res, err := c.OrgUnits(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, res.OrgUnits...)
		if !res.HasNext {
			return out, nil
		}
		page.Page++
	}
}

// OrgUnit fetches a single org unit with its full parent chain hydrated.
func (c *Client) OrgUnit(ctx context.Context, id int64) (models.OrgUnit, error) {
	var d orgUnitDTO
	if err := c.get(ctx, "/api/orgunits/"+strconv.FormatInt(id, 10)+"/", nil, &d); err != nil {
		return models.OrgUnit{}, err
	}
	return d.toModel(time.Now().UTC()), nil
}
