// handlers.go: request handlers for the JSON API
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tphakala/birdlist-go/internal/checklist"
	"github.com/tphakala/birdlist-go/internal/errors"
	"github.com/tphakala/birdlist-go/internal/region"
)

// SetRegion stores the normalized bounding box of the submitted map corners
// as this session's region, replacing any previous one.
func (c *Controller) SetRegion(ctx echo.Context) error {
	var corners region.Corners
	if err := ctx.Bind(&corners); err != nil {
		return c.errorResponse(ctx, errors.New(err).
			Component("api").
			Category(errors.CategoryValidation).
			Context("operation", "set_region").
			Build(), "set_region")
	}

	box := c.Selector.Set(c.sessionID(ctx), corners)
	return ctx.JSON(http.StatusOK, map[string]any{
		"success": true,
		"region":  box,
	})
}

// GetRegion returns the session's stored bounding box, if any.
func (c *Controller) GetRegion(ctx echo.Context) error {
	box, found := c.Selector.Get(c.sessionID(ctx))
	return ctx.JSON(http.StatusOK, map[string]any{
		"region_set": found,
		"region":     box,
	})
}

// RegionSpeciesStats returns the per-species aggregate for the session's
// stored region.
func (c *Controller) RegionSpeciesStats(ctx echo.Context) error {
	box, found := c.Selector.Get(c.sessionID(ctx))
	if !found {
		return c.errorResponse(ctx, errors.Newf("no region submitted for this session").
			Component("api").
			Category(errors.CategoryValidation).
			Context("operation", "region_species_stats").
			Build(), "region_species_stats")
	}

	statsRows, err := c.Reporter.RegionSpeciesStats(box)
	if err != nil {
		return c.errorResponse(ctx, err, "region_species_stats")
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"species_stats": statsRows,
	})
}

// FilteredSightings runs the filtered sightings query for the session.
// Query parameters: bird_name narrows to one species, heatmap=true bypasses
// the stored region.
func (c *Controller) FilteredSightings(ctx echo.Context) error {
	species := ctx.QueryParam("bird_name")
	heatmap, _ := strconv.ParseBool(ctx.QueryParam("heatmap"))

	result, err := c.Reporter.FilteredSightings(c.sessionID(ctx), species, heatmap)
	if err != nil {
		return c.errorResponse(ctx, err, "filtered_sightings")
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"sightings": result,
	})
}

// ChecklistsByEventIDs returns the checklists for the comma-separated
// event_ids query parameter, or all checklists when it is absent.
func (c *Controller) ChecklistsByEventIDs(ctx echo.Context) error {
	var eventIDs []string
	if raw := ctx.QueryParam("event_ids"); raw != "" {
		eventIDs = strings.Split(raw, ",")
	}

	checklists, err := c.DS.ChecklistsByEventIDs(eventIDs)
	if err != nil {
		return c.errorResponse(ctx, err, "checklists_by_event_ids")
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"checklists": checklists,
	})
}

// SubmitChecklist validates and stores a new checklist with its sightings.
func (c *Controller) SubmitChecklist(ctx echo.Context) error {
	var in checklist.SubmitInput
	if err := ctx.Bind(&in); err != nil {
		return c.errorResponse(ctx, errors.New(err).
			Component("api").
			Category(errors.CategoryValidation).
			Context("operation", "submit_checklist").
			Build(), "submit_checklist")
	}
	in.ObserverID = observerID(ctx)

	id, err := c.Checklists.Submit(&in)
	if err != nil {
		return c.errorResponse(ctx, err, "submit_checklist")
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"checklist_id": id,
	})
}

// EditChecklist applies a field update and sighting reconciliation to an
// existing checklist.
func (c *Controller) EditChecklist(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.errorResponse(ctx, errors.New(err).
			Component("api").
			Category(errors.CategoryValidation).
			Context("operation", "edit_checklist").
			Build(), "edit_checklist")
	}

	var in checklist.EditInput
	if err := ctx.Bind(&in); err != nil {
		return c.errorResponse(ctx, errors.New(err).
			Component("api").
			Category(errors.CategoryValidation).
			Context("operation", "edit_checklist").
			Build(), "edit_checklist")
	}
	in.ChecklistID = uint(id)

	if err := c.Checklists.Edit(&in); err != nil {
		return c.errorResponse(ctx, err, "edit_checklist")
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true})
}

// DeleteChecklist removes a checklist and all its sightings.
func (c *Controller) DeleteChecklist(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return c.errorResponse(ctx, errors.New(err).
			Component("api").
			Category(errors.CategoryValidation).
			Context("operation", "delete_checklist").
			Build(), "delete_checklist")
	}

	if err := c.Checklists.Delete(uint(id)); err != nil {
		return c.errorResponse(ctx, err, "delete_checklist")
	}
	return ctx.JSON(http.StatusOK, map[string]any{"success": true})
}

// UserStats returns the observer's history report.
func (c *Controller) UserStats(ctx echo.Context) error {
	userStats, err := c.Reporter.UserStats(observerID(ctx))
	if err != nil {
		return c.errorResponse(ctx, err, "user_stats")
	}
	return ctx.JSON(http.StatusOK, userStats)
}

// TotalHours returns the observer's summed checklist duration.
func (c *Controller) TotalHours(ctx echo.Context) error {
	hours, err := c.Reporter.TotalHours(observerID(ctx))
	if err != nil {
		return c.errorResponse(ctx, err, "total_hours")
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"total_hours": hours,
	})
}

// Species returns the species catalog, narrowed by the q prefix parameter
// when present. The limit parameter caps prefix results, default 5.
func (c *Controller) Species(ctx echo.Context) error {
	prefix := ctx.QueryParam("q")
	if prefix == "" {
		species, err := c.DS.AllSpecies()
		if err != nil {
			return c.errorResponse(ctx, err, "species")
		}
		return ctx.JSON(http.StatusOK, map[string]any{"species": species})
	}

	limit := 5
	if raw := ctx.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	species, err := c.DS.SpeciesByPrefix(prefix, limit)
	if err != nil {
		return c.errorResponse(ctx, err, "species")
	}
	return ctx.JSON(http.StatusOK, map[string]any{"species": species})
}
