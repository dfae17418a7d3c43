package client

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListPlants(ctx context.Context, query string) ([]Plant, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	var out []Plant
	err := c.do(ctx, http.MethodGet, withQuery("/plants", q), nil, &out)
	return out, err
}

// GetPlant fetches a plant by id or by name.
func (c *Client) GetPlant(ctx context.Context, ref string) (*Plant, error) {
	var out Plant
	if err := c.do(ctx, http.MethodGet, "/plants/"+escape(ref), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPlantsByLocation(ctx context.Context, locationName string) ([]Plant, error) {
	var out []Plant
	err := c.do(ctx, http.MethodGet, "/plants/location/"+escape(locationName), nil, &out)
	return out, err
}

func (c *Client) ListPlantsBySpecies(ctx context.Context, speciesName string) ([]Plant, error) {
	var out []Plant
	err := c.do(ctx, http.MethodGet, "/plants/species/"+escape(speciesName), nil, &out)
	return out, err
}

func (c *Client) CreatePlant(ctx context.Context, in NewPlant) (*Plant, error) {
	in.Photo = blankPhoto(in.Photo)
	var out Plant
	if err := c.do(ctx, http.MethodPost, "/plants", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePlant(ctx context.Context, ref string, patch PlantPatch) (*Plant, error) {
	var out Plant
	if err := c.do(ctx, http.MethodPatch, "/plants/"+escape(ref), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePlant removes only the plant; the server answers 409 while reminders
// or care logs still reference it. See the cleanup package for the cascade.
func (c *Client) DeletePlant(ctx context.Context, ref string) error {
	return c.do(ctx, http.MethodDelete, "/plants/"+escape(ref), nil, nil)
}

// DeleteAllPlants removes every plant with its reminders and care logs in one
// server-side transaction.
func (c *Client) DeleteAllPlants(ctx context.Context) (*BulkDeleteResult, error) {
	var out BulkDeleteResult
	if err := c.do(ctx, http.MethodDelete, "/plants", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
