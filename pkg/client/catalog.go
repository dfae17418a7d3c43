package client

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListSpecies(ctx context.Context, query string) ([]Species, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	var out []Species
	err := c.do(ctx, http.MethodGet, withQuery("/species", q), nil, &out)
	return out, err
}

func (c *Client) GetSpecies(ctx context.Context, speciesID string) (*Species, error) {
	var out Species
	if err := c.do(ctx, http.MethodGet, "/species/"+escape(speciesID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSpecies(ctx context.Context, in NewSpecies) (*Species, error) {
	in.Photo = blankPhoto(in.Photo)
	var out Species
	if err := c.do(ctx, http.MethodPost, "/species", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSpecies(ctx context.Context, speciesID string, patch SpeciesPatch) (*Species, error) {
	var out Species
	if err := c.do(ctx, http.MethodPatch, "/species/"+escape(speciesID), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSpecies(ctx context.Context, speciesID string) error {
	return c.do(ctx, http.MethodDelete, "/species/"+escape(speciesID), nil, nil)
}

func (c *Client) CanRemoveSpecies(ctx context.Context, speciesID string) (*Removability, error) {
	var out Removability
	if err := c.do(ctx, http.MethodGet, "/species/"+escape(speciesID)+"/can-remove", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListLocations(ctx context.Context, filter LocationQuery) ([]Location, error) {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", filter.Type.String())
	}
	if filter.Sunlight != "" {
		q.Set("sunlight", filter.Sunlight.String())
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	var out []Location
	err := c.do(ctx, http.MethodGet, withQuery("/locations", q), nil, &out)
	return out, err
}

func (c *Client) GetLocation(ctx context.Context, locationID string) (*Location, error) {
	var out Location
	if err := c.do(ctx, http.MethodGet, "/locations/"+escape(locationID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateLocation(ctx context.Context, in NewLocation) (*Location, error) {
	in.Photo = blankPhoto(in.Photo)
	var out Location
	if err := c.do(ctx, http.MethodPost, "/locations", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateLocation(ctx context.Context, locationID string, patch LocationPatch) (*Location, error) {
	var out Location
	if err := c.do(ctx, http.MethodPatch, "/locations/"+escape(locationID), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLocation(ctx context.Context, locationID string) error {
	return c.do(ctx, http.MethodDelete, "/locations/"+escape(locationID), nil, nil)
}

func (c *Client) IsLocationEmpty(ctx context.Context, locationID string) (*Emptiness, error) {
	var out Emptiness
	if err := c.do(ctx, http.MethodGet, "/locations/"+escape(locationID)+"/is-empty", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
