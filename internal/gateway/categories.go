package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"bookstore/internal/domain/model"
)

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, authNone, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var category model.Category
	path := fmt.Sprintf("/api/categories/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, authNone, nil, &category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

func (c *Client) SearchCategory(ctx context.Context, name string) (model.Category, error) {
	q := url.Values{}
	q.Set("name", name)

	var category model.Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/categories/search", q, authNone, nil, &category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

// 書き込み系はbearer

func (c *Client) CreateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	var out model.Category
	if err := c.doJSON(ctx, http.MethodPost, "/api/categories", nil, authBearer, category, &out); err != nil {
		return model.Category{}, err
	}
	return out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, category model.Category) (model.Category, error) {
	var out model.Category
	path := fmt.Sprintf("/api/categories/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, authBearer, category, &out); err != nil {
		return model.Category{}, err
	}
	return out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/categories/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, authBearer, nil, nil)
}
