package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"bookstore/internal/domain/model"
)

func (c *Client) FetchCart(ctx context.Context) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/cart", nil, authBearer, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// 追加は数量1固定。既にあればサーバー側で加算される。
func (c *Client) AddToCart(ctx context.Context, bookID int64) error {
	req := model.AddCartRequest{
		BookID:   bookID,
		Quantity: 1,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/cart", nil, authBearer, req, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, bookID int64, quantity int64) error {
	q := url.Values{}
	q.Set("quantity", strconv.FormatInt(quantity, 10))

	path := fmt.Sprintf("/api/cart/book/%d", bookID)
	return c.doJSON(ctx, http.MethodPut, path, q, authBearer, nil, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, bookID int64) error {
	path := fmt.Sprintf("/api/cart/book/%d", bookID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, authBearer, nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/cart", nil, authBearer, nil, nil)
}

// 管理者によるユーザーカートの閲覧と削除

func (c *Client) AdminUserCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	path := fmt.Sprintf("/api/cart/admin/user/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, authBearer, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AdminClearUserCart(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/api/cart/admin/user/%d", userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, authBearer, nil, nil)
}
