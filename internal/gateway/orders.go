package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"bookstore/internal/domain/model"
)

// 注文系はenvelope形式で返ってくる

func (c *Client) CreateOrder(ctx context.Context, email string, req model.OrderRequest) (model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/api/orders/user/%s", url.PathEscape(email))
	if err := c.doEnvelope(ctx, http.MethodPost, path, authBearer, req, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (c *Client) ListOrders(ctx context.Context, email string) ([]model.Order, error) {
	var orders []model.Order
	path := fmt.Sprintf("/api/orders/user/%s", url.PathEscape(email))
	if err := c.doEnvelope(ctx, http.MethodGet, path, authBearer, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64, email string) (model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/api/orders/%d/user/%s", orderID, url.PathEscape(email))
	if err := c.doEnvelope(ctx, http.MethodGet, path, authBearer, nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// キャンセルはPENDINGの注文だけ通る（サーバー側が判断する）
func (c *Client) CancelOrder(ctx context.Context, orderID int64, email string) (model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/api/orders/%d/user/%s/cancel", orderID, url.PathEscape(email))
	if err := c.doEnvelope(ctx, http.MethodPut, path, authBearer, nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}
