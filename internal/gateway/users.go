package gateway

import (
	"context"
	"fmt"
	"net/http"

	"bookstore/internal/domain/model"
)

func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodPost, "/users/signup", nil, authNone, req, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// 成功時のjwtは呼び出し側がセッションストアへ保存する
func (c *Client) Signin(ctx context.Context, req model.SigninRequest) (model.SigninResponse, error) {
	var resp model.SigninResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/signin", nil, authNone, req, &resp); err != nil {
		return model.SigninResponse{}, err
	}
	return resp, nil
}

func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/profile", nil, authBearer, nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// 管理者のユーザー管理

func (c *Client) AdminListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/admin/allusers", nil, authBearer, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AdminGetUser(ctx context.Context, userID int64) (model.User, error) {
	var user model.User
	path := fmt.Sprintf("/users/admin/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, authBearer, nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/users/admin/%d", userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, authBearer, nil, nil)
}
