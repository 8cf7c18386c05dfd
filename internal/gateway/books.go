package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"bookstore/internal/domain/model"
)

// 公開カタログ

func (c *Client) ListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/public", nil, authNone, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) GetBook(ctx context.Context, id int64) (model.Book, error) {
	var book model.Book
	path := fmt.Sprintf("/api/books/public/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, authNone, nil, &book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (c *Client) SearchBooks(ctx context.Context, keyword string) ([]model.Book, error) {
	q := url.Values{}
	q.Set("keyword", keyword)

	var books []model.Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/public/search", q, authNone, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) BooksByCategory(ctx context.Context, categoryID int64) ([]model.Book, error) {
	var books []model.Book
	path := fmt.Sprintf("/api/books/public/category/%d", categoryID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, authNone, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// 出品者のCRUD（bearer、SELLERロール）

func (c *Client) SellerBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/seller", nil, authBearer, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) CreateBook(ctx context.Context, req model.BookRequest) (model.Book, error) {
	var book model.Book
	if err := c.doJSON(ctx, http.MethodPost, "/api/books/seller", nil, authBearer, req, &book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (c *Client) UpdateBook(ctx context.Context, id int64, req model.BookRequest) (model.Book, error) {
	var book model.Book
	path := fmt.Sprintf("/api/books/seller/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, authBearer, req, &book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/books/seller/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, authBearer, nil, nil)
}

// 管理者は出品者を問わず閲覧・削除できる

func (c *Client) AdminListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/admin/all", nil, authBearer, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) AdminDeleteBook(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/books/admin/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, authBearer, nil, nil)
}
