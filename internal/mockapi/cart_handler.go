package mockapi

import (
	"net/http"
	"strconv"

	"bookstore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// カートのuserIDは認証メールから引く
func (s *Server) currentUserID(c echo.Context) (int64, bool) {
	user, err := s.store.UserByEmail(currentEmail(c))
	if err != nil {
		return 0, false
	}
	return user.UserID, true
}

func (s *Server) getCart(c echo.Context) error {
	userID, ok := s.currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}
	return c.JSON(http.StatusOK, s.store.Cart(userID))
}

func (s *Server) addToCart(c echo.Context) error {
	userID, ok := s.currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	var req model.AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	if req.BookID <= 0 {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid bookId"))
	}

	item, err := s.store.AddToCart(userID, req.BookID, req.Quantity)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// 数量はクエリパラメータで受ける（PUT /api/cart/book/{id}?quantity=n）
func (s *Server) updateCartItem(c echo.Context) error {
	userID, ok := s.currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}
	quantity, err := strconv.ParseInt(c.QueryParam("quantity"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid quantity"))
	}

	item, err := s.store.UpdateCartItem(userID, bookID, quantity)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) removeFromCart(c echo.Context) error {
	userID, ok := s.currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	if err := s.store.RemoveFromCart(userID, bookID); err != nil {
		return writeStoreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) clearCart(c echo.Context) error {
	userID, ok := s.currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	s.store.ClearCart(userID)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) adminUserCart(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}
	return c.JSON(http.StatusOK, s.store.Cart(userID))
}

func (s *Server) adminClearUserCart(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	s.store.ClearCart(userID)
	return c.NoContent(http.StatusNoContent)
}
