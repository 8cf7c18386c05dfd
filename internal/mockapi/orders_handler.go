package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"bookstore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// パスのメールと認証メールが一致しないと403
func (s *Server) orderUser(c echo.Context) (model.User, bool) {
	email := c.Param("email")
	if !strings.EqualFold(email, currentEmail(c)) {
		return model.User{}, false
	}
	user, err := s.store.UserByEmail(email)
	if err != nil {
		return model.User{}, false
	}
	return user, true
}

func (s *Server) createOrder(c echo.Context) error {
	user, ok := s.orderUser(c)
	if !ok {
		return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
	}

	var req model.OrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, errorJSON("cart empty"))
	}

	order, err := s.store.CreateOrder(user.UserID, req)
	if err != nil {
		return writeStoreError(c, err)
	}

	return c.JSON(http.StatusCreated, successEnvelope("Order created successfully", order))
}

func (s *Server) listOrders(c echo.Context) error {
	user, ok := s.orderUser(c)
	if !ok {
		return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
	}

	orders := s.store.OrdersByUser(user.UserID)
	return c.JSON(http.StatusOK, successEnvelope("Orders retrieved successfully", orders))
}

func (s *Server) getOrder(c echo.Context) error {
	user, ok := s.orderUser(c)
	if !ok {
		return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	order, err := s.store.OrderByID(user.UserID, orderID)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, successEnvelope("Order retrieved successfully", order))
}

func (s *Server) cancelOrder(c echo.Context) error {
	user, ok := s.orderUser(c)
	if !ok {
		return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	order, err := s.store.CancelOrder(user.UserID, orderID)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, successEnvelope("Order cancelled successfully", order))
}
