package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/domain/model"
	"bookstore/internal/validator"

	"github.com/labstack/echo/v4"
)

func (s *Server) signup(c echo.Context) error {
	var req model.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	if err := validator.Check(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON(err.Error()))
	}

	user, err := s.store.CreateUser(req)
	if err != nil {
		return writeStoreError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (s *Server) signin(c echo.Context) error {
	var req model.SigninRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	user, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorJSON("bad credentials"))
	}

	token, err := IssueToken(s.secret, user, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
	}

	s.log.WithField("email", user.Email).Info("signin")

	return c.JSON(http.StatusCreated, model.SigninResponse{
		Message: "Successful Authentication...",
		JWT:     token,
	})
}

func (s *Server) profile(c echo.Context) error {
	user, err := s.store.UserByEmail(currentEmail(c))
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) adminListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListUsers())
}

func (s *Server) adminGetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	user, err := s.store.UserByID(id)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) adminDeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	if err := s.store.DeleteUser(id); err != nil {
		return writeStoreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) sendContact(c echo.Context) error {
	var msg model.ContactMessage
	if err := c.Bind(&msg); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	if err := validator.Check(msg); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON(err.Error()))
	}

	s.store.SaveContact(msg)
	return c.JSON(http.StatusOK, successEnvelope("Message sent successfully", nil))
}
