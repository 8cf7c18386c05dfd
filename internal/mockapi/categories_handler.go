package mockapi

import (
	"net/http"
	"strconv"

	"bookstore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

func (s *Server) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListCategories())
}

func (s *Server) getCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	category, err := s.store.CategoryByID(id)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (s *Server) searchCategory(c echo.Context) error {
	category, err := s.store.CategoryByName(c.QueryParam("name"))
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (s *Server) createCategory(c echo.Context) error {
	var in model.Category
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}
	if in.Name == "" {
		return c.JSON(http.StatusBadRequest, errorJSON("name is required"))
	}

	return c.JSON(http.StatusCreated, s.store.CreateCategory(in))
}

func (s *Server) updateCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	var in model.Category
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	category, err := s.store.UpdateCategory(id, in)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	if err := s.store.DeleteCategory(id); err != nil {
		return writeStoreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
