package mockapi

import (
	"net/http"
	"strconv"

	"bookstore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

func (s *Server) listBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListBooks())
}

func (s *Server) getBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	book, err := s.store.BookByID(id)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (s *Server) searchBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.SearchBooks(c.QueryParam("keyword")))
}

func (s *Server) booksByCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}
	return c.JSON(http.StatusOK, s.store.BooksByCategory(id))
}

func (s *Server) sellerBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.BooksBySeller(currentEmail(c)))
}

func (s *Server) createBook(c echo.Context) error {
	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	book, err := s.store.CreateBook(currentEmail(c), req)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (s *Server) updateBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	var req model.BookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid body"))
	}

	book, err := s.store.UpdateBook(currentEmail(c), id, req)
	if err != nil {
		return writeStoreError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (s *Server) deleteBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	if err := s.store.DeleteBook(currentEmail(c), id, false); err != nil {
		return writeStoreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listBooksAdmin(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListBooks())
}

func (s *Server) deleteBookAdmin(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid id"))
	}

	if err := s.store.DeleteBook(currentEmail(c), id, true); err != nil {
		return writeStoreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
