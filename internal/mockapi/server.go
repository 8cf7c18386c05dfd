package mockapi

import (
	"net/http"
	"time"

	"bookstore/internal/domain/model"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// 注文系のレスポンス形式（本物のバックエンドのApiResponse互換）
type apiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func successEnvelope(message string, data interface{}) apiResponse {
	return apiResponse{Success: true, Message: message, Data: data, Timestamp: time.Now()}
}

// ストアのエラーをHTTPステータスに変換する
func writeStoreError(c echo.Context, err error) error {
	switch err {
	case ErrNotFound:
		return c.JSON(http.StatusNotFound, errorJSON("not found"))
	case ErrConflict:
		return c.JSON(http.StatusConflict, errorJSON("conflict"))
	case ErrForbidden:
		return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
	case ErrOutOfStock:
		return c.JSON(http.StatusBadRequest, errorJSON("stock exceeded"))
	case ErrNotCancelable:
		return c.JSON(http.StatusBadRequest, errorJSON("order cannot be cancelled"))
	}

	//500
	return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
}

// Serverはメモリ内の書店バックエンド。
// 開発とテストで本物のバックエンドの代わりに立てる。
type Server struct {
	store  *Store
	secret []byte
	log    *logrus.Logger
}

func NewServer(store *Store, jwtSecret string, log *logrus.Logger) *Server {
	return &Server{
		store:  store,
		secret: []byte(jwtSecret),
		log:    log,
	}
}

// Echoはルーティング済みのechoインスタンスを返す
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	auth := authJWT(s.secret)
	admin := requireRole(model.RoleAdmin)
	seller := requireRole(model.RoleSeller, model.RoleAdmin)

	//認証
	e.POST("/users/signup", s.signup)
	e.POST("/users/signin", s.signin)
	e.GET("/users/profile", s.profile, auth)
	e.GET("/users/admin/allusers", s.adminListUsers, auth, admin)
	e.GET("/users/admin/:id", s.adminGetUser, auth, admin)
	e.DELETE("/users/admin/:id", s.adminDeleteUser, auth, admin)

	//公開カタログ
	e.GET("/api/books/public", s.listBooks)
	e.GET("/api/books/public/search", s.searchBooks)
	e.GET("/api/books/public/category/:id", s.booksByCategory)
	e.GET("/api/books/public/:id", s.getBook)

	//出品者
	e.GET("/api/books/seller", s.sellerBooks, auth, seller)
	e.POST("/api/books/seller", s.createBook, auth, seller)
	e.PUT("/api/books/seller/:id", s.updateBook, auth, seller)
	e.DELETE("/api/books/seller/:id", s.deleteBook, auth, seller)

	//管理者の書籍管理
	e.GET("/api/books/admin/all", s.listBooksAdmin, auth, admin)
	e.DELETE("/api/books/admin/:id", s.deleteBookAdmin, auth, admin)

	//カート
	e.GET("/api/cart", s.getCart, auth)
	e.POST("/api/cart", s.addToCart, auth)
	e.PUT("/api/cart/book/:id", s.updateCartItem, auth)
	e.DELETE("/api/cart/book/:id", s.removeFromCart, auth)
	e.DELETE("/api/cart", s.clearCart, auth)
	e.GET("/api/cart/admin/user/:id", s.adminUserCart, auth, admin)
	e.DELETE("/api/cart/admin/user/:id", s.adminClearUserCart, auth, admin)

	//注文
	e.POST("/api/orders/user/:email", s.createOrder, auth)
	e.GET("/api/orders/user/:email", s.listOrders, auth)
	e.GET("/api/orders/:id/user/:email", s.getOrder, auth)
	e.PUT("/api/orders/:id/user/:email/cancel", s.cancelOrder, auth)

	//カテゴリ（読みは公開、書きは管理者）
	e.GET("/api/categories", s.listCategories)
	e.GET("/api/categories/search", s.searchCategory)
	e.GET("/api/categories/:id", s.getCategory)
	e.POST("/api/categories", s.createCategory, auth, admin)
	e.PUT("/api/categories/:id", s.updateCategory, auth, admin)
	e.DELETE("/api/categories/:id", s.deleteCategory, auth, admin)

	//問い合わせ
	e.POST("/api/contact/send", s.sendContact)

	return e
}
