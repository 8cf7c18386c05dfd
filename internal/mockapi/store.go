package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"bookstore/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrForbidden     = errors.New("forbidden")
	ErrOutOfStock    = errors.New("out of stock")
	ErrNotCancelable = errors.New("order cannot be cancelled")
)

type userRecord struct {
	model.User
	PasswordHash string
}

type orderRecord struct {
	model.Order
	UserID int64
}

// Storeはモックバックエンドのメモリ上の状態。
// DBは使わない（モックの契約）。
type Store struct {
	mu sync.Mutex

	users      map[int64]*userRecord
	nextUserID int64

	books      map[int64]*model.Book
	bookOwners map[int64]string // bookID -> 出品者メール
	nextBookID int64

	categories     map[int64]*model.Category
	nextCategoryID int64

	carts map[int64][]model.CartItem // userID -> 明細

	orders      map[int64]*orderRecord
	nextOrderID int64

	contacts []model.ContactMessage
}

func NewStore() *Store {
	s := &Store{
		users:          map[int64]*userRecord{},
		nextUserID:     1,
		books:          map[int64]*model.Book{},
		bookOwners:     map[int64]string{},
		nextBookID:     1,
		categories:     map[int64]*model.Category{},
		nextCategoryID: 1,
		carts:          map[int64][]model.CartItem{},
		orders:         map[int64]*orderRecord{},
		nextOrderID:    1,
	}
	s.seed()
	return s
}

// 開発用の初期データ
func (s *Store) seed() {
	fiction := s.mustCreateCategory(model.Category{Name: "Fiction", Description: "Novels and stories"})
	tech := s.mustCreateCategory(model.Category{Name: "Programming", Description: "Software and computing"})

	seller := "seller@bookstore.local"
	s.mustCreateUser("Seller", seller, "Seller@1", model.RoleSeller)
	s.mustCreateUser("Admin", "admin@bookstore.local", "Admin@1", model.RoleAdmin)

	s.mustCreateBook(seller, model.Book{
		Title: "The Go Programming Language", Author: "Donovan & Kernighan",
		Description: "The definitive Go reference", Price: 450, Stock: 12,
		Category: &tech, CoverImageURL: "https://covers.example/gopl.jpg",
	})
	s.mustCreateBook(seller, model.Book{
		Title: "A Wild Sheep Chase", Author: "Haruki Murakami",
		Description: "A novel", Price: 200, Stock: 7,
		Category: &fiction, CoverImageURL: "https://covers.example/sheep.jpg",
	})
}

func (s *Store) mustCreateCategory(c model.Category) model.Category {
	c.CategoryID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[c.CategoryID] = &c
	return c
}

func (s *Store) mustCreateUser(name, email, password string, role model.Role) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	u := &userRecord{
		User:         model.User{UserID: s.nextUserID, Name: name, Email: email, Role: role},
		PasswordHash: string(hash),
	}
	s.nextUserID++
	s.users[u.UserID] = u
}

func (s *Store) mustCreateBook(ownerEmail string, b model.Book) {
	b.BookID = s.nextBookID
	s.nextBookID++
	s.books[b.BookID] = &b
	s.bookOwners[b.BookID] = ownerEmail
}

// ---- users ----

func (s *Store) CreateUser(req model.SignupRequest) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, req.Email) {
			return model.User{}, ErrConflict
		}
	}

	role := req.Role
	if role == "" {
		role = model.RoleBuyer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	u := &userRecord{
		User:         model.User{UserID: s.nextUserID, Name: req.Name, Email: req.Email, Role: role},
		PasswordHash: string(hash),
	}
	s.nextUserID++
	s.users[u.UserID] = u
	return u.User, nil
}

// Authenticateはbcrypt照合。成功でユーザーを返す。
func (s *Store) Authenticate(email, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserByEmail(email)
	if u == nil {
		return model.User{}, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return model.User{}, ErrNotFound
	}
	return u.User, nil
}

func (s *Store) UserByEmail(email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserByEmail(email)
	if u == nil {
		return model.User{}, ErrNotFound
	}
	return u.User, nil
}

func (s *Store) UserByID(id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u.User, nil
}

func (s *Store) ListUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	delete(s.carts, id)
	return nil
}

func (s *Store) findUserByEmail(email string) *userRecord {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// ---- books ----

func (s *Store) ListBooks() []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.booksLocked(func(int64) bool { return true })
}

func (s *Store) BookByID(id int64) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return model.Book{}, ErrNotFound
	}
	return *b, nil
}

func (s *Store) SearchBooks(keyword string) []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	kw := strings.ToLower(keyword)
	return s.booksLocked(func(id int64) bool {
		b := s.books[id]
		return strings.Contains(strings.ToLower(b.Title), kw) ||
			strings.Contains(strings.ToLower(b.Author), kw)
	})
}

func (s *Store) BooksByCategory(categoryID int64) []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.booksLocked(func(id int64) bool {
		b := s.books[id]
		return b.Category != nil && b.Category.CategoryID == categoryID
	})
}

func (s *Store) BooksBySeller(email string) []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.booksLocked(func(id int64) bool {
		return strings.EqualFold(s.bookOwners[id], email)
	})
}

func (s *Store) CreateBook(sellerEmail string, req model.BookRequest) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := model.Book{
		BookID:        s.nextBookID,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		CoverImageURL: req.CoverImageURL,
	}
	if cat, ok := s.categories[req.CategoryID]; ok {
		c := *cat
		b.Category = &c
	}

	s.nextBookID++
	s.books[b.BookID] = &b
	s.bookOwners[b.BookID] = sellerEmail
	return b, nil
}

func (s *Store) UpdateBook(sellerEmail string, id int64, req model.BookRequest) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return model.Book{}, ErrNotFound
	}
	//所有チェック
	if !strings.EqualFold(s.bookOwners[id], sellerEmail) {
		return model.Book{}, ErrForbidden
	}

	b.Title = req.Title
	b.Author = req.Author
	b.Description = req.Description
	b.Price = req.Price
	b.Stock = req.Stock
	b.CoverImageURL = req.CoverImageURL
	if cat, ok := s.categories[req.CategoryID]; ok {
		c := *cat
		b.Category = &c
	}
	return *b, nil
}

func (s *Store) DeleteBook(sellerEmail string, id int64, asAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrNotFound
	}
	if !asAdmin && !strings.EqualFold(s.bookOwners[id], sellerEmail) {
		return ErrForbidden
	}
	delete(s.books, id)
	delete(s.bookOwners, id)
	return nil
}

func (s *Store) booksLocked(match func(int64) bool) []model.Book {
	out := []model.Book{}
	for id, b := range s.books {
		if match(id) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out
}

// ---- categories ----

func (s *Store) ListCategories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out
}

func (s *Store) CategoryByID(id int64) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return model.Category{}, ErrNotFound
	}
	return *c, nil
}

func (s *Store) CategoryByName(name string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return *c, nil
		}
	}
	return model.Category{}, ErrNotFound
}

func (s *Store) CreateCategory(c model.Category) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mustCreateCategory(c)
}

func (s *Store) UpdateCategory(id int64, in model.Category) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return model.Category{}, ErrNotFound
	}
	c.Name = in.Name
	c.Description = in.Description
	return *c, nil
}

func (s *Store) DeleteCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// ---- cart ----

func (s *Store) Cart(userID int64) []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

// AddToCartは同一bookIdなら数量を加算する
func (s *Store) AddToCart(userID int64, bookID int64, quantity int64) (model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return model.CartItem{}, ErrNotFound
	}
	if quantity < 1 {
		quantity = 1
	}

	items := s.carts[userID]
	for i := range items {
		if items[i].BookID == bookID {
			items[i].Quantity += quantity
			items[i].Book = *b
			s.carts[userID] = items
			return items[i], nil
		}
	}

	item := model.CartItem{BookID: bookID, Book: *b, Quantity: quantity}
	s.carts[userID] = append(items, item)
	return item, nil
}

func (s *Store) UpdateCartItem(userID int64, bookID int64, quantity int64) (model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].BookID == bookID {
			if quantity <= 0 {
				s.carts[userID] = append(items[:i], items[i+1:]...)
				return model.CartItem{}, nil
			}
			items[i].Quantity = quantity
			s.carts[userID] = items
			return items[i], nil
		}
	}
	return model.CartItem{}, ErrNotFound
}

func (s *Store) RemoveFromCart(userID int64, bookID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].BookID == bookID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) ClearCart(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// ---- orders ----

// CreateOrderは在庫を確定時に再チェックして減らす
func (s *Store) CreateOrder(userID int64, req model.OrderRequest) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(req.Items) == 0 {
		return model.Order{}, ErrNotFound
	}

	for _, it := range req.Items {
		b, ok := s.books[it.BookID]
		if !ok {
			return model.Order{}, ErrNotFound
		}
		if int64(b.Stock) < it.Quantity {
			return model.Order{}, ErrOutOfStock
		}
	}
	for _, it := range req.Items {
		s.books[it.BookID].Stock -= int(it.Quantity)
	}

	order := model.Order{
		OrderID:         s.nextOrderID,
		OrderDate:       time.Now(),
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Status:          model.OrderStatusPending,
		Items:           req.Items,
	}
	s.nextOrderID++
	s.orders[order.OrderID] = &orderRecord{Order: order, UserID: userID}

	//注文確定でカートは空になる
	delete(s.carts, userID)
	return order, nil
}

func (s *Store) OrdersByUser(userID int64) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o.Order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out
}

func (s *Store) OrderByID(userID int64, orderID int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID {
		return model.Order{}, ErrNotFound
	}
	return o.Order, nil
}

// CancelOrderはPENDINGのみ。在庫は戻す。
func (s *Store) CancelOrder(userID int64, orderID int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID {
		return model.Order{}, ErrNotFound
	}
	if o.Status != model.OrderStatusPending {
		return model.Order{}, ErrNotCancelable
	}

	o.Status = model.OrderStatusCancelled
	for _, it := range o.Items {
		if b, ok := s.books[it.BookID]; ok {
			b.Stock += int(it.Quantity)
		}
	}
	return o.Order, nil
}

// ---- contact ----

func (s *Store) SaveContact(msg model.ContactMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = append(s.contacts, msg)
}
