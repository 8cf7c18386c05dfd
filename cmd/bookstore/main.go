package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"bookstore/internal/cart"
	"bookstore/internal/checkout"
	"bookstore/internal/config"
	"bookstore/internal/domain/model"
	"bookstore/internal/gateway"
	"bookstore/internal/session"
	"bookstore/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := run(log, os.Args[1:]); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(log *logrus.Logger, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	store := session.NewStore(cfg.TokenFile)
	gw := gateway.New(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, store, log)

	if len(args) == 0 {
		usage()
		return errors.New("command required")
	}

	app := &app{log: log, store: store, gw: gw}
	ctx := context.Background()

	switch args[0] {
	case "signup":
		return app.signup(ctx, args[1:])
	case "login":
		return app.login(ctx, args[1:])
	case "logout":
		return store.Clear()
	case "whoami":
		return app.whoami()
	case "books":
		return app.books(ctx)
	case "book":
		return app.book(ctx, args[1:])
	case "search":
		return app.search(ctx, args[1:])
	case "categories":
		return app.categories(ctx)
	case "cart":
		return app.cart(ctx, args[1:])
	case "checkout":
		return app.checkout(ctx, args[1:])
	case "orders":
		return app.orders(ctx)
	case "order":
		return app.order(ctx, args[1:])
	case "cancel":
		return app.cancel(ctx, args[1:])
	case "contact":
		return app.contact(ctx, args[1:])
	case "admin":
		return app.admin(ctx, args[1:])
	case "seller":
		return app.seller(ctx, args[1:])
	}

	usage()
	return fmt.Errorf("unknown command: %s", args[0])
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bookstore <command> [args]

  signup <name> <email> <password>
  login <email> <password>
  logout
  whoami
  books | book <id> | search <keyword> | categories
  cart [show|add <bookId>|update <bookId> <qty>|remove <bookId>|clear]
  checkout [card|cod]
  orders | order <id> | cancel <id>
  contact <name> <email> <message...>
  admin users|user <id>|deluser <id>|cart <userId>|clearcart <userId>|books|delbook <id>
  seller books|add <title> <author> <price> <stock> <categoryId>|update <id> ...|delete <id>`)
}

type app struct {
	log   *logrus.Logger
	store *session.Store
	gw    *gateway.Client
}

func (a *app) signup(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: signup <name> <email> <password>")
	}

	req := model.SignupRequest{Name: args[0], Email: args[1], Password: args[2], Role: model.RoleBuyer}
	//ネットワークを呼ぶ前に検証する
	if err := validator.Check(req); err != nil {
		return err
	}

	user, err := a.gw.Signup(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", user.Email, user.Role)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: login <email> <password>")
	}

	resp, err := a.gw.Signin(ctx, model.SigninRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	if err := a.store.SetToken(resp.JWT); err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func (a *app) whoami() error {
	if _, ok := a.store.Token(); !ok {
		return errors.New("not logged in")
	}
	fmt.Printf("%s (%s)\n", a.store.Subject(), a.store.Role())
	return nil
}

func (a *app) books(ctx context.Context) error {
	books, err := a.gw.ListBooks(ctx)
	if err != nil {
		return err
	}
	printBooks(books)
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	id, err := argID(args, "usage: book <id>")
	if err != nil {
		return err
	}

	b, err := a.gw.GetBook(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("[%d] %s — %s (%.2f)\n%s\n", b.BookID, b.Title, b.Author, b.Price, b.Description)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: search <keyword>")
	}

	books, err := a.gw.SearchBooks(ctx, args[0])
	if err != nil {
		return err
	}
	printBooks(books)
	return nil
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.gw.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("[%d] %s — %s\n", c.CategoryID, c.Name, c.Description)
	}
	return nil
}

func (a *app) cart(ctx context.Context, args []string) error {
	container := cart.NewContainer(a.gw, a.store)

	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	var err error
	switch sub {
	case "show":
		err = container.FetchCart(ctx)
	case "add":
		var id int64
		if id, err = argID(args[1:], "usage: cart add <bookId>"); err != nil {
			return err
		}
		err = container.AddToCart(ctx, id)
	case "update":
		if len(args) < 3 {
			return errors.New("usage: cart update <bookId> <qty>")
		}
		id, err1 := strconv.ParseInt(args[1], 10, 64)
		qty, err2 := strconv.ParseInt(args[2], 10, 64)
		if err1 != nil || err2 != nil {
			return errors.New("usage: cart update <bookId> <qty>")
		}
		err = container.UpdateQuantity(ctx, id, qty)
	case "remove":
		var id int64
		if id, err = argID(args[1:], "usage: cart remove <bookId>"); err != nil {
			return err
		}
		err = container.RemoveFromCart(ctx, id)
	case "clear":
		err = container.ClearCart(ctx)
	default:
		return fmt.Errorf("unknown cart command: %s", sub)
	}

	if err != nil {
		if msg := container.Err(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return err
	}

	for _, it := range container.Items() {
		fmt.Printf("[%d] %s x%d @ %.2f\n", it.BookID, it.Book.Title, it.Quantity, it.Book.Price)
	}
	fmt.Printf("items: %d  total: %.2f\n", container.Count(), container.Total())
	return nil
}

// checkoutはウィザードを直線的に進める。
// 住所はモック住所帳のデフォルトを使う。
func (a *app) checkout(ctx context.Context, args []string) error {
	container := cart.NewContainer(a.gw, a.store)
	if err := container.FetchCart(ctx); err != nil {
		return err
	}

	wiz := checkout.NewWizard(a.gw, container, a.store)
	if wiz.ShouldRedirect() {
		return errors.New("cart is empty")
	}

	if err := wiz.Next(); err != nil { //住所→支払い
		return err
	}

	method := checkout.PaymentCOD
	if len(args) > 0 && args[0] == "card" {
		method = checkout.PaymentCard
		wiz.SelectPayment(method, checkout.CardDetails{
			CardNumber:     "4111111111111111",
			ExpiryDate:     "12/30",
			CVV:            "123",
			CardholderName: a.store.Subject(),
		})
	} else {
		wiz.SelectPayment(method, checkout.CardDetails{})
	}

	if err := wiz.Next(); err != nil { //支払い→確認
		return err
	}
	if err := wiz.Submit(ctx); err != nil {
		if msg := wiz.Err(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return err
	}

	fmt.Printf("order placed: %s (%s)\n", wiz.OrderID(), wiz.OrderStatus())
	return nil
}

func (a *app) orders(ctx context.Context) error {
	orders, err := a.gw.ListOrders(ctx, a.store.Subject())
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("[%d] %s %.2f %s\n", o.OrderID, o.Status, o.TotalAmount, o.OrderDate.Format(time.RFC3339))
	}
	return nil
}

func (a *app) order(ctx context.Context, args []string) error {
	id, err := argID(args, "usage: order <id>")
	if err != nil {
		return err
	}

	o, err := a.gw.GetOrder(ctx, id, a.store.Subject())
	if err != nil {
		return err
	}
	fmt.Printf("[%d] %s %.2f\n%s\n", o.OrderID, o.Status, o.TotalAmount, o.ShippingAddress)
	for _, it := range o.Items {
		fmt.Printf("  book %d x%d @ %.2f\n", it.BookID, it.Quantity, it.PriceAtPurchase)
	}
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	id, err := argID(args, "usage: cancel <id>")
	if err != nil {
		return err
	}

	o, err := a.gw.CancelOrder(ctx, id, a.store.Subject())
	if err != nil {
		return err
	}
	fmt.Printf("order %d is now %s\n", o.OrderID, o.Status)
	return nil
}

func (a *app) contact(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: contact <name> <email> <message...>")
	}

	msg := model.ContactMessage{FullName: args[0], Email: args[1], Message: args[2]}
	if err := validator.Check(msg); err != nil {
		return err
	}
	if err := a.gw.SendContact(ctx, msg); err != nil {
		return err
	}
	fmt.Println("message sent")
	return nil
}

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: admin users|user <id>|deluser <id>|cart <userId>|clearcart <userId>")
	}

	switch args[0] {
	case "users":
		users, err := a.gw.AdminListUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("[%d] %s %s %s\n", u.UserID, u.Name, u.Email, u.Role)
		}
		return nil

	case "user":
		id, err := argID(args[1:], "usage: admin user <id>")
		if err != nil {
			return err
		}
		u, err := a.gw.AdminGetUser(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("[%d] %s %s %s\n", u.UserID, u.Name, u.Email, u.Role)
		return nil

	case "deluser":
		id, err := argID(args[1:], "usage: admin deluser <id>")
		if err != nil {
			return err
		}
		return a.gw.AdminDeleteUser(ctx, id)

	case "cart":
		id, err := argID(args[1:], "usage: admin cart <userId>")
		if err != nil {
			return err
		}
		items, err := a.gw.AdminUserCart(ctx, id)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("[%d] %s x%d\n", it.BookID, it.Book.Title, it.Quantity)
		}
		fmt.Printf("items: %d  total: %.2f\n", model.CartCount(items), model.CartTotal(items))
		return nil

	case "clearcart":
		id, err := argID(args[1:], "usage: admin clearcart <userId>")
		if err != nil {
			return err
		}
		return a.gw.AdminClearUserCart(ctx, id)

	case "books":
		books, err := a.gw.AdminListBooks(ctx)
		if err != nil {
			return err
		}
		printBooks(books)
		return nil

	case "delbook":
		id, err := argID(args[1:], "usage: admin delbook <id>")
		if err != nil {
			return err
		}
		return a.gw.AdminDeleteBook(ctx, id)
	}

	return fmt.Errorf("unknown admin command: %s", args[0])
}

func (a *app) seller(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: seller books|add|update <id> ...|delete <id>")
	}

	switch args[0] {
	case "books":
		books, err := a.gw.SellerBooks(ctx)
		if err != nil {
			return err
		}
		printBooks(books)
		return nil

	case "add":
		req, err := bookRequest(args[1:], "usage: seller add <title> <author> <price> <stock> <categoryId>")
		if err != nil {
			return err
		}
		b, err := a.gw.CreateBook(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("created book %d\n", b.BookID)
		return nil

	case "update":
		id, err := argID(args[1:], "usage: seller update <id> <title> <author> <price> <stock> <categoryId>")
		if err != nil {
			return err
		}
		req, err := bookRequest(args[2:], "usage: seller update <id> <title> <author> <price> <stock> <categoryId>")
		if err != nil {
			return err
		}
		b, err := a.gw.UpdateBook(ctx, id, req)
		if err != nil {
			return err
		}
		fmt.Printf("updated book %d\n", b.BookID)
		return nil

	case "delete":
		id, err := argID(args[1:], "usage: seller delete <id>")
		if err != nil {
			return err
		}
		return a.gw.DeleteBook(ctx, id)
	}

	return fmt.Errorf("unknown seller command: %s", args[0])
}

func bookRequest(args []string, usage string) (model.BookRequest, error) {
	if len(args) < 5 {
		return model.BookRequest{}, errors.New(usage)
	}

	price, err1 := strconv.ParseFloat(args[2], 64)
	stock, err2 := strconv.Atoi(args[3])
	categoryID, err3 := strconv.ParseInt(args[4], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return model.BookRequest{}, errors.New(usage)
	}

	return model.BookRequest{
		Title:      args[0],
		Author:     args[1],
		Price:      price,
		Stock:      stock,
		CategoryID: categoryID,
	}, nil
}

func printBooks(books []model.Book) {
	for _, b := range books {
		fmt.Printf("[%d] %s — %s (%.2f) stock=%d\n", b.BookID, b.Title, b.Author, b.Price, b.Stock)
	}
}

func argID(args []string, usage string) (int64, error) {
	if len(args) < 1 {
		return 0, errors.New(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.New(usage)
	}
	return id, nil
}
