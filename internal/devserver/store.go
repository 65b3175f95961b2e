package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/coffee-shop/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category in use")
	ErrMenuNotFound     = errors.New("menu item not found")
)

// userRecord keeps the password hash and role names next to the public
// user shape.
type userRecord struct {
	user     models.User
	passHash []byte
	roles    []string
}

// Order is what POST /orders stores and returns.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

type OrderItem struct {
	MenuID   string  `json:"menuId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Store is the devserver's entire persistence: plain maps behind one
// mutex. The real backend owns a database; this stand-in only has to
// behave identically over the wire.
type Store struct {
	mu         sync.Mutex
	users      map[string]*userRecord
	byUsername map[string]string
	categories map[string]models.Category
	products   map[string]models.Product
	orders     []Order
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]*userRecord),
		byUsername: make(map[string]string),
		categories: make(map[string]models.Category),
		products:   make(map[string]models.Product),
	}
}

// Seed creates the built-in admin account and a small sample menu so a
// fresh devserver is usable immediately.
func (s *Store) Seed(adminPassword string) error {
	if _, err := s.CreateUser("admin", "admin@coffee.local", adminPassword, []string{"ADMIN", "USER"}); err != nil {
		return err
	}

	coffee, err := s.CreateCategory("Coffee", "Espresso-based drinks")
	if err != nil {
		return err
	}
	tea, err := s.CreateCategory("Tea", "Loose leaf and herbal")
	if err != nil {
		return err
	}

	seed := []struct {
		name, desc string
		price      float64
		categoryID string
	}{
		{"Espresso", "Single shot", 2.0, coffee.ID},
		{"Latte", "Espresso with steamed milk", 3.5, coffee.ID},
		{"Cappuccino", "Espresso with foamed milk", 3.2, coffee.ID},
		{"Green Tea", "Sencha", 2.5, tea.ID},
	}
	for _, p := range seed {
		if _, err := s.CreateProduct(p.name, p.desc, p.price, p.categoryID); err != nil {
			return err
		}
	}
	return nil
}

// CreateUser hashes the password with bcrypt and stores the account.
func (s *Store) CreateUser(username, email, password string, roles []string) (*models.User, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[username]; taken {
		return nil, ErrUsernameTaken
	}

	rec := &userRecord{
		user: models.User{
			ID:       uuid.NewString(),
			Username: username,
			Email:    email,
		},
		passHash: passHash,
		roles:    append([]string(nil), roles...),
	}
	s.users[rec.user.ID] = rec
	s.byUsername[username] = rec.user.ID

	u := withRoles(rec)
	return &u, nil
}

// Authenticate compares the password against the stored bcrypt hash.
func (s *Store) Authenticate(username, password string) (*models.User, []string, error) {
	s.mu.Lock()
	id, ok := s.byUsername[username]
	var rec *userRecord
	if ok {
		rec = s.users[id]
	}
	s.mu.Unlock()

	if rec == nil {
		return nil, nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(rec.passHash, []byte(password)); err != nil {
		return nil, nil, ErrUserNotFound
	}

	u := withRoles(rec)
	return &u, append([]string(nil), rec.roles...), nil
}

// UserByID returns the account without roles, the shape myInfo uses.
func (s *Store) UserByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := rec.user
	return &u, nil
}

// ListUsers returns all accounts with their roles.
func (s *Store) ListUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, rec := range s.users {
		out = append(out, withRoles(rec))
	}
	return out
}

// UpdateUser replaces email and roles; username is fixed after creation.
func (s *Store) UpdateUser(id, email string, roles []string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	rec.user.Email = email
	rec.roles = append([]string(nil), roles...)
	u := withRoles(rec)
	return &u, nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.byUsername, rec.user.Username)
	delete(s.users, id)
	return nil
}

func withRoles(rec *userRecord) models.User {
	u := rec.user
	u.Roles = make([]models.Role, 0, len(rec.roles))
	for _, name := range rec.roles {
		u.Roles = append(u.Roles, models.Role{ID: name, Name: name})
	}
	return u
}

func (s *Store) CreateCategory(name, description string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := models.Category{ID: uuid.NewString(), Name: name, Description: description}
	s.categories[c.ID] = c
	return &c, nil
}

func (s *Store) ListCategories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out
}

func (s *Store) UpdateCategory(id, name, description string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	c.Name = name
	c.Description = description
	s.categories[id] = c

	// keep the embedded projection on products in sync
	for pid, p := range s.products {
		if p.Category.ID == id {
			p.Category.Name = name
			s.products[pid] = p
		}
	}
	return &c, nil
}

// DeleteCategory refuses to orphan menu items.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	for _, p := range s.products {
		if p.Category.ID == id {
			return ErrCategoryInUse
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) CreateProduct(name, description string, basePrice float64, categoryID string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		BasePrice:   basePrice,
		Status:      models.StatusAvailable,
		Category:    models.CategoryRef{ID: c.ID, Name: c.Name},
	}
	s.products[p.ID] = p
	return &p, nil
}

func (s *Store) ListProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out
}

func (s *Store) UpdateProduct(id, name, description string, basePrice float64, categoryID string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrMenuNotFound
	}
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	p.Name = name
	p.Description = description
	p.BasePrice = basePrice
	p.Category = models.CategoryRef{ID: c.ID, Name: c.Name}
	s.products[id] = p
	return &p, nil
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrMenuNotFound
	}
	delete(s.products, id)
	return nil
}

// CreateOrder validates every referenced menu item and records the order
// with prices captured at order time.
func (s *Store) CreateOrder(userID string, items []OrderItem) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}

	order := Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     make([]OrderItem, 0, len(items)),
		CreatedAt: time.Now().UTC(),
	}
	for _, item := range items {
		p, ok := s.products[item.MenuID]
		if !ok {
			return nil, ErrMenuNotFound
		}
		item.Price = p.BasePrice
		order.Items = append(order.Items, item)
		order.Total += p.BasePrice * float64(item.Quantity)
	}
	s.orders = append(s.orders, order)
	return &order, nil
}

// Orders returns everything ordered so far, oldest first.
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}
