package admin_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/linemk/coffee-shop/internal/admin"
	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCategoryAPI is a stateful in-memory backend for the category screen.
type fakeCategoryAPI struct {
	categories []models.Category
	nextID     int
	listErr    error
	deleteErr  error
	listCalls  int
	deletes    []string
}

var _ admin.CategoryAPI = (*fakeCategoryAPI)(nil)

func (f *fakeCategoryAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeCategoryAPI) CreateCategory(ctx context.Context, req api.CategoryCreationRequest, token string) (*models.Category, error) {
	f.nextID++
	c := models.Category{ID: "c" + strconv.Itoa(f.nextID), Name: req.Name, Description: req.Description}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeCategoryAPI) UpdateCategory(ctx context.Context, id string, req api.CategoryUpdateRequest, token string) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = req.Name
			f.categories[i].Description = req.Description
			return &f.categories[i], nil
		}
	}
	return nil, &api.Error{StatusCode: 404, Message: "category not found"}
}

func (f *fakeCategoryAPI) DeleteCategory(ctx context.Context, id, token string) error {
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.categories[:0]
	for _, c := range f.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.categories = kept
	return nil
}

func TestCategoryManager_CreateThenListIncludesNewCategory(t *testing.T) {
	fake := &fakeCategoryAPI{}
	m := admin.NewCategoryManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	require.NoError(t, m.OpenCreate())
	err := m.Save(context.Background(), nil, admin.CategoryForm{Name: "Pastries", Description: "Baked goods"})
	require.NoError(t, err)

	// the list is refetched, not patched locally
	categories := m.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, "Pastries", categories[0].Name)
	assert.Equal(t, "Baked goods", categories[0].Description)
	assert.Equal(t, admin.ModalNone, m.Modal(), "save closes the modal")
	assert.GreaterOrEqual(t, fake.listCalls, 2, "mutation must trigger a full refetch")
}

func TestCategoryManager_UpdateDispatchesOnExistingRecord(t *testing.T) {
	fake := &fakeCategoryAPI{categories: []models.Category{{ID: "c1", Name: "Coffee"}}}
	m := admin.NewCategoryManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	existing := m.Categories()[0]
	form := admin.FormFromCategory(existing)
	form.Description = "Hot drinks"

	require.NoError(t, m.Save(context.Background(), &existing, form))

	categories := m.Categories()
	require.Len(t, categories, 1, "update must not create a second record")
	assert.Equal(t, "Hot drinks", categories[0].Description)
}

func TestCategoryManager_ValidationStopsBeforeNetwork(t *testing.T) {
	fake := &fakeCategoryAPI{}
	m := admin.NewCategoryManager(discardLogger(), fake, staticToken("tok"))

	err := m.Save(context.Background(), nil, admin.CategoryForm{Name: ""})
	require.Error(t, err)
	assert.Empty(t, fake.categories)
}

func TestCategoryManager_DeleteDeclinedSendsNothing(t *testing.T) {
	fake := &fakeCategoryAPI{categories: []models.Category{{ID: "c1", Name: "Coffee"}}}
	m := admin.NewCategoryManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	require.NoError(t, m.Delete(context.Background(), "c1", func() bool { return false }))

	assert.Empty(t, fake.deletes, "declined confirmation must not reach the backend")
	assert.Len(t, m.Categories(), 1)
}

func TestCategoryManager_DeleteFailureLeavesStateUntouched(t *testing.T) {
	fake := &fakeCategoryAPI{
		categories: []models.Category{{ID: "c1", Name: "Coffee"}},
		deleteErr:  &api.Error{StatusCode: 409, Message: "category in use"},
	}
	m := admin.NewCategoryManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	err := m.Delete(context.Background(), "c1", func() bool { return true })
	require.Error(t, err)

	assert.Len(t, m.Categories(), 1, "no optimistic removal on failure")
}

func TestCategoryManager_DeleteConfirmedRefetches(t *testing.T) {
	fake := &fakeCategoryAPI{categories: []models.Category{{ID: "c1", Name: "Coffee"}}}
	m := admin.NewCategoryManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	require.NoError(t, m.Delete(context.Background(), "c1", func() bool { return true }))
	assert.Empty(t, m.Categories())
}

func TestCategoryManager_RefreshFailureSetsError(t *testing.T) {
	fake := &fakeCategoryAPI{listErr: errors.New("backend down")}
	m := admin.NewCategoryManager(discardLogger(), fake, staticToken("tok"))

	require.Error(t, m.Refresh(context.Background()))
	assert.Error(t, m.Err())
	assert.False(t, m.Loading())
}

func TestModals_NeverOverlap(t *testing.T) {
	m := admin.NewCategoryManager(discardLogger(), &fakeCategoryAPI{}, staticToken("tok"))

	require.NoError(t, m.OpenCreate())
	assert.ErrorIs(t, m.OpenEdit("c1"), admin.ErrModalOpen)
	assert.ErrorIs(t, m.OpenCreate(), admin.ErrModalOpen)

	m.CloseModal()
	require.NoError(t, m.OpenEdit("c1"))
	assert.Equal(t, admin.ModalEdit, m.Modal())
}

// fakeProductAPI covers the product screen incl. the category picker.
type fakeProductAPI struct {
	products   []models.Product
	categories []models.Category
	created    []api.ProductCreationRequest
	updated    map[string]api.ProductUpdateRequest
}

var _ admin.ProductAPI = (*fakeProductAPI)(nil)

func (f *fakeProductAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeProductAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeProductAPI) CreateProduct(ctx context.Context, req api.ProductCreationRequest, token string) (*models.Product, error) {
	f.created = append(f.created, req)
	p := models.Product{
		ID:        "m" + strconv.Itoa(len(f.created)),
		Name:      req.Name,
		BasePrice: req.BasePrice,
		Status:    models.StatusAvailable,
		Category:  models.CategoryRef{ID: req.CategoryID},
	}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeProductAPI) UpdateProduct(ctx context.Context, menuID string, req api.ProductUpdateRequest, token string) (*models.Product, error) {
	if f.updated == nil {
		f.updated = make(map[string]api.ProductUpdateRequest)
	}
	f.updated[menuID] = req
	return &models.Product{ID: menuID, Name: req.Name}, nil
}

func (f *fakeProductAPI) DeleteProduct(ctx context.Context, menuID, token string) error {
	return nil
}

func TestProductManager_MissingCategorySelection(t *testing.T) {
	fake := &fakeProductAPI{categories: []models.Category{{ID: "c1", Name: "Coffee"}}}
	m := admin.NewProductManager(discardLogger(), fake, staticToken("tok"))

	err := m.Save(context.Background(), nil, admin.ProductForm{Name: "Latte", BasePrice: 3.5})
	require.Error(t, err, "missing category must fail locally")
	assert.Empty(t, fake.created)
}

func TestProductManager_CreateAndRefetch(t *testing.T) {
	fake := &fakeProductAPI{categories: []models.Category{{ID: "c1", Name: "Coffee"}}}
	m := admin.NewProductManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	form := admin.ProductForm{Name: "Latte", Description: "Milk coffee", BasePrice: 3.5, CategoryID: "c1"}
	require.NoError(t, m.Save(context.Background(), nil, form))

	require.Len(t, fake.created, 1)
	assert.Equal(t, "c1", fake.created[0].CategoryID)

	products := m.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Latte", products[0].Name)
	assert.Len(t, m.Categories(), 1, "picker data loads with the list")
}

func TestProductManager_EditUsesUpdateEndpoint(t *testing.T) {
	latte := models.Product{
		ID: "m1", Name: "Latte", BasePrice: 3.5,
		Category: models.CategoryRef{ID: "c1", Name: "Coffee"},
	}
	fake := &fakeProductAPI{
		products:   []models.Product{latte},
		categories: []models.Category{{ID: "c1", Name: "Coffee"}},
	}
	m := admin.NewProductManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	require.NoError(t, m.OpenEdit("m1"))
	editing := m.Editing()
	require.NotNil(t, editing)

	form := admin.FormFromProduct(*editing)
	form.BasePrice = 4.0
	require.NoError(t, m.Save(context.Background(), editing, form))

	require.Contains(t, fake.updated, "m1")
	assert.Equal(t, 4.0, fake.updated["m1"].BasePrice)
	assert.Empty(t, fake.created, "editing must never create")
}

// fakeUserAPI backs the user screen.
type fakeUserAPI struct {
	users   []models.User
	created []api.UserCreationRequest
	updated map[string]api.UserUpdateRequest
}

var _ admin.UserAPI = (*fakeUserAPI)(nil)

func (f *fakeUserAPI) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserAPI) CreateUser(ctx context.Context, req api.UserCreationRequest, token string) (*models.User, error) {
	f.created = append(f.created, req)
	u := models.User{ID: "u" + strconv.Itoa(len(f.created)), Username: req.Username, Email: req.Email}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeUserAPI) UpdateUser(ctx context.Context, id string, req api.UserUpdateRequest, token string) (*models.User, error) {
	if f.updated == nil {
		f.updated = make(map[string]api.UserUpdateRequest)
	}
	f.updated[id] = req
	return &models.User{ID: id, Email: req.Email}, nil
}

func (f *fakeUserAPI) DeleteUser(ctx context.Context, id, token string) error {
	return nil
}

func TestUserManager_CreateRequiresPassword(t *testing.T) {
	fake := &fakeUserAPI{}
	m := admin.NewUserManager(discardLogger(), fake, staticToken("tok"))

	err := m.Save(context.Background(), nil, admin.UserForm{
		Username: "bob",
		Email:    "bob@example.com",
		Roles:    []string{"USER"},
	})
	require.Error(t, err)
	assert.Empty(t, fake.created)
}

func TestUserManager_EditSendsEmailAndRolesOnly(t *testing.T) {
	bob := models.User{ID: "u1", Username: "bob", Email: "bob@example.com"}
	fake := &fakeUserAPI{users: []models.User{bob}}
	m := admin.NewUserManager(discardLogger(), fake, staticToken("tok"))
	require.NoError(t, m.Refresh(context.Background()))

	form := admin.FormFromUser(bob)
	form.Email = "bob@coffee.example"
	form.Roles = []string{"USER", "ADMIN"}

	require.NoError(t, m.Save(context.Background(), &bob, form))

	require.Contains(t, fake.updated, "u1")
	assert.Equal(t, "bob@coffee.example", fake.updated["u1"].Email)
	assert.Equal(t, []string{"USER", "ADMIN"}, fake.updated["u1"].Roles)
	assert.Empty(t, fake.created)
}

func TestUserManager_CreateSendsFullRequest(t *testing.T) {
	fake := &fakeUserAPI{}
	m := admin.NewUserManager(discardLogger(), fake, staticToken("tok"))

	err := m.Save(context.Background(), nil, admin.UserForm{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
		Roles:    []string{"USER"},
	})
	require.NoError(t, err)

	require.Len(t, fake.created, 1)
	assert.Equal(t, "carol", fake.created[0].Username)
	assert.Equal(t, []string{"USER"}, fake.created[0].Roles)
}
