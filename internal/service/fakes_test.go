package service

import (
	"context"
	"sort"

	"github.com/furnistore/backend/internal/entity"
	"github.com/furnistore/backend/internal/repository"
)

// In-memory repository fakes. Write counters let tests assert that no-op
// paths really perform no writes.

type fakeProductRepo struct {
	products map[int64]*entity.Product
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]*entity.Product)}
	for i := range products {
		p := products[i]
		repo.products[p.ID] = &p
	}
	return repo
}

func (r *fakeProductRepo) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) FindAllActive(_ context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	// Deliberately not name-ordered: ordering is the engine's job.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
}

func newFakeCategoryRepo(categories ...entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[int64]*entity.Category)}
	for i := range categories {
		c := categories[i]
		repo.categories[c.ID] = &c
	}
	return repo
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]entity.Category, error) {
	return r.collect(func(*entity.Category) bool { return true }), nil
}

func (r *fakeCategoryRepo) FindActive(_ context.Context) ([]entity.Category, error) {
	return r.collect(func(c *entity.Category) bool { return c.IsActive }), nil
}

func (r *fakeCategoryRepo) collect(keep func(*entity.Category) bool) []entity.Category {
	out := make([]entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type fakeCartRepo struct {
	carts       map[string]*entity.Cart
	items       *fakeCartItemRepo
	nextID      int64
	createCalls int
}

func newFakeCartRepo(items *fakeCartItemRepo) *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*entity.Cart), items: items}
}

func (r *fakeCartRepo) FindBySessionID(_ context.Context, sessionID string) (*entity.Cart, error) {
	c, ok := r.carts[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *c
	clone.Items = nil
	return &clone, nil
}

func (r *fakeCartRepo) FindWithItems(ctx context.Context, sessionID string) (*entity.Cart, error) {
	c, ok := r.carts[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *c
	clone.Items = r.items.itemsForCart(c.ID)
	return &clone, nil
}

func (r *fakeCartRepo) Create(_ context.Context, cart *entity.Cart) error {
	r.nextID++
	r.createCalls++
	cart.ID = r.nextID
	clone := *cart
	r.carts[cart.SessionID] = &clone
	return nil
}

type fakeCartItemRepo struct {
	items    map[int64]*entity.CartItem
	products *fakeProductRepo
	nextID   int64

	createCalls       int
	updateCalls       int
	deleteCalls       int
	deleteByCartCalls int
}

func newFakeCartItemRepo(products *fakeProductRepo) *fakeCartItemRepo {
	return &fakeCartItemRepo{items: make(map[int64]*entity.CartItem), products: products}
}

// withProduct mirrors the join the real repository performs: display
// fields reflect the current product row, the unit price stays as stored.
func (r *fakeCartItemRepo) withProduct(item entity.CartItem) entity.CartItem {
	if p, ok := r.products.products[item.ProductID]; ok {
		clone := *p
		item.Product = &clone
	}
	return item
}

func (r *fakeCartItemRepo) itemsForCart(cartID int64) []entity.CartItem {
	out := []entity.CartItem{}
	for _, item := range r.items {
		if item.CartID == cartID {
			out = append(out, r.withProduct(*item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeCartItemRepo) FindByID(_ context.Context, id int64) (*entity.CartItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := r.withProduct(*item)
	return &clone, nil
}

func (r *fakeCartItemRepo) FindByCartAndProduct(_ context.Context, cartID, productID int64) (*entity.CartItem, error) {
	for _, item := range r.items {
		if item.CartID == cartID && item.ProductID == productID {
			clone := r.withProduct(*item)
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCartItemRepo) Create(_ context.Context, item *entity.CartItem) error {
	r.nextID++
	r.createCalls++
	item.ID = r.nextID
	clone := *item
	clone.Product = nil
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeCartItemRepo) Update(_ context.Context, item *entity.CartItem) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return repository.ErrNotFound
	}
	r.updateCalls++
	stored.Quantity = item.Quantity
	stored.ModifiedAt = item.ModifiedAt
	return nil
}

func (r *fakeCartItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	r.deleteCalls++
	delete(r.items, id)
	return nil
}

func (r *fakeCartItemRepo) DeleteByCartID(_ context.Context, cartID int64) error {
	r.deleteByCartCalls++
	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}
