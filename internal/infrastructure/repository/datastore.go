// Package repository holds the DataStore: the single in-memory state
// holder behind every service. Memory is the source of truth; each
// mutation writes the affected documents back to the key-value store,
// and a failed write is logged while the session carries on from
// memory until the next successful write.
package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/domain/enum"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/storage"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

// Storage keys, one whole document per collection.
const (
	keyProducts    = "pos_products"
	keySales       = "pos_sales"
	keySettings    = "pos_settings"
	keyCategories  = "pos_categories"
	keyAdjustments = "pos_stock_adjustments"
	keyUsers       = "pos_users"
	keyHeld        = "pos_held_transactions"
)

// DataStore owns all POS state. Every mutation runs start-to-finish
// under one mutex, so a read-modify-write can never interleave with
// another. Stock only ever changes through AdjustStock and CommitSale,
// which share the same floor-at-zero helper.
type DataStore struct {
	mu  sync.Mutex
	kv  storage.KV
	log *zap.Logger

	products    []entity.Product
	sales       []entity.Sale
	adjustments []entity.StockAdjustment
	settings    entity.BusinessSettings
	categories  []string
	users       []entity.User
	held        []entity.HeldTransaction
}

// NewDataStore creates a data store over the given key-value storage.
func NewDataStore(kv storage.KV, log *zap.Logger) *DataStore {
	return &DataStore{
		kv:       kv,
		log:      log.Named("datastore"),
		settings: entity.DefaultBusinessSettings(),
	}
}

// Load reads every document into memory, falling back to defaults for
// missing or undecodable payloads, and normalizes legacy product
// records (variant flags and aggregates).
func (ds *DataStore) Load() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.loadKey(keyProducts, &ds.products)
	ds.loadKey(keySales, &ds.sales)
	ds.loadKey(keyAdjustments, &ds.adjustments)
	ds.loadKey(keyUsers, &ds.users)
	ds.loadKey(keyHeld, &ds.held)

	settings := entity.DefaultBusinessSettings()
	if ds.loadKey(keySettings, &settings) {
		if settings.ReceiptWidth <= 0 {
			settings.ReceiptWidth = entity.DefaultReceiptWidth
		}
	}
	ds.settings = settings

	categories := entity.DefaultCategories()
	ds.loadKey(keyCategories, &categories)
	ds.categories = categories

	for i := range ds.products {
		ds.products[i].Normalize()
	}

	ds.log.Info("state loaded",
		zap.Int("products", len(ds.products)),
		zap.Int("sales", len(ds.sales)),
		zap.Int("users", len(ds.users)))
}

// loadKey reports whether the key decoded successfully; on any failure
// the destination keeps whatever default it already held.
func (ds *DataStore) loadKey(key string, out any) bool {
	err := ds.kv.Get(key, out)
	if err == nil {
		return true
	}
	if err != storage.ErrKeyNotFound {
		ds.log.Warn("failed to load document, using defaults",
			zap.String("key", key), zap.Error(err))
	}
	return false
}

// persist writes one document; failures are logged and the in-memory
// state stays authoritative for the rest of the session.
func (ds *DataStore) persist(key string, value any) {
	if err := ds.kv.Set(key, value); err != nil {
		ds.log.Error("storage write failed, keeping in-memory state",
			zap.String("key", key), zap.Error(err))
	}
}

// --- Products ---

func cloneProduct(p entity.Product) entity.Product {
	out := p
	if p.Cost != nil {
		c := *p.Cost
		out.Cost = &c
	}
	if p.Variants != nil {
		out.Variants = make([]entity.Variant, len(p.Variants))
		copy(out.Variants, p.Variants)
	}
	return out
}

// Products returns a snapshot of the catalog.
func (ds *DataStore) Products() []entity.Product {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	out := make([]entity.Product, len(ds.products))
	for i, p := range ds.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// ProductByID returns a snapshot of one product.
func (ds *DataStore) ProductByID(id uuid.UUID) (entity.Product, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	p := ds.findProduct(id)
	if p == nil {
		return entity.Product{}, apperror.NewNotFoundError("Product")
	}
	return cloneProduct(*p), nil
}

func (ds *DataStore) findProduct(id uuid.UUID) *entity.Product {
	for i := range ds.products {
		if ds.products[i].ID == id {
			return &ds.products[i]
		}
	}
	return nil
}

// AddProduct appends a product to the catalog and persists it.
func (ds *DataStore) AddProduct(p entity.Product) entity.Product {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	now := time.Now()
	if p.ID == uuid.Nil {
		p.ID = utils.NewUUID()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	p.RecomputeStock()

	ds.products = append(ds.products, p)
	ds.persist(keyProducts, ds.products)
	return cloneProduct(p)
}

// UpdateProduct applies an edit to a product. The edit sees the live
// record; aggregate stock is recomputed afterwards so a variant edit
// cannot leave the flat count stale.
func (ds *DataStore) UpdateProduct(id uuid.UUID, apply func(*entity.Product) error) (entity.Product, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	p := ds.findProduct(id)
	if p == nil {
		return entity.Product{}, apperror.NewNotFoundError("Product")
	}
	if err := apply(p); err != nil {
		return entity.Product{}, err
	}
	p.UpdatedAt = time.Now()
	p.RecomputeStock()

	ds.persist(keyProducts, ds.products)
	return cloneProduct(*p), nil
}

// DeleteProduct removes a product from the catalog. Sale history and
// adjustment records referencing it are left untouched.
func (ds *DataStore) DeleteProduct(id uuid.UUID) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i := range ds.products {
		if ds.products[i].ID == id {
			ds.products = append(ds.products[:i], ds.products[i+1:]...)
			ds.persist(keyProducts, ds.products)
			return nil
		}
	}
	return apperror.NewNotFoundError("Product")
}

// --- Stock reconciliation ---

// applyStock is the one place stock moves. Removals clamp at zero
// instead of failing; this mirrors the terminal's long-standing
// behavior and the audit record keeps the requested quantity. Caller
// holds the mutex.
func applyStock(p *entity.Product, variantID *uuid.UUID, adjType enum.AdjustmentType, quantity int) error {
	if p.HasVariants && variantID != nil {
		v := p.FindVariant(*variantID)
		if v == nil {
			return apperror.NewNotFoundError("Variant")
		}
		switch adjType {
		case enum.AdjustmentAdd:
			v.Stock += quantity
		case enum.AdjustmentRemove:
			v.Stock -= quantity
			if v.Stock < 0 {
				v.Stock = 0
			}
		}
		p.RecomputeStock()
		return nil
	}

	switch adjType {
	case enum.AdjustmentAdd:
		p.Stock += quantity
	case enum.AdjustmentRemove:
		p.Stock -= quantity
		if p.Stock < 0 {
			p.Stock = 0
		}
	}
	return nil
}

// AdjustStock applies a signed stock change to a product or one of its
// variants and appends the audit record. Product list and adjustment
// log are persisted together before returning.
func (ds *DataStore) AdjustStock(productID uuid.UUID, quantity int, adjType enum.AdjustmentType, reason string, userID uuid.UUID, variantID *uuid.UUID) (entity.Product, entity.StockAdjustment, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if quantity <= 0 {
		return entity.Product{}, entity.StockAdjustment{}, apperror.NewBadRequestError("Quantity must be positive")
	}
	if !adjType.IsValid() {
		return entity.Product{}, entity.StockAdjustment{}, apperror.NewBadRequestError("Unknown adjustment type " + string(adjType))
	}

	p := ds.findProduct(productID)
	if p == nil {
		return entity.Product{}, entity.StockAdjustment{}, apperror.NewNotFoundError("Product")
	}
	if err := applyStock(p, variantID, adjType, quantity); err != nil {
		return entity.Product{}, entity.StockAdjustment{}, err
	}
	p.UpdatedAt = time.Now()

	adj := entity.StockAdjustment{
		ID:          utils.NewUUID(),
		ProductID:   productID,
		ProductName: p.Name,
		VariantID:   variantID,
		Type:        adjType,
		Quantity:    quantity,
		Reason:      reason,
		UserID:      userID,
		Timestamp:   time.Now(),
	}
	ds.adjustments = append(ds.adjustments, adj)

	ds.persist(keyProducts, ds.products)
	ds.persist(keyAdjustments, ds.adjustments)
	return cloneProduct(*p), adj, nil
}

// CommitSale appends a finalized sale to the ledger and decrements
// stock for every line through the same clamp rule as AdjustStock,
// emitting one "sale" adjustment per line attributed to the cashier.
// Either everything applies or nothing does: all lines are resolved
// before any stock moves.
func (ds *DataStore) CommitSale(sale entity.Sale) (entity.Sale, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	type target struct {
		product   *entity.Product
		variantID *uuid.UUID
		quantity  int
	}
	targets := make([]target, 0, len(sale.Items))
	for _, item := range sale.Items {
		p := ds.findProduct(item.ProductID)
		if p == nil {
			return entity.Sale{}, apperror.NewNotFoundError("Product " + item.Product.Name)
		}
		var variantID *uuid.UUID
		if item.Variant != nil && p.HasVariants {
			if p.FindVariant(item.Variant.ID) == nil {
				return entity.Sale{}, apperror.NewNotFoundError("Variant " + item.Variant.Size)
			}
			id := item.Variant.ID
			variantID = &id
		}
		targets = append(targets, target{product: p, variantID: variantID, quantity: item.Quantity})
	}

	now := time.Now()
	for _, t := range targets {
		// Resolved above; applyStock cannot fail here.
		_ = applyStock(t.product, t.variantID, enum.AdjustmentRemove, t.quantity)
		t.product.UpdatedAt = now
		ds.adjustments = append(ds.adjustments, entity.StockAdjustment{
			ID:          utils.NewUUID(),
			ProductID:   t.product.ID,
			ProductName: t.product.Name,
			VariantID:   t.variantID,
			Type:        enum.AdjustmentRemove,
			Quantity:    t.quantity,
			Reason:      "sale",
			UserID:      sale.CashierID,
			Timestamp:   now,
		})
	}

	ds.sales = append(ds.sales, sale)

	ds.persist(keyProducts, ds.products)
	ds.persist(keyAdjustments, ds.adjustments)
	ds.persist(keySales, ds.sales)

	ds.log.Info("sale recorded",
		zap.String("receipt", sale.ReceiptNumber),
		zap.Int("lines", len(sale.Items)),
		zap.String("total", sale.Total.String()))
	return sale, nil
}

// Sales returns a snapshot of the sales ledger.
func (ds *DataStore) Sales() []entity.Sale {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	out := make([]entity.Sale, len(ds.sales))
	copy(out, ds.sales)
	return out
}

// StockAdjustments returns a snapshot of the audit log.
func (ds *DataStore) StockAdjustments() []entity.StockAdjustment {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	out := make([]entity.StockAdjustment, len(ds.adjustments))
	copy(out, ds.adjustments)
	return out
}

// --- Settings ---

// Settings returns the current business settings.
func (ds *DataStore) Settings() entity.BusinessSettings {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.settings
}

// UpdateSettings applies a partial update and persists the whole
// settings object.
func (ds *DataStore) UpdateSettings(apply func(*entity.BusinessSettings)) entity.BusinessSettings {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	apply(&ds.settings)
	ds.persist(keySettings, ds.settings)
	return ds.settings
}

// --- Categories ---

// Categories returns the category list.
func (ds *DataStore) Categories() []string {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	out := make([]string, len(ds.categories))
	copy(out, ds.categories)
	return out
}

// AddCategory appends a new category name.
func (ds *DataStore) AddCategory(name string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.NewBadRequestError("Category name is required")
	}
	for _, c := range ds.categories {
		if c == name {
			return apperror.NewConflictError("Category " + name + " already exists")
		}
	}
	ds.categories = append(ds.categories, name)
	ds.persist(keyCategories, ds.categories)
	return nil
}

// RenameCategory renames a category and re-labels every product in it.
func (ds *DataStore) RenameCategory(oldName, newName string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperror.NewBadRequestError("Category name is required")
	}
	for _, c := range ds.categories {
		if c == newName {
			return apperror.NewConflictError("Category " + newName + " already exists")
		}
	}

	found := false
	for i, c := range ds.categories {
		if c == oldName {
			ds.categories[i] = newName
			found = true
			break
		}
	}
	if !found {
		return apperror.NewNotFoundError("Category")
	}

	now := time.Now()
	for i := range ds.products {
		if ds.products[i].Category == oldName {
			ds.products[i].Category = newName
			ds.products[i].UpdatedAt = now
		}
	}

	ds.persist(keyCategories, ds.categories)
	ds.persist(keyProducts, ds.products)
	return nil
}

// DeleteCategory removes a category; it is refused while any product
// still references it.
func (ds *DataStore) DeleteCategory(name string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	idx := -1
	for i, c := range ds.categories {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.NewNotFoundError("Category")
	}
	for i := range ds.products {
		if ds.products[i].Category == name {
			return apperror.NewConflictError("Category " + name + " is still in use")
		}
	}
	ds.categories = append(ds.categories[:idx], ds.categories[idx+1:]...)
	ds.persist(keyCategories, ds.categories)
	return nil
}

// --- Users ---

// Users returns a snapshot of all users.
func (ds *DataStore) Users() []entity.User {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	out := make([]entity.User, len(ds.users))
	copy(out, ds.users)
	return out
}

// UserByUsername looks a user up case-insensitively.
func (ds *DataStore) UserByUsername(username string) (entity.User, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	for _, u := range ds.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return entity.User{}, apperror.NewNotFoundError("User")
}

// AddUser appends a user; usernames are unique case-insensitively.
func (ds *DataStore) AddUser(u entity.User) (entity.User, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for _, existing := range ds.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return entity.User{}, apperror.NewConflictError("Username " + u.Username + " is taken")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = utils.NewUUID()
	}
	u.CreatedAt = time.Now()
	u.Active = true

	ds.users = append(ds.users, u)
	ds.persist(keyUsers, ds.users)
	return u, nil
}

// UpdateUser applies an edit to a user record.
func (ds *DataStore) UpdateUser(id uuid.UUID, apply func(*entity.User) error) (entity.User, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i := range ds.users {
		if ds.users[i].ID == id {
			if err := apply(&ds.users[i]); err != nil {
				return entity.User{}, err
			}
			ds.persist(keyUsers, ds.users)
			return ds.users[i], nil
		}
	}
	return entity.User{}, apperror.NewNotFoundError("User")
}

// DeleteUser removes a user.
func (ds *DataStore) DeleteUser(id uuid.UUID) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i := range ds.users {
		if ds.users[i].ID == id {
			ds.users = append(ds.users[:i], ds.users[i+1:]...)
			ds.persist(keyUsers, ds.users)
			return nil
		}
	}
	return apperror.NewNotFoundError("User")
}

// --- Held transactions ---

// Hold parks a cart for later retrieval.
func (ds *DataStore) Hold(ht entity.HeldTransaction) entity.HeldTransaction {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ht.ID == uuid.Nil {
		ht.ID = utils.NewUUID()
	}
	ht.Timestamp = time.Now()
	ds.held = append(ds.held, ht)
	ds.persist(keyHeld, ds.held)
	return ht
}

// HeldTransactions returns a snapshot of parked carts.
func (ds *DataStore) HeldTransactions() []entity.HeldTransaction {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	out := make([]entity.HeldTransaction, len(ds.held))
	copy(out, ds.held)
	return out
}

// RetrieveHeld removes a parked cart and returns its items.
func (ds *DataStore) RetrieveHeld(id uuid.UUID) ([]entity.CartItem, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	for i := range ds.held {
		if ds.held[i].ID == id {
			items := ds.held[i].Items
			ds.held = append(ds.held[:i], ds.held[i+1:]...)
			ds.persist(keyHeld, ds.held)
			return items, nil
		}
	}
	return nil, apperror.NewNotFoundError("Held transaction")
}
