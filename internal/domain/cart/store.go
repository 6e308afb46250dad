// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Key identifies whose cart a snapshot belongs to. Authenticated users get a
// stable per-user key; guests are keyed by their session cookie.
type Key struct {
	UserID    *uint
	SessionID string
}

func (k Key) redisKey() string {
	if k.UserID != nil {
		return fmt.Sprintf("cart:user:%d", *k.UserID)
	}
	return fmt.Sprintf("cart:session:%s", k.SessionID)
}

// Valid reports whether the key can address a cart
func (k Key) Valid() bool {
	return k.UserID != nil || k.SessionID != ""
}

// Store owns all cart state. Consumers go through its operations; nothing
// else reads or writes the persisted snapshots.
type Store struct {
	redisClient *redis.Client
	db          *gorm.DB
	config      *config.Config
	logger      *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a new cart store
func NewStore(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Store {
	return &Store{
		redisClient: redisClient,
		db:          db,
		config:      cfg,
		logger:      logger,
		locks:       make(map[string]*sync.Mutex),
	}
}

// AddRequest represents an add-to-cart request. Addons are referenced by
// name; prices are resolved from the product, never trusted from the caller.
type AddRequest struct {
	ProductID uint     `json:"product_id" binding:"required"`
	Size      string   `json:"size" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	Addons    []string `json:"addons"`
}

// UpdateRequest represents a quantity update. Zero removes the item.
type UpdateRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// AddItem adds a product/size/addon combination to the cart. If an item with
// the same composite identity already exists its quantity is incremented;
// otherwise a new line item is appended.
func (s *Store) AddItem(ctx context.Context, key Key, req *AddRequest) (*Response, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("cart key required")
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	var prod product.Product
	err := s.db.Preload("Addons").
		Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod).Error
	if err != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	if !prod.HasSize(req.Size) {
		return nil, fmt.Errorf("size %q is not offered for product %q", req.Size, prod.Name)
	}

	addons := make([]Addon, 0, len(req.Addons))
	for _, name := range req.Addons {
		pa := prod.FindAddon(name)
		if pa == nil {
			return nil, fmt.Errorf("addon %q is not offered for product %q", name, prod.Name)
		}
		addons = append(addons, Addon{Name: pa.Name, Price: pa.Price})
	}
	addons = NormalizeAddons(addons)

	itemID := LineItemID(req.ProductID, req.Size, addons)

	unlock := s.lock(key)
	defer unlock()

	snapshot := s.loadSnapshot(ctx, key)

	merged := false
	for i := range snapshot.Items {
		if snapshot.Items[i].ID == itemID {
			snapshot.Items[i].Quantity += req.Quantity
			snapshot.Items[i].Price = prod.Price // Refresh in case the price changed
			merged = true
			break
		}
	}
	if !merged {
		snapshot.Items = append(snapshot.Items, LineItem{
			ID:        itemID,
			ProductID: req.ProductID,
			Size:      req.Size,
			Quantity:  req.Quantity,
			Price:     prod.Price,
			Addons:    addons,
			AddedAt:   time.Now().UTC(),
		})
	}

	if err := s.saveSnapshot(ctx, key, snapshot); err != nil {
		return nil, err
	}

	return s.buildResponse(snapshot), nil
}

// UpdateQuantity sets an item's quantity to an absolute value. A quantity of
// zero or less removes the item. Unknown item IDs are a silent no-op.
func (s *Store) UpdateQuantity(ctx context.Context, key Key, itemID string, quantity int) (*Response, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("cart key required")
	}

	unlock := s.lock(key)
	defer unlock()

	snapshot := s.loadSnapshot(ctx, key)

	changed := false
	for i := range snapshot.Items {
		if snapshot.Items[i].ID != itemID {
			continue
		}
		if quantity <= 0 {
			snapshot.Items = append(snapshot.Items[:i], snapshot.Items[i+1:]...)
		} else {
			snapshot.Items[i].Quantity = quantity
		}
		changed = true
		break
	}

	if changed {
		if err := s.saveSnapshot(ctx, key, snapshot); err != nil {
			return nil, err
		}
	}

	return s.buildResponse(snapshot), nil
}

// RemoveItem removes an item entirely, regardless of quantity
func (s *Store) RemoveItem(ctx context.Context, key Key, itemID string) (*Response, error) {
	return s.UpdateQuantity(ctx, key, itemID, 0)
}

// Clear empties the cart in a single operation
func (s *Store) Clear(ctx context.Context, key Key) error {
	if !key.Valid() {
		return fmt.Errorf("cart key required")
	}

	unlock := s.lock(key)
	defer unlock()

	if err := s.redisClient.Del(ctx, key.redisKey()).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Get returns the current cart with product details and totals
func (s *Store) Get(ctx context.Context, key Key) (*Response, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("cart key required")
	}

	unlock := s.lock(key)
	defer unlock()

	return s.buildResponse(s.loadSnapshot(ctx, key)), nil
}

// ItemCount returns the sum of all item quantities
func (s *Store) ItemCount(ctx context.Context, key Key) (int, error) {
	resp, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return resp.Totals.ItemCount, nil
}

// Merge folds a guest session cart into the user's cart after login.
// Quantities are summed per composite identity; the guest snapshot is
// cleared afterwards.
func (s *Store) Merge(ctx context.Context, userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	guestKey := Key{SessionID: sessionID}
	userKey := Key{UserID: &userID}

	guest := s.loadSnapshot(ctx, guestKey)
	if len(guest.Items) == 0 {
		return nil
	}

	unlock := s.lock(userKey)
	defer unlock()

	snapshot := s.loadSnapshot(ctx, userKey)

	for _, item := range guest.Items {
		merged := false
		for i := range snapshot.Items {
			if snapshot.Items[i].ID == item.ID {
				snapshot.Items[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			snapshot.Items = append(snapshot.Items, item)
		}
	}

	if err := s.saveSnapshot(ctx, userKey, snapshot); err != nil {
		return err
	}

	return s.redisClient.Del(ctx, guestKey.redisKey()).Err()
}

// lock serializes mutations per cart key so the read-modify-write cycle on a
// snapshot is atomic per operation.
func (s *Store) lock(key Key) func() {
	s.mu.Lock()
	m, ok := s.locks[key.redisKey()]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key.redisKey()] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// loadSnapshot reads the persisted snapshot. A missing key yields an empty
// cart; a corrupt snapshot is discarded and the key deleted, never surfaced
// to the caller.
func (s *Store) loadSnapshot(ctx context.Context, key Key) *Snapshot {
	now := time.Now().UTC()
	empty := &Snapshot{Items: []LineItem{}, CreatedAt: now, UpdatedAt: now}

	data, err := s.redisClient.Get(ctx, key.redisKey()).Result()
	if err == redis.Nil {
		return empty
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key.redisKey()).
			Warn("Failed to read cart snapshot, starting empty")
		return empty
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.WithError(err).WithField("key", key.redisKey()).
			Warn("Discarding corrupt cart snapshot")
		s.redisClient.Del(ctx, key.redisKey())
		return empty
	}
	if snapshot.Items == nil {
		snapshot.Items = []LineItem{}
	}

	return &snapshot
}

// saveSnapshot rewrites the entire snapshot. Snapshots do not expire; a
// cart persists until explicitly cleared.
func (s *Store) saveSnapshot(ctx context.Context, key Key, snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := s.redisClient.Set(ctx, key.redisKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// buildResponse enriches snapshot items with current product details and
// computes derived totals.
func (s *Store) buildResponse(snapshot *Snapshot) *Response {
	items := make([]ItemResponse, len(snapshot.Items))
	var totals Totals

	for i, item := range snapshot.Items {
		items[i] = ItemResponse{
			LineItem:  item,
			LineTotal: item.LineTotal(),
		}

		var prod product.Product
		err := s.db.Preload("Category").Preload("Addons").
			Where("id = ?", item.ProductID).First(&prod).Error
		if err == nil {
			items[i].Product = &prod
		}

		totals.UniqueItems++
		totals.ItemCount += item.Quantity
		totals.TotalPrice += item.LineTotal()
	}

	return &Response{
		Items:     items,
		Totals:    totals,
		CreatedAt: snapshot.CreatedAt,
		UpdatedAt: snapshot.UpdatedAt,
	}
}
