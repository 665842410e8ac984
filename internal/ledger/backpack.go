package ledger

import (
	"context"
	"errors"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Backpacks owns backpacks/{uid}, a per-user gear list.
type Backpacks struct {
	base
}

// NewBackpacks creates a Backpacks ledger.
func NewBackpacks(store storage.Store, opts ...Option) *Backpacks {
	return &Backpacks{base: newBase(store, opts)}
}

type backpack struct {
	Items []models.BackpackItem `json:"items"`
}

// GetBackpack returns the user's items. A user without a backpack has none.
func (b *Backpacks) GetBackpack(ctx context.Context, uid string) ([]models.BackpackItem, error) {
	bp, err := get[backpack](ctx, &b.base, models.CollectionBackpacks, uid)
	if errors.Is(err, ErrNotFound) {
		return []models.BackpackItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return itemsOrEmpty(bp.Items), nil
}

// AddItem adds item unless an item with the same ID is already packed.
func (b *Backpacks) AddItem(ctx context.Context, uid string, item models.BackpackItem) ([]models.BackpackItem, error) {
	if err := validateStruct(struct {
		UserID string `json:"userId" validate:"required"`
		ItemID string `json:"id" validate:"required"`
		Name   string `json:"name" validate:"required,max=100"`
	}{uid, item.ID, item.Name}); err != nil {
		return nil, err
	}
	bp, err := upsert(ctx, &b.base, models.CollectionBackpacks, uid, func(bp *backpack) (bool, error) {
		for _, existing := range bp.Items {
			if existing.ID == item.ID {
				return false, nil
			}
		}
		bp.Items = append(bp.Items, item)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return itemsOrEmpty(bp.Items), nil
}

// RemoveItem removes the item with itemID. Removing an absent item is a no-op.
func (b *Backpacks) RemoveItem(ctx context.Context, uid, itemID string) ([]models.BackpackItem, error) {
	if itemID == "" {
		return nil, invalid("itemId", "is required")
	}
	bp, err := upsert(ctx, &b.base, models.CollectionBackpacks, uid, func(bp *backpack) (bool, error) {
		kept := make([]models.BackpackItem, 0, len(bp.Items))
		for _, it := range bp.Items {
			if it.ID != itemID {
				kept = append(kept, it)
			}
		}
		changed := len(kept) != len(bp.Items)
		bp.Items = kept
		return changed, nil
	})
	if err != nil {
		return nil, err
	}
	return itemsOrEmpty(bp.Items), nil
}

func itemsOrEmpty(items []models.BackpackItem) []models.BackpackItem {
	if items == nil {
		return []models.BackpackItem{}
	}
	return items
}
