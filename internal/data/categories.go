package data

import (
	"context"

	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/store"
)

// categoriesKey is the store key for the category collection.
const categoriesKey = "categories"

// Categories is the typed view over the category collection. A fresh store
// is seeded with the default category set.
type Categories struct {
	doc *store.Document[[]model.Category]
}

func newCategories(s *store.Store) *Categories {
	return &Categories{doc: store.NewDocument(s, categoriesKey, model.DefaultCategories)}
}

// List returns all categories in declaration order.
func (c *Categories) List(ctx context.Context) ([]model.Category, error) {
	return c.doc.Load(ctx)
}

// Get returns the category with the given id, or nil when it does not exist.
func (c *Categories) Get(ctx context.Context, id string) (*model.Category, error) {
	categories, err := c.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, nil
}

// GetByName returns the category whose name matches (case-insensitively),
// or nil when none does.
func (c *Categories) GetByName(ctx context.Context, name string) (*model.Category, error) {
	categories, err := c.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if equalFold(categories[i].Name, name) {
			return &categories[i], nil
		}
	}
	return nil, nil
}

// Subscribe registers fn for external changes to the collection.
func (c *Categories) Subscribe(fn func([]model.Category)) func() {
	return c.doc.Subscribe(fn)
}

// add appends cat (id already generated) and persists the collection.
func (c *Categories) add(ctx context.Context, cat model.Category) error {
	categories, err := c.doc.Load(ctx)
	if err != nil {
		return err
	}
	return c.doc.Save(ctx, append(categories, cat))
}

// update replaces the category with cat's id. The second return is false
// when no category had that id and nothing was written.
func (c *Categories) update(ctx context.Context, cat model.Category) (bool, error) {
	categories, err := c.doc.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range categories {
		if categories[i].ID == cat.ID {
			categories[i] = cat
			return true, c.doc.Save(ctx, categories)
		}
	}
	return false, nil
}
