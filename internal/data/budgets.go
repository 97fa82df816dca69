package data

import (
	"context"

	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/store"
)

// budgetsKey is the store key for the budget collection.
const budgetsKey = "budgets"

// Budgets is the typed view over the budget collection. The one-budget-per-
// category rule is enforced by the facade at creation time; the collection
// itself never silently overwrites.
type Budgets struct {
	doc *store.Document[[]model.Budget]
}

func newBudgets(s *store.Store) *Budgets {
	return &Budgets{doc: store.NewDocument(s, budgetsKey, func() []model.Budget {
		return []model.Budget{}
	})}
}

// List returns all budgets.
func (b *Budgets) List(ctx context.Context) ([]model.Budget, error) {
	return b.doc.Load(ctx)
}

// Get returns the budget with the given id, or nil when it does not exist.
func (b *Budgets) Get(ctx context.Context, id string) (*model.Budget, error) {
	budgets, err := b.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		if budgets[i].ID == id {
			return &budgets[i], nil
		}
	}
	return nil, nil
}

// ByCategory returns the budget assigned to categoryID, or nil when the
// category has none.
func (b *Budgets) ByCategory(ctx context.Context, categoryID string) (*model.Budget, error) {
	budgets, err := b.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		if budgets[i].CategoryID == categoryID {
			return &budgets[i], nil
		}
	}
	return nil, nil
}

// Subscribe registers fn for external changes to the collection.
func (b *Budgets) Subscribe(fn func([]model.Budget)) func() {
	return b.doc.Subscribe(fn)
}

// add appends budget (id already generated) and persists the collection.
func (b *Budgets) add(ctx context.Context, budget model.Budget) error {
	budgets, err := b.doc.Load(ctx)
	if err != nil {
		return err
	}
	return b.doc.Save(ctx, append(budgets, budget))
}

// update replaces the budget with budget's id. The second return is false
// when no budget had that id and nothing was written.
func (b *Budgets) update(ctx context.Context, budget model.Budget) (bool, error) {
	budgets, err := b.doc.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range budgets {
		if budgets[i].ID == budget.ID {
			budgets[i] = budget
			return true, b.doc.Save(ctx, budgets)
		}
	}
	return false, nil
}

// delete removes the budget with the given id. The second return is false
// when no budget had that id.
func (b *Budgets) delete(ctx context.Context, id string) (bool, error) {
	budgets, err := b.doc.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range budgets {
		if budgets[i].ID == id {
			budgets = append(budgets[:i], budgets[i+1:]...)
			return true, b.doc.Save(ctx, budgets)
		}
	}
	return false, nil
}
