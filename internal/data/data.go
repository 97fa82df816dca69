// Package data owns the domain collections and the facade through which all
// reads and writes flow. Cross-collection rules (cascading category
// deletion, one budget per category) live here, so they are enforced in one
// place.
package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/smartspend/smartspend/internal/common"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/store"
)

// Data is the single access point for the four domain collections. It is
// constructed once at startup and passed by reference; no other component
// mutates the collections directly.
//
// Mutations are best-effort durable: when the underlying write fails, the
// in-memory state still reflects the change for the life of the process and
// the returned error wraps common.ErrNotPersisted.
type Data struct {
	store        *store.Store
	Categories   *Categories
	Transactions *Transactions
	Budgets      *Budgets
	Profile      *Profile
}

// New builds the facade over an open store.
func New(s *store.Store) *Data {
	return &Data{
		store:        s,
		Categories:   newCategories(s),
		Transactions: newTransactions(s),
		Budgets:      newBudgets(s),
		Profile:      newProfile(s),
	}
}

// AddCategory creates a category with a generated id. Unknown icon names
// are replaced with the default icon.
func (d *Data) AddCategory(ctx context.Context, name, icon string) (model.Category, error) {
	cat := model.Category{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		Icon: model.IconOrDefault(icon),
	}
	if err := cat.Validate(); err != nil {
		return model.Category{}, fmt.Errorf("%w: %v", common.ErrInvalidEntity, err)
	}
	if err := d.Categories.add(ctx, cat); err != nil {
		return cat, err
	}
	return cat, nil
}

// UpdateCategory replaces the category with cat's id.
func (d *Data) UpdateCategory(ctx context.Context, cat model.Category) error {
	cat.Name = strings.TrimSpace(cat.Name)
	cat.Icon = model.IconOrDefault(cat.Icon)
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidEntity, err)
	}
	found, err := d.Categories.update(ctx, cat)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("category %q: %w", cat.ID, common.ErrNotFound)
	}
	return nil
}

// DeleteCategory removes the category and cascades: every transaction
// referencing it becomes uncategorized (history is preserved), every budget
// referencing it is removed (a budget without its category is meaningless).
// All three collections are persisted in one database transaction.
func (d *Data) DeleteCategory(ctx context.Context, id string) error {
	categories, err := d.Categories.List(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range categories {
		if categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("category %q: %w", id, common.ErrNotFound)
	}
	categories = append(categories[:idx], categories[idx+1:]...)

	txns, err := d.Transactions.List(ctx)
	if err != nil {
		return err
	}
	for i := range txns {
		if txns[i].CategoryID != nil && *txns[i].CategoryID == id {
			txns[i].CategoryID = nil
		}
	}

	budgets, err := d.Budgets.List(ctx)
	if err != nil {
		return err
	}
	kept := budgets[:0]
	for _, b := range budgets {
		if b.CategoryID != id {
			kept = append(kept, b)
		}
	}

	entries := make([]store.Entry, 0, 3)
	for _, build := range []func() (store.Entry, error){
		func() (store.Entry, error) { return d.Categories.doc.Entry(categories) },
		func() (store.Entry, error) { return d.Transactions.doc.Entry(txns) },
		func() (store.Entry, error) { return d.Budgets.doc.Entry(kept) },
	} {
		entry, err := build()
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	return d.store.SetBatch(ctx, entries)
}

// AddTransaction creates a transaction with a generated id. A non-nil
// category reference must point at an existing category.
func (d *Data) AddTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	txn.ID = uuid.NewString()
	txn.Description = strings.TrimSpace(txn.Description)
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %v", common.ErrInvalidEntity, err)
	}
	if err := d.checkCategoryRef(ctx, txn.CategoryID); err != nil {
		return model.Transaction{}, err
	}
	if err := d.Transactions.add(ctx, txn); err != nil {
		return txn, err
	}
	return txn, nil
}

// UpdateTransaction replaces the transaction with txn's id.
func (d *Data) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	txn.Description = strings.TrimSpace(txn.Description)
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidEntity, err)
	}
	if err := d.checkCategoryRef(ctx, txn.CategoryID); err != nil {
		return err
	}
	found, err := d.Transactions.update(ctx, txn)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("transaction %q: %w", txn.ID, common.ErrNotFound)
	}
	return nil
}

// DeleteTransaction removes the transaction with the given id.
func (d *Data) DeleteTransaction(ctx context.Context, id string) error {
	found, err := d.Transactions.delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("transaction %q: %w", id, common.ErrNotFound)
	}
	return nil
}

// AddBudget creates a budget for a category with a generated id. A category
// can carry at most one budget; a second is refused with
// common.ErrDuplicateEntry so callers can surface the conflict distinctly.
func (d *Data) AddBudget(ctx context.Context, categoryID string, amount float64) (model.Budget, error) {
	budget := model.Budget{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Amount:     amount,
	}
	if err := budget.Validate(); err != nil {
		return model.Budget{}, fmt.Errorf("%w: %v", common.ErrInvalidEntity, err)
	}

	cat, err := d.Categories.Get(ctx, categoryID)
	if err != nil {
		return model.Budget{}, err
	}
	if cat == nil {
		return model.Budget{}, fmt.Errorf("category %q: %w", categoryID, common.ErrNotFound)
	}

	existing, err := d.Budgets.ByCategory(ctx, categoryID)
	if err != nil {
		return model.Budget{}, err
	}
	if existing != nil {
		return model.Budget{}, common.NewUserError(
			fmt.Sprintf("a budget for category %q already exists", cat.Name),
			common.ErrDuplicateEntry)
	}

	if err := d.Budgets.add(ctx, budget); err != nil {
		return budget, err
	}
	return budget, nil
}

// UpdateBudget replaces the budget with budget's id. The category
// assignment is immutable after creation; only the amount may change.
func (d *Data) UpdateBudget(ctx context.Context, budget model.Budget) error {
	if err := budget.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidEntity, err)
	}

	existing, err := d.Budgets.Get(ctx, budget.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("budget %q: %w", budget.ID, common.ErrNotFound)
	}
	if budget.CategoryID != existing.CategoryID {
		return fmt.Errorf("budget category: %w", common.ErrImmutableField)
	}

	_, err = d.Budgets.update(ctx, budget)
	return err
}

// DeleteBudget removes the budget with the given id.
func (d *Data) DeleteBudget(ctx context.Context, id string) error {
	found, err := d.Budgets.delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("budget %q: %w", id, common.ErrNotFound)
	}
	return nil
}

// ProfilePatch holds the profile fields to change. Nil fields keep their
// current value.
type ProfilePatch struct {
	Name      *string
	Email     *string
	Bio       *string
	AvatarURL *string
}

// UpdateProfile merges patch into the profile singleton and persists it.
func (d *Data) UpdateProfile(ctx context.Context, patch ProfilePatch) (model.UserProfile, error) {
	profile, err := d.Profile.Get(ctx)
	if err != nil {
		return model.UserProfile{}, err
	}

	if patch.Name != nil {
		profile.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		profile.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*patch.AvatarURL)
	}

	if err := profile.Validate(); err != nil {
		return model.UserProfile{}, fmt.Errorf("%w: %v", common.ErrInvalidEntity, err)
	}
	if err := d.Profile.save(ctx, profile); err != nil {
		return profile, err
	}
	return profile, nil
}

// checkCategoryRef verifies that a non-nil category reference points at an
// existing category.
func (d *Data) checkCategoryRef(ctx context.Context, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	cat, err := d.Categories.Get(ctx, *categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("category %q: %w", *categoryID, common.ErrNotFound)
	}
	return nil
}

// equalFold reports whether two strings are equal ignoring case.
func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
