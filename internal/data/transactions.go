package data

import (
	"context"
	"sort"

	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/store"
)

// transactionsKey is the store key for the transaction collection.
const transactionsKey = "transactions"

// Transactions is the typed view over the transaction collection. The
// collection is kept ordered by date descending; ties keep stable order.
type Transactions struct {
	doc *store.Document[[]model.Transaction]
}

func newTransactions(s *store.Store) *Transactions {
	return &Transactions{doc: store.NewDocument(s, transactionsKey, func() []model.Transaction {
		return []model.Transaction{}
	})}
}

// List returns all transactions, newest first.
func (t *Transactions) List(ctx context.Context) ([]model.Transaction, error) {
	return t.doc.Load(ctx)
}

// Get returns the transaction with the given id, or nil when it does not exist.
func (t *Transactions) Get(ctx context.Context, id string) (*model.Transaction, error) {
	txns, err := t.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txns {
		if txns[i].ID == id {
			return &txns[i], nil
		}
	}
	return nil, nil
}

// ByCategory returns all transactions referencing categoryID.
func (t *Transactions) ByCategory(ctx context.Context, categoryID string) ([]model.Transaction, error) {
	txns, err := t.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Transaction
	for _, txn := range txns {
		if txn.CategoryID != nil && *txn.CategoryID == categoryID {
			matched = append(matched, txn)
		}
	}
	return matched, nil
}

// Subscribe registers fn for external changes to the collection.
func (t *Transactions) Subscribe(fn func([]model.Transaction)) func() {
	return t.doc.Subscribe(fn)
}

// add inserts txn (id already generated), re-sorts, and persists.
func (t *Transactions) add(ctx context.Context, txn model.Transaction) error {
	txns, err := t.doc.Load(ctx)
	if err != nil {
		return err
	}
	txns = append([]model.Transaction{txn}, txns...)
	sortByDateDesc(txns)
	return t.doc.Save(ctx, txns)
}

// update replaces the transaction with txn's id and re-sorts. The second
// return is false when no transaction had that id and nothing was written.
func (t *Transactions) update(ctx context.Context, txn model.Transaction) (bool, error) {
	txns, err := t.doc.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range txns {
		if txns[i].ID == txn.ID {
			txns[i] = txn
			sortByDateDesc(txns)
			return true, t.doc.Save(ctx, txns)
		}
	}
	return false, nil
}

// delete removes the transaction with the given id. The second return is
// false when no transaction had that id.
func (t *Transactions) delete(ctx context.Context, id string) (bool, error) {
	txns, err := t.doc.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range txns {
		if txns[i].ID == id {
			txns = append(txns[:i], txns[i+1:]...)
			return true, t.doc.Save(ctx, txns)
		}
	}
	return false, nil
}

// sortByDateDesc orders transactions newest first, preserving the relative
// order of same-day transactions.
func sortByDateDesc(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[j].Date.Before(txns[i].Date)
	})
}
