package data

import (
	"context"

	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/store"
)

// profileKey is the store key for the user profile singleton.
const profileKey = "userProfile"

// Profile is the typed view over the user profile singleton. It always
// exists; a fresh store serves the default profile.
type Profile struct {
	doc *store.Document[model.UserProfile]
}

func newProfile(s *store.Store) *Profile {
	return &Profile{doc: store.NewDocument(s, profileKey, model.DefaultProfile)}
}

// Get returns the current profile.
func (p *Profile) Get(ctx context.Context) (model.UserProfile, error) {
	return p.doc.Load(ctx)
}

// Subscribe registers fn for external changes to the profile.
func (p *Profile) Subscribe(fn func(model.UserProfile)) func() {
	return p.doc.Subscribe(fn)
}

// save persists the profile.
func (p *Profile) save(ctx context.Context, profile model.UserProfile) error {
	return p.doc.Save(ctx, profile)
}
