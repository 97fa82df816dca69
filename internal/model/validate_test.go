package model

import (
	"strings"
	"testing"
	"time"
)

func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  bool
	}{
		{
			name:     "valid",
			category: Category{ID: "food", Name: "Food & Dining", Icon: "Utensils"},
		},
		{
			name:     "empty name",
			category: Category{ID: "x", Name: "", Icon: "Utensils"},
			wantErr:  true,
		},
		{
			name:     "whitespace name",
			category: Category{ID: "x", Name: "   ", Icon: "Utensils"},
			wantErr:  true,
		},
		{
			name:     "name too long",
			category: Category{ID: "x", Name: strings.Repeat("a", 51), Icon: "Utensils"},
			wantErr:  true,
		},
		{
			name:     "multibyte name counts characters not bytes",
			category: Category{ID: "x", Name: strings.Repeat("ü", 50), Icon: "Utensils"},
		},
		{
			name:     "missing icon",
			category: Category{ID: "x", Name: "Food"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	categoryID := "food"
	valid := Transaction{
		ID:          "t1",
		Description: "Coffee at the corner shop",
		Amount:      4.50,
		Date:        NewDate(2024, time.March, 15),
		CategoryID:  &categoryID,
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*Transaction) {},
		},
		{
			name:   "nil category is allowed",
			mutate: func(tx *Transaction) { tx.CategoryID = nil },
		},
		{
			name:    "description too short",
			mutate:  func(tx *Transaction) { tx.Description = "a" },
			wantErr: true,
		},
		{
			name:    "description too long",
			mutate:  func(tx *Transaction) { tx.Description = strings.Repeat("a", 101) },
			wantErr: true,
		},
		{
			name:   "multibyte description counts characters not bytes",
			mutate: func(tx *Transaction) { tx.Description = strings.Repeat("ä", 60) },
		},
		{
			name:    "single multibyte character too short",
			mutate:  func(tx *Transaction) { tx.Description = "饭" },
			wantErr: true,
		},
		{
			name:    "zero amount",
			mutate:  func(tx *Transaction) { tx.Amount = 0 },
			wantErr: true,
		},
		{
			name:    "negative amount",
			mutate:  func(tx *Transaction) { tx.Amount = -5 },
			wantErr: true,
		},
		{
			name:    "missing date",
			mutate:  func(tx *Transaction) { tx.Date = Date{} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := valid
			tt.mutate(&txn)
			err := txn.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr bool
	}{
		{
			name:   "valid",
			budget: Budget{ID: "b1", CategoryID: "food", Amount: 200},
		},
		{
			name:    "missing category",
			budget:  Budget{ID: "b1", Amount: 200},
			wantErr: true,
		},
		{
			name:    "zero amount",
			budget:  Budget{ID: "b1", CategoryID: "food", Amount: 0},
			wantErr: true,
		},
		{
			name:    "negative amount",
			budget:  Budget{ID: "b1", CategoryID: "food", Amount: -10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		wantErr bool
	}{
		{
			name:    "default profile is valid",
			profile: DefaultProfile(),
		},
		{
			name: "full profile",
			profile: UserProfile{
				Name:      "Ada",
				Email:     "ada@example.com",
				Bio:       "Keeping the books balanced.",
				AvatarURL: "https://example.com/ada.png",
			},
		},
		{
			name:    "name too short",
			profile: UserProfile{Name: "A", Email: "a@example.com"},
			wantErr: true,
		},
		{
			name:    "bad email",
			profile: UserProfile{Name: "Ada", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name: "bio too long",
			profile: UserProfile{
				Name:  "Ada",
				Email: "ada@example.com",
				Bio:   strings.Repeat("x", 201),
			},
			wantErr: true,
		},
		{
			name: "multibyte name and bio count characters not bytes",
			profile: UserProfile{
				Name:  "Åsa",
				Email: "asa@example.com",
				Bio:   strings.Repeat("ö", 200),
			},
		},
		{
			name: "relative avatar URL",
			profile: UserProfile{
				Name:      "Ada",
				Email:     "ada@example.com",
				AvatarURL: "/avatar.png",
			},
			wantErr: true,
		},
		{
			name: "empty avatar URL is fine",
			profile: UserProfile{
				Name:  "Ada",
				Email: "ada@example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIconOrDefault(t *testing.T) {
	if got := IconOrDefault("Utensils"); got != "Utensils" {
		t.Errorf("IconOrDefault(Utensils) = %q", got)
	}
	if got := IconOrDefault("NoSuchIcon"); got != DefaultIcon {
		t.Errorf("IconOrDefault(NoSuchIcon) = %q, want %q", got, DefaultIcon)
	}
	if got := IconOrDefault(""); got != DefaultIcon {
		t.Errorf("IconOrDefault(\"\") = %q, want %q", got, DefaultIcon)
	}
}

func TestDefaultCategories_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, cat := range DefaultCategories() {
		if seen[cat.ID] {
			t.Errorf("duplicate default category id %q", cat.ID)
		}
		seen[cat.ID] = true
		if err := cat.Validate(); err != nil {
			t.Errorf("default category %q invalid: %v", cat.ID, err)
		}
		if !KnownIcon(cat.Icon) {
			t.Errorf("default category %q has unknown icon %q", cat.ID, cat.Icon)
		}
	}
}
