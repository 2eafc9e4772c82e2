package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryNone is the sentinel assigned to ingredients whose category
// is not part of the recognized enumeration.
const CategoryNone = "no category 📦"

// IngredientCategories is the fixed set of recognized food categories.
var IngredientCategories = []string{
	"vegetables 🥦",
	"fruits 🍎",
	"meat 🥩",
	"fish 🐟",
	"dairy 🥚",
	"grains 🌾",
	"spices 🌶️",
	"sweets 🍬",
	"beverages 🥤",
	"nuts 🥜",
	CategoryNone,
}

// ValidCategory reports whether category belongs to the recognized set.
func ValidCategory(category string) bool {
	for _, c := range IngredientCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:60;not null" json:"name"`
	Amount    int       `gorm:"not null;check:amount > 0 AND amount <= 9999" json:"amount"`
	Category  string    `gorm:"size:50;not null" json:"category"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
