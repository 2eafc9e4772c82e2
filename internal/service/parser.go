package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/munchora/server/internal/models"
)

// requiredRecipeKeys are the keys a provider response must carry under
// the top-level "recipe" object.
var requiredRecipeKeys = []string{
	"title",
	"description",
	"instructions",
	"ingredients",
	"cuisine",
	"difficulty",
	"tags",
	"prep_time",
	"cook_time",
	"servings",
}

// Amount coerces ingredient amounts from JSON numbers or numeric
// strings into integers.
type Amount int

func (a *Amount) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = Amount(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("invalid amount %q", str)
		}
		*a = Amount(n)
		return nil
	}

	return fmt.Errorf("invalid amount format: %s", string(data))
}

// ParsedIngredient is one validated ingredient entry from a provider
// response.
type ParsedIngredient struct {
	Name     string `json:"name"`
	Amount   Amount `json:"amount"`
	Category string `json:"category"`
}

// ParsedRecipe is a fully validated recipe as returned by the provider,
// ready for persistence.
type ParsedRecipe struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Instructions []string           `json:"instructions"`
	Ingredients  []ParsedIngredient `json:"ingredients"`
	Cuisine      string             `json:"cuisine"`
	Difficulty   string             `json:"difficulty"`
	Tags         []string           `json:"tags"`
	PrepTime     int                `json:"prep_time"`
	CookTime     int                `json:"cook_time"`
	Servings     int                `json:"servings"`
}

// ParseRecipe parses raw provider output into a ParsedRecipe.
// Syntax failures yield *MalformedResponseError, absent required keys
// yield *MissingFieldsError naming every missing key. Unrecognized
// ingredient categories are normalized to the sentinel rather than
// rejected.
func ParseRecipe(raw string) (*ParsedRecipe, error) {
	var envelope struct {
		Recipe json.RawMessage `json:"recipe"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if len(envelope.Recipe) == 0 {
		return nil, &MissingFieldsError{Fields: []string{"recipe"}}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Recipe, &fields); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	var missing []string
	for _, key := range requiredRecipeKeys {
		if v, ok := fields[key]; !ok || string(v) == "null" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingFieldsError{Fields: missing}
	}

	var recipe ParsedRecipe
	if err := json.Unmarshal(envelope.Recipe, &recipe); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	for i := range recipe.Ingredients {
		if !models.ValidCategory(recipe.Ingredients[i].Category) {
			recipe.Ingredients[i].Category = models.CategoryNone
		}
	}

	return &recipe, nil
}
