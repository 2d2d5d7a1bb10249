package mealdb

import (
	"encoding/json"
	"strconv"
	"strings"
)

// IngredientSlots is the number of strIngredientN fields a record may carry.
const IngredientSlots = 20

// Meal is the normalized form of one search result.
type Meal struct {
	Name         string
	Region       string
	Instructions string
	ThumbnailURL string
	Ingredients  []string
}

// APIMeal is one raw record from the search endpoint. Any field may be null,
// and only string values are kept.
type APIMeal struct {
	Name         string
	Area         string
	Instructions string
	Thumb        string
	fields       map[string]string
}

type searchResponse struct {
	Meals []APIMeal `json:"meals"`
}

func (m *APIMeal) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.fields = make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			m.fields[k] = s
		}
	}
	m.Name = m.fields["strMeal"]
	m.Area = m.fields["strArea"]
	m.Instructions = m.fields["strInstructions"]
	m.Thumb = m.fields["strMealThumb"]
	return nil
}

// Field returns the raw string value for key, or "" when absent or null.
func (m APIMeal) Field(key string) string {
	return m.fields[key]
}

// Meal normalizes the record.
func (m APIMeal) Meal() Meal {
	return Meal{
		Name:         m.Name,
		Region:       m.Area,
		Instructions: m.Instructions,
		ThumbnailURL: m.Thumb,
		Ingredients:  ExtractIngredients(m.fields),
	}
}

// ExtractIngredients reads strIngredient1..20 from fields, keeping non-empty
// values in slot order. Blank values count as empty.
func ExtractIngredients(fields map[string]string) []string {
	out := make([]string, 0, IngredientSlots)
	for i := 1; i <= IngredientSlots; i++ {
		v := strings.TrimSpace(fields["strIngredient"+strconv.Itoa(i)])
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
