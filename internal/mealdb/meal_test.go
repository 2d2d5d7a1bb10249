package mealdb

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractIngredientsKeepsSlotOrder(t *testing.T) {
	got := ExtractIngredients(map[string]string{
		"strIngredient1": "Egg",
		"strIngredient2": "",
		"strIngredient3": "Milk",
	})
	require.Equal(t, []string{"Egg", "Milk"}, got)
}

func TestExtractIngredientsIgnoresOtherKeysAndBlankSlots(t *testing.T) {
	got := ExtractIngredients(map[string]string{
		"strIngredient10": "Salt",
		"strIngredient2":  "   ",
		"strIngredient1":  "Flour",
		"strIngredient21": "Out of range",
		"strMeasure1":     "1 cup",
	})
	require.Equal(t, []string{"Flour", "Salt"}, got)
}

func TestExtractIngredientsAllTwentySlots(t *testing.T) {
	fields := map[string]string{}
	want := make([]string, 0, IngredientSlots)
	for i := 1; i <= IngredientSlots; i++ {
		v := string(rune('a' + i - 1))
		fields["strIngredient"+strconv.Itoa(i)] = v
		want = append(want, v)
	}
	require.Equal(t, want, ExtractIngredients(fields))
}

func TestAPIMealUnmarshalToleratesNulls(t *testing.T) {
	var m APIMeal
	err := json.Unmarshal([]byte(`{
		"strMeal":"Arrabbiata Sauce",
		"strArea":null,
		"strInstructions":"Simmer.",
		"strMealThumb":null,
		"strIngredient1":"Tomato",
		"strIngredient2":null,
		"strIngredient3":"Chilli",
		"idMeal":52771
	}`), &m)
	require.NoError(t, err)

	meal := m.Meal()
	require.Equal(t, "Arrabbiata Sauce", meal.Name)
	require.Empty(t, meal.Region)
	require.Empty(t, meal.ThumbnailURL)
	require.Equal(t, "Simmer.", meal.Instructions)
	require.Equal(t, []string{"Tomato", "Chilli"}, meal.Ingredients)
	require.Empty(t, m.Field("idMeal"))
}
