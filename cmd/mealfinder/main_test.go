package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/mealfinder/internal/lookup"
	"github.com/jask/mealfinder/internal/mealdb"
)

func fakeAPI(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MEALFINDER_CONFIG", "")
	t.Setenv("MEALFINDER_LOG_PATH", filepath.Join(t.TempDir(), "test.log"))
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunQueryPrintsFirstMatch(t *testing.T) {
	base := fakeAPI(t, `{"meals":[{"strMeal":"Arrabbiata Sauce","strArea":"Italian","strInstructions":"Simmer.","strIngredient1":"Tomato","strIngredient2":"","strIngredient3":"Chilli"},{"strMeal":"Other"}]}`)

	code, out, errOut := runArgs(t, "--api-base-url", base, "-q", "Arrabiata")
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "Arrabbiata Sauce\nItalian\n")
	require.Contains(t, out, "- Tomato")
	require.Contains(t, out, "- Chilli")
	require.Contains(t, out, "Simmer.")
	require.NotContains(t, out, "Other")
}

func TestRunQueryMessages(t *testing.T) {
	empty := fakeAPI(t, `{"meals":null}`)
	code, _, errOut := runArgs(t, "--api-base-url", empty, "-q", "nothing")
	require.Equal(t, 1, code)
	require.Equal(t, lookup.MsgNoMeal+"\n", errOut)

	broken := fakeAPI(t, `not json`)
	code, _, errOut = runArgs(t, "--api-base-url", broken, "-q", "Arrabiata")
	require.Equal(t, 1, code)
	require.Equal(t, lookup.MsgFetchError+"\n", errOut)

	code, _, errOut = runArgs(t, "--api-base-url", empty, "-q", "  ")
	require.Equal(t, 1, code)
	require.Equal(t, lookup.MsgEmptyQuery+"\n", errOut)
}

func TestRunRejectsBadConfig(t *testing.T) {
	code, _, errOut := runArgs(t, "--api-base-url", "not a url", "-q", "x")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "config:")
}

func TestPrintMealColumns(t *testing.T) {
	var buf bytes.Buffer
	printMeal(&buf, mealdb.Meal{Name: "Pie", Ingredients: []string{"Flour", "Butter", "Apple"}}, 2)
	require.Equal(t, "Pie\n\n- Flour                        - Butter\n- Apple\n", buf.String())
}
