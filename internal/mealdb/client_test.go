package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arrabiataBody = `{"meals":[{
	"idMeal":"52771",
	"strMeal":"Spicy Arrabiata Penne",
	"strArea":"Italian",
	"strInstructions":"Bring a large pot of water to a boil.",
	"strMealThumb":"https://www.themealdb.com/images/media/meals/ustsqw1468250014.jpg",
	"strIngredient1":"penne rigate",
	"strIngredient2":"olive oil",
	"strIngredient3":"",
	"strIngredient4":null,
	"strMeasure1":"1 pound"
},{
	"strMeal":"Second Match",
	"strArea":"Nowhere"
}]}`

func newTestServer(t *testing.T, h http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/json/v1/1/", WithTimeout(2*time.Second)), &calls
}

func TestSearchDecodesMatchesInOrder(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/json/v1/1/search.php", r.URL.Path)
		assert.Equal(t, "Arrabiata", r.URL.Query().Get("s"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(arrabiataBody))
	})

	meals, err := c.Search(context.Background(), "Arrabiata")
	require.NoError(t, err)
	require.Len(t, meals, 2)
	require.Equal(t, int32(1), calls.Load())

	first := meals[0]
	require.Equal(t, "Spicy Arrabiata Penne", first.Name)
	require.Equal(t, "Italian", first.Region)
	require.Equal(t, "Bring a large pot of water to a boil.", first.Instructions)
	require.Equal(t, "https://www.themealdb.com/images/media/meals/ustsqw1468250014.jpg", first.ThumbnailURL)
	require.Equal(t, []string{"penne rigate", "olive oil"}, first.Ingredients)

	require.Equal(t, "Second Match", meals[1].Name)
	require.Empty(t, meals[1].Ingredients)
}

func TestSearchNullMealsIsEmptyNotError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	meals, err := c.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	require.Empty(t, meals)
}

func TestSearchEscapesQuery(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s=Beef+%26+Ale", r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"meals":[]}`))
	})

	meals, err := c.Search(context.Background(), "Beef & Ale")
	require.NoError(t, err)
	require.Empty(t, meals)
}

func TestSearchFailuresWrapErrFetch(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"decode": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		},
		"shape": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meals":"nope"}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestServer(t, h)
			_, err := c.Search(context.Background(), "Arrabiata")
			require.ErrorIs(t, err, ErrFetch)
		})
	}
}

func TestSearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Search(context.Background(), "Arrabiata")
	require.ErrorIs(t, err, ErrFetch)
}

func TestSearchHonoursContextCancel(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Search(ctx, "Arrabiata")
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorIs(t, err, context.Canceled)
}
