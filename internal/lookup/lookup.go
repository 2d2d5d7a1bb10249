// Package lookup holds the meal search state: input, current meal, loading
// flag, messages and the recipe overlay. A Lookup is owned by one goroutine
// (the TUI update loop); it does no locking.
package lookup

import (
	"context"
	"errors"
	"strings"

	"github.com/jask/mealfinder/internal/mealdb"
)

// User-facing messages.
const (
	MsgEmptyQuery = "Please write a meal name"
	MsgNoMeal     = "No meal found"
	MsgFetchError = "Error fetching meal data"
)

// ErrEmptyQuery is returned by Search when validation blocks the request.
var ErrEmptyQuery = errors.New("empty meal query")

// ErrNoMeal is returned by Search when the API had no match.
var ErrNoMeal = errors.New("no meal found")

// Phase is what the meal view should show, in render precedence order.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInvalid
	PhaseLoading
	PhaseError
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseInvalid:
		return "invalid"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseResult:
		return "result"
	default:
		return "idle"
	}
}

// Request identifies one accepted search. Only the latest Seq may resolve.
type Request struct {
	Seq   uint64
	Query string
}

type Lookup struct {
	input         string
	meal          *mealdb.Meal
	loading       bool
	validationMsg string
	resultMsg     string
	recipeOpen    bool
	seq           uint64
}

func New() *Lookup {
	return &Lookup{}
}

func (l *Lookup) SetInput(s string) { l.input = s }
func (l *Lookup) Input() string { return l.input }

// Begin validates query and, when accepted, moves into the loading state.
// The caller must issue exactly one request for the returned Request.
func (l *Lookup) Begin(query string) (Request, bool) {
	if strings.TrimSpace(query) == "" {
		l.validationMsg = MsgEmptyQuery
		return Request{}, false
	}
	l.validationMsg = ""
	l.resultMsg = ""
	l.loading = true
	l.seq++
	return Request{Seq: l.seq, Query: query}, true
}

// Resolve applies the outcome of request seq. Outcomes for superseded
// requests are dropped and Resolve reports false.
func (l *Lookup) Resolve(seq uint64, meals []mealdb.Meal, err error) bool {
	if seq != l.seq || !l.loading {
		return false
	}
	l.loading = false
	switch {
	case err != nil:
		l.clearMeal()
		l.resultMsg = MsgFetchError
	case len(meals) == 0:
		l.clearMeal()
		l.resultMsg = MsgNoMeal
	default:
		m := meals[0]
		l.meal = &m
		l.resultMsg = ""
	}
	return true
}

// Search runs Begin, one call to s and Resolve. It returns ErrEmptyQuery,
// the searcher's error, ErrNoMeal, or nil when a meal was stored.
func (l *Lookup) Search(ctx context.Context, s mealdb.Searcher, query string) error {
	req, ok := l.Begin(query)
	if !ok {
		return ErrEmptyQuery
	}
	meals, err := s.Search(ctx, req.Query)
	l.Resolve(req.Seq, meals, err)
	if err != nil {
		return err
	}
	if len(meals) == 0 {
		return ErrNoMeal
	}
	return nil
}

// OpenRecipe shows the instructions overlay. Without a meal it does nothing.
func (l *Lookup) OpenRecipe() {
	if l.meal == nil {
		return
	}
	l.recipeOpen = true
}

func (l *Lookup) CloseRecipe() { l.recipeOpen = false }

// Meal returns the stored meal, or nil.
func (l *Lookup) Meal() *mealdb.Meal { return l.meal }
func (l *Lookup) Loading() bool { return l.loading }
func (l *Lookup) ValidationMsg() string { return l.validationMsg }
func (l *Lookup) ResultMsg() string { return l.resultMsg }
func (l *Lookup) RecipeOpen() bool { return l.recipeOpen }

// Seq is the latest issued request sequence.
func (l *Lookup) Seq() uint64 { return l.seq }

// Phase reports what to render: a validation message blocks everything, then
// the spinner, then the error, then the card.
func (l *Lookup) Phase() Phase {
	switch {
	case l.validationMsg != "":
		return PhaseInvalid
	case l.loading:
		return PhaseLoading
	case l.resultMsg != "":
		return PhaseError
	case l.meal != nil:
		return PhaseResult
	default:
		return PhaseIdle
	}
}

func (l *Lookup) clearMeal() {
	l.meal = nil
	l.recipeOpen = false
}
