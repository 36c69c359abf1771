// Package quiz grades answers to a section's check-your-understanding quiz.
package quiz

import (
	"errors"
	"fmt"

	"github.com/abhisek/courseway/internal/catalog"
)

var (
	ErrNoSelection = errors.New("no option selected")
	ErrSubmitted   = errors.New("answer already submitted")
	ErrOutOfRange  = errors.New("option out of range")
)

// Result is the outcome of a submitted answer.
type Result struct {
	Correct      bool
	ChosenIndex  int
	CorrectIndex int
	Explanation  string
}

// Attempt is one pass at answering a quiz. The zero selection is "none";
// an attempt can be reset and tried again any number of times.
type Attempt struct {
	quiz      catalog.Quiz
	selected  int
	submitted bool
}

// NewAttempt starts an attempt with nothing selected.
func NewAttempt(q catalog.Quiz) *Attempt {
	return &Attempt{quiz: q, selected: -1}
}

// Quiz returns the quiz being attempted.
func (a *Attempt) Quiz() catalog.Quiz {
	return a.quiz
}

// Select chooses option i. Selection is locked once submitted.
func (a *Attempt) Select(i int) error {
	if a.submitted {
		return ErrSubmitted
	}
	if i < 0 || i >= len(a.quiz.Options) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(a.quiz.Options))
	}
	a.selected = i
	return nil
}

// Selected returns the chosen option, or -1.
func (a *Attempt) Selected() int {
	return a.selected
}

// Submitted reports whether the answer has been checked.
func (a *Attempt) Submitted() bool {
	return a.submitted
}

// Submit checks the selected option.
func (a *Attempt) Submit() (Result, error) {
	if a.submitted {
		return a.result(), ErrSubmitted
	}
	if a.selected < 0 {
		return Result{}, ErrNoSelection
	}
	a.submitted = true
	return a.result(), nil
}

// Result returns the outcome of a submitted attempt.
func (a *Attempt) Result() (Result, bool) {
	if !a.submitted {
		return Result{}, false
	}
	return a.result(), true
}

func (a *Attempt) result() Result {
	return Result{
		Correct:      a.selected == a.quiz.CorrectIndex,
		ChosenIndex:  a.selected,
		CorrectIndex: a.quiz.CorrectIndex,
		Explanation:  a.quiz.Explanation,
	}
}

// Reset clears the selection for another try.
func (a *Attempt) Reset() {
	a.selected = -1
	a.submitted = false
}

// OptionLabel returns the letter shown beside option i: A, B, C...
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
