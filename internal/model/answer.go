package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAnswer is returned when an answer value is neither text nor a number
var ErrInvalidAnswer = errors.New("answer must be a string or a number")

// AnswerKind tags which variant of Answer is populated
type AnswerKind int

const (
	AnswerFreeText AnswerKind = iota
	AnswerLikert
)

// Answer is either free text or a Likert rating, decided once at the boundary
type Answer struct {
	Kind   AnswerKind
	Text   string
	Rating int
}

// FreeText builds a text answer
func FreeText(s string) Answer {
	return Answer{Kind: AnswerFreeText, Text: s}
}

// Likert builds a rating answer
func Likert(v int) Answer {
	return Answer{Kind: AnswerLikert, Rating: v}
}

// IsLikert reports whether the answer is a rating
func (a Answer) IsLikert() bool {
	return a.Kind == AnswerLikert
}

// InScale reports whether a rating lies in 1..5
func (a Answer) InScale() bool {
	return a.Kind == AnswerLikert && a.Rating >= 1 && a.Rating <= 5
}

// String returns the text form used by keyword scorers
func (a Answer) String() string {
	if a.Kind == AnswerLikert {
		return strconv.Itoa(a.Rating)
	}
	return a.Text
}

// AnswerFromString treats integer strings ("4", " 2 ") as ratings
func AnswerFromString(s string) Answer {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return Likert(v)
	}
	return FreeText(s)
}

// ParseAnswer decodes one JSON answer value
func ParseAnswer(raw json.RawMessage) (Answer, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Answer{}, ErrInvalidAnswer
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Answer{}, err
		}
		return AnswerFromString(s), nil
	case 'n':
		return FreeText(""), nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return Answer{}, ErrInvalidAnswer
	}
	if f != math.Trunc(f) {
		// 3.5 is not a rating, keep it as text so it is skipped by the Likert scorer
		return FreeText(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return Likert(int(f)), nil
}

// AnswerSet maps question text (or an opaque label) to a response
type AnswerSet map[string]Answer

// UnmarshalJSON requires an object and converts every value to an Answer
func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidAnswer
	}
	if raw == nil {
		return ErrInvalidAnswer
	}
	out := make(AnswerSet, len(raw))
	for k, v := range raw {
		a, err := ParseAnswer(v)
		if err != nil {
			return err
		}
		out[k] = a
	}
	*s = out
	return nil
}

// AnswerSetFromStrings converts a plain string map
func AnswerSetFromStrings(m map[string]string) AnswerSet {
	out := make(AnswerSet, len(m))
	for k, v := range m {
		out[k] = AnswerFromString(v)
	}
	return out
}

// Texts returns the free-text answers
func (s AnswerSet) Texts() map[string]string {
	out := make(map[string]string, len(s))
	for k, a := range s {
		if a.Kind == AnswerFreeText {
			out[k] = a.Text
		}
	}
	return out
}

// Ratings returns the Likert answers (out-of-scale values included)
func (s AnswerSet) Ratings() map[string]int {
	out := make(map[string]int, len(s))
	for k, a := range s {
		if a.Kind == AnswerLikert {
			out[k] = a.Rating
		}
	}
	return out
}
