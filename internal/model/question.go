package model

import (
	"fmt"
	"strings"
)

// Axis is one of the four bipolar MBTI dimensions
type Axis string

const (
	AxisEI Axis = "EI"
	AxisSN Axis = "SN"
	AxisTF Axis = "TF"
	AxisJP Axis = "JP"
)

// Axes lists the axes in resolution order
var Axes = [4]Axis{AxisEI, AxisSN, AxisTF, AxisJP}

// Pole is one side of an axis
type Pole int

const (
	PoleFirst  Pole = iota // E, S, T, J
	PoleSecond             // I, N, F, P
)

// Opposite returns the other pole of the same axis
func (p Pole) Opposite() Pole {
	if p == PoleFirst {
		return PoleSecond
	}
	return PoleFirst
}

// Letters returns the two pole letters of the axis, first pole first
func (a Axis) Letters() (byte, byte) {
	return a[0], a[1]
}

// Letter returns the letter for a pole of this axis
func (a Axis) Letter(p Pole) byte {
	if p == PoleFirst {
		return a[0]
	}
	return a[1]
}

// Index returns the position of the axis in resolution order, or -1
func (a Axis) Index() int {
	for i, ax := range Axes {
		if ax == a {
			return i
		}
	}
	return -1
}

// ParseAxis accepts "EI", "ei", "E/I"
func ParseAxis(s string) (Axis, error) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "/", ""))
	for _, ax := range Axes {
		if string(ax) == s {
			return ax, nil
		}
	}
	return "", fmt.Errorf("unknown axis %q", s)
}

// AxisForLetter finds the axis and pole a single letter belongs to
func AxisForLetter(letter byte) (Axis, Pole, bool) {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	for _, ax := range Axes {
		if ax[0] == letter {
			return ax, PoleFirst, true
		}
		if ax[1] == letter {
			return ax, PoleSecond, true
		}
	}
	return "", 0, false
}

// Question is one statement of a question bank, pre-assigned to a pole
type Question struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Axis  Axis   `json:"axis"`
	Pole  Pole   `json:"-"`
}

// PoleLetter is the letter that gains when the respondent agrees
func (q Question) PoleLetter() string {
	return string(q.Axis.Letter(q.Pole))
}

// LikertScale describes the 1-5 agreement scale shown with bank questions
type LikertScale struct {
	Min    int      `json:"min"`
	Max    int      `json:"max"`
	Labels []string `json:"labels"`
}

// DefaultLikertScale is Strongly Disagree .. Strongly Agree
var DefaultLikertScale = LikertScale{
	Min:    1,
	Max:    5,
	Labels: []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"},
}

// GeneralQuestion is a bank item as served to clients
type GeneralQuestion struct {
	Question string      `json:"question"`
	Axis     Axis        `json:"axis"`
	Side     string      `json:"side"`
	Scale    LikertScale `json:"scale"`
}

// Statement is a generated Agree/Disagree item
type Statement struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AgreeDisagree are the options attached to generated statements
var AgreeDisagree = []string{"Agree", "Disagree"}
