// Package timetable models the student timetable viewer. The selected
// semester travels in the route and every togglable block is an entry in
// ViewState; the display layer derives visibility from it.
package timetable

import (
	"errors"
	"strings"
)

// StartAnewMessage is shown when the page is opened without a usable semester.
const StartAnewMessage = "Please go back and start anew"

var (
	ErrUnknownSemester = errors.New("unknown semester")
	ErrUnknownSection  = errors.New("unknown section")
)

type Semester string

const (
	First  Semester = "first"
	Second Semester = "second"
	Third  Semester = "third"
)

var Semesters = []Semester{First, Second, Third}

// ParseSemester accepts the canonical names plus the legacy codes used by the
// old pages: f/s/t and i/ii/iii.
func ParseSemester(v string) (Semester, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "first", "f", "i", "1":
		return First, nil
	case "second", "s", "ii", "2":
		return Second, nil
	case "third", "t", "iii", "3":
		return Third, nil
	}
	return "", ErrUnknownSemester
}

type Section string

const (
	SectionDropdown   Section = "dropdown"
	SectionTimetable  Section = "timetable"
	SectionAttendance Section = "attendance"
	SectionAssessment Section = "internal_assessment"
)

// Popups are the sections a visitor opens and closes explicitly.
var Popups = []Section{SectionAttendance, SectionAssessment}

func ParsePopup(v string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(v)))
	for _, p := range Popups {
		if s == p {
			return s, nil
		}
	}
	return "", ErrUnknownSection
}

// ViewState is the per-semester timetable page.
type ViewState struct {
	Semester Semester         `json:"semester"`
	Sections map[Section]bool `json:"sections"`
}

// NewViewState shows the semester's dropdown and timetable and any requested
// popups; every other section is hidden.
func NewViewState(sem Semester, open ...Section) ViewState {
	v := ViewState{
		Semester: sem,
		Sections: map[Section]bool{
			SectionDropdown:   true,
			SectionTimetable:  true,
			SectionAttendance: false,
			SectionAssessment: false,
		},
	}
	for _, p := range open {
		if _, ok := v.Sections[p]; ok {
			v.Sections[p] = true
		}
	}
	return v
}

// Open returns a copy with popup p visible.
func (v ViewState) Open(p Section) ViewState { return v.with(p, true) }

// Close returns a copy with popup p hidden.
func (v ViewState) Close(p Section) ViewState { return v.with(p, false) }

func (v ViewState) with(p Section, visible bool) ViewState {
	out := ViewState{Semester: v.Semester, Sections: make(map[Section]bool, len(v.Sections))}
	for k, val := range v.Sections {
		out.Sections[k] = val
	}
	if p == SectionAttendance || p == SectionAssessment {
		out.Sections[p] = visible
	}
	return out
}

// Preview is the chooser-page popup for a semester. Only semesters with a
// published timetable show one.
type Preview struct {
	Semester  Semester `json:"semester"`
	Available bool     `json:"available"`
	Message   string   `json:"message,omitempty"`
}

var published = map[Semester]bool{First: true, Third: true}

func PreviewFor(sem Semester) Preview {
	if published[sem] {
		return Preview{Semester: sem, Available: true}
	}
	return Preview{Semester: sem, Message: "Timetable for the " + string(sem) + " semester is not published yet."}
}
