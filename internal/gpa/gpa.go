// Package gpa computes semester GPA and cumulative CGPA on a 4.0 scale.
package gpa

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinGrade = 0.0
	MaxGrade = 4.0
)

var (
	ErrNoCourses    = errors.New("at least one course is required")
	ErrGradeRange   = errors.New("grade points must be between 0.0 and 4.0")
	ErrCreditHours  = errors.New("credit hours must be greater than 0")
	ErrPriorCredits = errors.New("previous credit hours must be 0 or greater")
	ErrPriorCGPA    = errors.New("previous CGPA must be between 0.0 and 4.0")
	ErrCourseFormat = errors.New("course must be formatted as name:grade:credits")
)

// Course is one graded course of the current semester.
type Course struct {
	Name        string  `json:"name"`
	GradePoints float64 `json:"grade_points"`
	CreditHours int     `json:"credit_hours"`
}

// QualityPoints is the grade weighted by credit hours.
func (c Course) QualityPoints() float64 {
	return c.GradePoints * float64(c.CreditHours)
}

// Validate checks the grade and credit ranges.
func (c Course) Validate() error {
	if err := ValidateGrade(c.GradePoints); err != nil {
		return fmt.Errorf("course %q: %w", c.Name, err)
	}
	if err := ValidateCredits(c.CreditHours); err != nil {
		return fmt.Errorf("course %q: %w", c.Name, err)
	}
	return nil
}

// Prior is the academic record before this semester.
// CGPA is ignored when CreditHours is zero.
type Prior struct {
	CreditHours int     `json:"credit_hours"`
	CGPA        float64 `json:"cgpa"`
}

// Validate checks the prior record ranges.
func (p Prior) Validate() error {
	if p.CreditHours < 0 {
		return ErrPriorCredits
	}
	if p.CreditHours > 0 && (math.IsNaN(p.CGPA) || p.CGPA < MinGrade || p.CGPA > MaxGrade) {
		return ErrPriorCGPA
	}
	return nil
}

// Report is the outcome of a calculation.
type Report struct {
	Courses         []Course `json:"courses"`
	SemesterCredits int      `json:"semester_credits"`
	SemesterPoints  float64  `json:"semester_points"`
	SemesterGPA     float64  `json:"semester_gpa"`
	OverallCredits  int      `json:"overall_credits"`
	OverallPoints   float64  `json:"overall_points"`
	CGPA            float64  `json:"cgpa"`
	Standing        string   `json:"standing"`
}

// Calculate computes the semester GPA and, folding in prior, the overall CGPA.
func Calculate(courses []Course, prior Prior) (Report, error) {
	if len(courses) == 0 {
		return Report{}, ErrNoCourses
	}
	for _, c := range courses {
		if err := c.Validate(); err != nil {
			return Report{}, err
		}
	}
	if err := prior.Validate(); err != nil {
		return Report{}, err
	}

	r := Report{Courses: append([]Course(nil), courses...)}
	for _, c := range courses {
		r.SemesterCredits += c.CreditHours
		r.SemesterPoints += c.QualityPoints()
	}
	r.SemesterGPA = average(r.SemesterPoints, r.SemesterCredits)

	r.OverallCredits = r.SemesterCredits
	r.OverallPoints = r.SemesterPoints
	if prior.CreditHours > 0 {
		r.OverallCredits += prior.CreditHours
		r.OverallPoints += prior.CGPA * float64(prior.CreditHours)
	}
	r.CGPA = average(r.OverallPoints, r.OverallCredits)
	r.Standing = Standing(r.CGPA)

	return r, nil
}

func average(points float64, credits int) float64 {
	if credits <= 0 {
		return 0
	}
	return points / float64(credits)
}

// Standing interprets a CGPA as a performance band.
func Standing(cgpa float64) string {
	switch {
	case cgpa >= 3.7:
		return "Excellent Performance (A-)"
	case cgpa >= 3.3:
		return "Very Good Performance (B+)"
	case cgpa >= 3.0:
		return "Good Performance (B)"
	case cgpa >= 2.7:
		return "Above Average Performance (B-)"
	case cgpa >= 2.0:
		return "Average Performance (C)"
	default:
		return "Below Average Performance"
	}
}

// ValidateGrade checks a grade is on the 4.0 scale.
func ValidateGrade(g float64) error {
	if math.IsNaN(g) || g < MinGrade || g > MaxGrade {
		return ErrGradeRange
	}
	return nil
}

// ValidateCredits checks credit hours are positive.
func ValidateCredits(h int) error {
	if h <= 0 {
		return ErrCreditHours
	}
	return nil
}

// ParseCourse parses "name:grade:credits". The name may itself contain colons;
// the last two fields are always grade and credits.
func ParseCourse(s string) (Course, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return Course{}, fmt.Errorf("%w: %q", ErrCourseFormat, s)
	}
	n := len(parts)
	name := strings.TrimSpace(strings.Join(parts[:n-2], ":"))
	if name == "" {
		return Course{}, fmt.Errorf("%w: %q", ErrCourseFormat, s)
	}

	grade, err := strconv.ParseFloat(strings.TrimSpace(parts[n-2]), 64)
	if err != nil {
		return Course{}, fmt.Errorf("%w: grade %q", ErrCourseFormat, parts[n-2])
	}
	credits, err := strconv.Atoi(strings.TrimSpace(parts[n-1]))
	if err != nil {
		return Course{}, fmt.Errorf("%w: credits %q", ErrCourseFormat, parts[n-1])
	}

	c := Course{Name: name, GradePoints: grade, CreditHours: credits}
	if err := c.Validate(); err != nil {
		return Course{}, err
	}
	return c, nil
}
