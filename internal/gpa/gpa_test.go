package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	courses := []Course{
		{Name: "Calculus", GradePoints: 4.0, CreditHours: 4},
		{Name: "Physics", GradePoints: 3.0, CreditHours: 3},
		{Name: "History", GradePoints: 2.0, CreditHours: 2},
	}

	t.Run("semester only", func(t *testing.T) {
		r, err := Calculate(courses, Prior{})
		require.NoError(t, err)
		assert.Equal(t, 9, r.SemesterCredits)
		assert.InDelta(t, 29.0, r.SemesterPoints, 1e-9)
		assert.InDelta(t, 29.0/9.0, r.SemesterGPA, 1e-9)
		assert.Equal(t, r.SemesterGPA, r.CGPA)
		assert.Equal(t, 9, r.OverallCredits)
		assert.Equal(t, "Good Performance (B)", r.Standing)
		assert.Len(t, r.Courses, 3)
	})

	t.Run("with prior record", func(t *testing.T) {
		r, err := Calculate(courses, Prior{CreditHours: 30, CGPA: 3.5})
		require.NoError(t, err)
		assert.Equal(t, 39, r.OverallCredits)
		assert.InDelta(t, 29.0+105.0, r.OverallPoints, 1e-9)
		assert.InDelta(t, 134.0/39.0, r.CGPA, 1e-9)
		assert.Equal(t, "Very Good Performance (B+)", r.Standing)
	})

	t.Run("prior cgpa ignored without credits", func(t *testing.T) {
		r, err := Calculate(courses, Prior{CreditHours: 0, CGPA: 9})
		require.NoError(t, err)
		assert.Equal(t, r.SemesterGPA, r.CGPA)
	})
}

func TestCalculateErrors(t *testing.T) {
	valid := []Course{{Name: "Art", GradePoints: 3, CreditHours: 1}}
	tests := []struct {
		name    string
		courses []Course
		prior   Prior
		wantErr error
	}{
		{name: "no courses", courses: nil, wantErr: ErrNoCourses},
		{name: "grade above scale", courses: []Course{{Name: "Art", GradePoints: 4.1, CreditHours: 1}}, wantErr: ErrGradeRange},
		{name: "negative grade", courses: []Course{{Name: "Art", GradePoints: -0.5, CreditHours: 1}}, wantErr: ErrGradeRange},
		{name: "zero credits", courses: []Course{{Name: "Art", GradePoints: 3, CreditHours: 0}}, wantErr: ErrCreditHours},
		{name: "negative prior credits", courses: valid, prior: Prior{CreditHours: -1}, wantErr: ErrPriorCredits},
		{name: "prior cgpa out of range", courses: valid, prior: Prior{CreditHours: 10, CGPA: 4.5}, wantErr: ErrPriorCGPA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.courses, tt.prior)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStanding(t *testing.T) {
	tests := []struct {
		cgpa     float64
		expected string
	}{
		{cgpa: 4.0, expected: "Excellent Performance (A-)"},
		{cgpa: 3.7, expected: "Excellent Performance (A-)"},
		{cgpa: 3.69, expected: "Very Good Performance (B+)"},
		{cgpa: 3.3, expected: "Very Good Performance (B+)"},
		{cgpa: 3.0, expected: "Good Performance (B)"},
		{cgpa: 2.7, expected: "Above Average Performance (B-)"},
		{cgpa: 2.0, expected: "Average Performance (C)"},
		{cgpa: 1.99, expected: "Below Average Performance"},
		{cgpa: 0, expected: "Below Average Performance"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Standing(tt.cgpa), "cgpa %.2f", tt.cgpa)
	}
}

func TestParseCourse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Course
		wantErr  error
	}{
		{name: "simple", input: "Calculus:4.0:4", expected: Course{Name: "Calculus", GradePoints: 4, CreditHours: 4}},
		{name: "spaces trimmed", input: " Data Structures : 3.5 : 3 ", expected: Course{Name: "Data Structures", GradePoints: 3.5, CreditHours: 3}},
		{name: "colon in name", input: "CS 101: Intro:3:2", expected: Course{Name: "CS 101: Intro", GradePoints: 3, CreditHours: 2}},
		{name: "missing field", input: "Calculus:4.0", wantErr: ErrCourseFormat},
		{name: "empty name", input: ":4.0:3", wantErr: ErrCourseFormat},
		{name: "bad grade", input: "Calculus:A:3", wantErr: ErrCourseFormat},
		{name: "bad credits", input: "Calculus:4.0:three", wantErr: ErrCourseFormat},
		{name: "grade out of range", input: "Calculus:5:3", wantErr: ErrGradeRange},
		{name: "zero credits", input: "Calculus:3:0", wantErr: ErrCreditHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCourse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}
