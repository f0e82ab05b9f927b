package cli

import (
	"errors"
	"fmt"

	"github.com/semmy-space/coda/internal/gpa"
	"github.com/semmy-space/coda/internal/output"
)

// GPACmd implements the gpa command
type GPACmd struct {
	Course       []string `help:"Course as Name:grade:credits (repeatable; prompts when omitted)" short:"c" sep:"none"`
	PriorCredits int      `help:"Credit hours completed before this semester" name:"prior-credits"`
	PriorCGPA    float64  `help:"CGPA over the prior credit hours" name:"prior-cgpa"`
}

type courseRow struct {
	Name          string
	GradePoints   string
	CreditHours   int
	QualityPoints string
}

type gpaSummary struct {
	SemesterGPA     string
	SemesterCredits int
	CGPA            string
	OverallCredits  int
	Standing        string
}

// Run executes the gpa command
func (cmd *GPACmd) Run(con *Console, fp *FormatterProvider) error {
	var (
		courses []gpa.Course
		prior   gpa.Prior
		err     error
	)
	if len(cmd.Course) > 0 {
		courses, prior, err = cmd.fromFlags()
	} else {
		courses, prior, err = promptCourses(con)
	}
	if err != nil {
		return err
	}

	report, err := gpa.Calculate(courses, prior)
	if err != nil {
		return output.Wrap(output.ExitUsage, err.Error(), err)
	}
	return printReport(fp, report)
}

func (cmd *GPACmd) fromFlags() ([]gpa.Course, gpa.Prior, error) {
	courses := make([]gpa.Course, 0, len(cmd.Course))
	for _, raw := range cmd.Course {
		c, err := gpa.ParseCourse(raw)
		if err != nil {
			return nil, gpa.Prior{}, output.Wrap(output.ExitUsage, err.Error(), err).
				WithHint(`Use --course "Name:grade:credits", e.g. --course "Calculus:3.7:4"`)
		}
		courses = append(courses, c)
	}
	return courses, gpa.Prior{CreditHours: cmd.PriorCredits, CGPA: cmd.PriorCGPA}, nil
}

// promptCourses asks for every course and the optional prior record, re-prompting out-of-range values.
func promptCourses(con *Console) ([]gpa.Course, gpa.Prior, error) {
	n, err := con.PromptInt("Enter the number of courses taken this semester: ", func(n int) error {
		if n <= 0 {
			return errors.New("please enter a valid number of courses (greater than 0)")
		}
		return nil
	})
	if err != nil {
		return nil, gpa.Prior{}, inputError(err)
	}

	con.Printf("\nEnter course details:\n")
	con.Printf("Note: Grade should be on a 4.0 scale (e.g., 4.0 for A, 3.0 for B, etc.)\n\n")

	courses := make([]gpa.Course, 0, n)
	for i := 1; i <= n; i++ {
		con.Printf("Course %d:\n", i)
		name, err := con.Prompt("  Course Name: ")
		if err != nil {
			return nil, gpa.Prior{}, inputError(err)
		}
		if name == "" {
			name = fmt.Sprintf("Course %d", i)
		}
		grade, err := con.PromptFloat("  Grade Points (0.0 - 4.0): ", gpa.ValidateGrade)
		if err != nil {
			return nil, gpa.Prior{}, inputError(err)
		}
		credits, err := con.PromptInt("  Credit Hours: ", gpa.ValidateCredits)
		if err != nil {
			return nil, gpa.Prior{}, inputError(err)
		}
		courses = append(courses, gpa.Course{Name: name, GradePoints: grade, CreditHours: credits})
		con.Printf("\n")
	}

	var prior gpa.Prior
	has, err := con.Confirm("Do you have previous academic record? (y/n): ")
	if err != nil {
		return nil, gpa.Prior{}, inputError(err)
	}
	if !has {
		return courses, prior, nil
	}

	prior.CreditHours, err = con.PromptInt("Enter total credit hours from previous semesters: ", func(h int) error {
		if h < 0 {
			return gpa.ErrPriorCredits
		}
		return nil
	})
	if err != nil {
		return nil, gpa.Prior{}, inputError(err)
	}
	if prior.CreditHours > 0 {
		prior.CGPA, err = con.PromptFloat("Enter your previous CGPA (0.0 - 4.0): ", func(g float64) error {
			if gpa.ValidateGrade(g) != nil {
				return gpa.ErrPriorCGPA
			}
			return nil
		})
		if err != nil {
			return nil, gpa.Prior{}, inputError(err)
		}
	}
	return courses, prior, nil
}

// printReport emits the whole report as one JSON document, or a course table
// followed by the summary for humans.
func printReport(fp *FormatterProvider, report gpa.Report) error {
	if fp.Mode == "json" {
		return fp.Formatter.Print(report)
	}

	rows := make([]courseRow, len(report.Courses))
	for i, c := range report.Courses {
		rows[i] = courseRow{
			Name:          c.Name,
			GradePoints:   fmt.Sprintf("%.2f", c.GradePoints),
			CreditHours:   c.CreditHours,
			QualityPoints: fmt.Sprintf("%.2f", c.QualityPoints()),
		}
	}
	cols := []output.Column{
		{Name: "Course Name", Key: "Name", Width: 30},
		{Name: "Grade", Key: "GradePoints"},
		{Name: "Credits", Key: "CreditHours"},
		{Name: "Quality Points", Key: "QualityPoints"},
	}
	if err := fp.Formatter.PrintList(rows, cols); err != nil {
		return err
	}

	return fp.Formatter.Print(gpaSummary{
		SemesterGPA:     fmt.Sprintf("%.3f", report.SemesterGPA),
		SemesterCredits: report.SemesterCredits,
		CGPA:            fmt.Sprintf("%.3f", report.CGPA),
		OverallCredits:  report.OverallCredits,
		Standing:        report.Standing,
	})
}
