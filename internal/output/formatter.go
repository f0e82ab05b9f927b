package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Formatter is the interface for output formatting
type Formatter interface {
	Print(data any) error
	PrintList(items any, columns []Column) error
	PrintError(err error)
	PrintHint(msg string)
	PrintSuccess(msg string)
}

// Column defines a column for table/list output
type Column struct {
	Name  string // Display name
	Key   string // Struct field name or map key
	Width int    // Width for rich mode (0 = auto)
}

// New creates a formatter for the specified mode writing to stdout/stderr
func New(mode string) Formatter {
	return NewWithWriters(mode, os.Stdout, os.Stderr)
}

// NewWithWriters creates a formatter for the specified mode with explicit writers
func NewWithWriters(mode string, out, errOut io.Writer) Formatter {
	switch mode {
	case "json":
		return &jsonFormatter{out: out, errOut: errOut}
	case "rich":
		profile := termenv.ColorProfile()
		return &richFormatter{out: out, errOut: errOut, profile: profile}
	default:
		return &plainFormatter{out: out, errOut: errOut}
	}
}

// jsonFormatter outputs JSON to stdout
type jsonFormatter struct {
	out    io.Writer
	errOut io.Writer
}

func (f *jsonFormatter) Print(data any) error {
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f *jsonFormatter) PrintList(items any, columns []Column) error {
	count := 0
	if v := indirect(reflect.ValueOf(items)); v.Kind() == reflect.Slice {
		count = v.Len()
	}

	envelope := map[string]any{
		"data":  items,
		"count": count,
	}

	return f.Print(envelope)
}

func (f *jsonFormatter) PrintError(err error) {
	enc := json.NewEncoder(f.errOut)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]string{"error": err.Error()})
}

// Hints are for humans; JSON consumers get the error only.
func (f *jsonFormatter) PrintHint(msg string) {}

func (f *jsonFormatter) PrintSuccess(msg string) {
	enc := json.NewEncoder(f.errOut)
	_ = enc.Encode(map[string]string{"status": msg})
}

// plainFormatter outputs tab-separated values
type plainFormatter struct {
	out    io.Writer
	errOut io.Writer
}

func (f *plainFormatter) Print(data any) error {
	v := indirect(reflect.ValueOf(data))

	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			fmt.Fprintf(f.out, "%s\t%v\n", t.Field(i).Name, v.Field(i).Interface())
		}
		return nil
	}

	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *plainFormatter) PrintList(items any, columns []Column) error {
	rows, err := extractRows(items, columns)
	if err != nil {
		return err
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}
	fmt.Fprintf(f.out, "%s\n", strings.Join(headers, "\t"))

	for _, row := range rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = row[col.Key]
		}
		fmt.Fprintf(f.out, "%s\n", strings.Join(values, "\t"))
	}

	return nil
}

func (f *plainFormatter) PrintError(err error) {
	fmt.Fprintf(f.errOut, "error: %v\n", err)
}

func (f *plainFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errOut, "hint: %v\n", msg)
}

func (f *plainFormatter) PrintSuccess(msg string) {
	fmt.Fprintf(f.errOut, "%s\n", msg)
}

// richFormatter outputs styled content for terminal
type richFormatter struct {
	out     io.Writer
	errOut  io.Writer
	profile termenv.Profile
}

func (f *richFormatter) Print(data any) error {
	v := indirect(reflect.ValueOf(data))

	if v.Kind() == reflect.Struct {
		keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
		valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			fmt.Fprintf(f.out, "%s: %s\n",
				keyStyle.Render(t.Field(i).Name),
				valueStyle.Render(fmt.Sprintf("%v", v.Field(i).Interface())),
			)
		}
		return nil
	}

	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *richFormatter) PrintList(items any, columns []Column) error {
	rows, err := extractRows(items, columns)
	if err != nil {
		return err
	}

	RenderTable(f.out, columns, rows)
	return nil
}

func (f *richFormatter) PrintError(err error) {
	errorStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9"))

	fmt.Fprintf(f.errOut, "%s\n", errorStyle.Render("error: "+err.Error()))
}

func (f *richFormatter) PrintHint(msg string) {
	hintStyle := lipgloss.NewStyle().
		Faint(true).
		Foreground(lipgloss.Color("8"))

	fmt.Fprintf(f.errOut, "%s\n", hintStyle.Render("hint: "+msg))
}

func (f *richFormatter) PrintSuccess(msg string) {
	successStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	fmt.Fprintf(f.errOut, "%s\n", successStyle.Render(msg))
}

// extractRows turns a slice of structs or maps into rows keyed by column key
func extractRows(items any, columns []Column) ([]map[string]string, error) {
	v := indirect(reflect.ValueOf(items))
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("PrintList requires a slice")
	}

	rows := make([]map[string]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := indirect(v.Index(i))

		row := make(map[string]string, len(columns))
		for _, col := range columns {
			switch item.Kind() {
			case reflect.Map:
				if mapVal := item.MapIndex(reflect.ValueOf(col.Key)); mapVal.IsValid() {
					row[col.Key] = fmt.Sprintf("%v", mapVal.Interface())
				}
			case reflect.Struct:
				if field := item.FieldByName(col.Key); field.IsValid() {
					row[col.Key] = fmt.Sprintf("%v", field.Interface())
				}
			}
		}
		rows[i] = row
	}
	return rows, nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}
