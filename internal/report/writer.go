package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// Format is a report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatCSV
}

// JSONEntry represents a report entry in JSON format.
type JSONEntry struct {
	// Reason is the reason the unit will not run, if any.
	Reason *string `json:"Reason,omitempty" jsonschema:"enum=validation"`
	// Name is the fully-qualified name of the unit.
	Name string `json:"Name" jsonschema:"required"`
	// Path is the artifact the unit was loaded from.
	Path string `json:"Path" jsonschema:"required"`
	// Origin is the ID of the resolver that loaded the unit.
	Origin string `json:"Origin,omitempty"`
	// Result tells whether the unit will run.
	Result string `json:"Result" jsonschema:"required,enum=accepted,enum=skipped"`
	// Position is the 1-based run position of an accepted unit.
	Position int `json:"Position,omitempty" jsonschema:"minimum=1"`
}

// Write writes the report in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatCSV:
		return r.WriteCSV(w)
	}

	return errors.Errorf("unsupported report format %q", format)
}

// WriteToFile writes the report to path, in the format given by its extension.
func (r *Report) WriteToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.New(err)
	}

	if err := r.Write(file, FormatFromPath(path)); err != nil {
		file.Close() //nolint:errcheck
		return err
	}

	return errors.New(file.Close())
}

// WriteCSV writes the report to a writer in CSV format.
func (r *Report) WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write([]string{"Name", "Path", "Origin", "Result", "Reason", "Position"}); err != nil {
		return errors.New(err)
	}

	for _, entry := range r.entries {
		reason := ""
		if entry.Reason != nil {
			reason = string(*entry.Reason)
		}

		position := ""
		if entry.Position > 0 {
			position = strconv.Itoa(entry.Position)
		}

		if err := csvWriter.Write([]string{
			entry.Name,
			entry.Path,
			entry.Origin,
			string(entry.Result),
			reason,
			position,
		}); err != nil {
			return errors.New(err)
		}
	}

	csvWriter.Flush()

	return errors.New(csvWriter.Error())
}

// WriteJSON writes the report to a writer as a JSON array.
func (r *Report) WriteJSON(w io.Writer) error {
	entries := make([]JSONEntry, 0, len(r.entries))

	for _, entry := range r.entries {
		jsonEntry := JSONEntry{
			Name:     entry.Name,
			Path:     entry.Path,
			Origin:   entry.Origin,
			Result:   string(entry.Result),
			Position: entry.Position,
		}

		if entry.Reason != nil {
			reason := string(*entry.Reason)
			jsonEntry.Reason = &reason
		}

		entries = append(entries, jsonEntry)
	}

	jsonBytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.New(err)
	}

	jsonBytes = append(jsonBytes, '\n')

	_, err = w.Write(jsonBytes)

	return errors.New(err)
}

// WriteSchema writes the JSON schema of the JSON report format.
func WriteSchema(w io.Writer) error {
	jsonBytes, err := schemaBytes()
	if err != nil {
		return err
	}

	_, err = w.Write(append(jsonBytes, '\n'))

	return errors.New(err)
}

// WriteSchemaToFile writes the JSON schema to path.
func WriteSchemaToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.New(err)
	}

	if err := WriteSchema(file); err != nil {
		file.Close() //nolint:errcheck
		return err
	}

	return errors.New(file.Close())
}

// ValidateJSON checks a JSON report against the schema. All violations are returned together.
func ValidateJSON(data []byte) error {
	schema, err := schemaBytes()
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.New(err)
	}

	if result.Valid() {
		return nil
	}

	var errs *errors.MultiError

	for _, desc := range result.Errors() {
		errs = errs.Append(fmt.Errorf("%s: %s", desc.Field(), desc.Description()))
	}

	return errs.ErrorOrNil()
}

func schemaBytes() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(generateReportSchema(), "", "  ")
	if err != nil {
		return nil, errors.New(err)
	}

	return jsonBytes, nil
}

// generateReportSchema generates the JSON schema for report validation.
func generateReportSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	schema := reflector.Reflect(&JSONEntry{})
	schema.Description = "A test unit found by a discovery pass"
	schema.Title = "Testgrunt Discovery Report Entry"

	return &jsonschema.Schema{
		Type:        "array",
		Title:       "Testgrunt Discovery Report Schema",
		Description: "Array of test units found by a discovery pass",
		Items:       schema,
	}
}
