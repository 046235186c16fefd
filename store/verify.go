package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/josephgoksu/tasks/models"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
)

//go:embed schema/tasks.schema.json
var taskSchemaJSON string

const taskSchemaURL = "tasks.schema.json"

// Checksum states reported by Verify.
const (
	ChecksumOK       = "ok"
	ChecksumMissing  = "missing"
	ChecksumMismatch = "mismatch"
)

var compileTaskSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load task schema: %w", err)
	}
	return compiler.Compile(taskSchemaURL)
})

// Report is the outcome of Verify.
type Report struct {
	DataFile  string   `json:"data_file"`
	Exists    bool     `json:"exists"`
	TaskCount int      `json:"task_count"`
	Checksum  string   `json:"checksum"`
	Problems  []string `json:"problems,omitempty"`
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0 && r.Checksum != ChecksumMismatch
}

// Verify inspects the data file without loading it into the store.
// Problems with the file are reported, not returned; the error is reserved
// for failures to perform the check itself.
func (s *FileTaskStore) Verify() (Report, error) {
	unlock, err := s.lock()
	if err != nil {
		return Report{}, err
	}
	defer unlock()

	report := Report{DataFile: s.filePath, Checksum: ChecksumMissing}

	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, nil
		}
		return Report{}, fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}
	report.Exists = true

	expected, err := afero.ReadFile(s.fs, s.filePath+checksumSuffix)
	switch {
	case err == nil:
		if calculateChecksum(data) == strings.TrimSpace(string(expected)) {
			report.Checksum = ChecksumOK
		} else {
			report.Checksum = ChecksumMismatch
			report.Problems = append(report.Problems, "checksum does not match the data file")
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Report{}, fmt.Errorf("failed to read checksum file: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return report, nil
	}

	records, err := decodeTasks(s.format, data)
	if err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report, nil
	}
	report.TaskCount = len(records)

	problems, err := schemaProblems(records)
	if err != nil {
		return Report{}, err
	}
	report.Problems = append(report.Problems, problems...)
	report.Problems = append(report.Problems, duplicateIDs(records)...)
	return report, nil
}

// schemaProblems validates decoded records against the embedded task schema.
func schemaProblems(records []map[string]any) ([]string, error) {
	schema, err := compileTaskSchema()
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so YAML and TOML numbers become JSON numbers.
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks for validation: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}, nil
	}
	var problems []string
	collectSchemaErrors(ve, &problems)
	return problems, nil
}

func collectSchemaErrors(err *jsonschema.ValidationError, problems *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*problems = append(*problems, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, problems)
	}
}

func duplicateIDs(records []map[string]any) []string {
	counts := map[string]int{}
	for _, r := range records {
		if id, ok := r[models.KeyID]; ok && id != nil {
			counts[fmt.Sprint(id)]++
		}
	}
	var problems []string
	for id, n := range counts {
		if n > 1 {
			problems = append(problems, fmt.Sprintf("id %s is used by %d tasks", id, n))
		}
	}
	sort.Strings(problems)
	return problems
}
