package harness

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError is one violation of the scenario schema.
type SchemaError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateSchema checks raw scenario YAML against the embedded CUE schema
// and returns every violation found. A nil result means the document is
// well-formed; semantic checks happen in LoadScenario.
func ValidateSchema(data []byte) []error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []error{&SchemaError{Message: fmt.Sprintf("failed to parse YAML: %v", err)}}
	}
	if doc == nil {
		return []error{&SchemaError{Message: "scenario is empty"}}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Scenario"))
	if err := schema.Err(); err != nil {
		return []error{fmt.Errorf("compile scenario schema: %w", err)}
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return []error{&SchemaError{Message: err.Error()}}
	}

	err := schema.Unify(value).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs []error
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		errs = append(errs, &SchemaError{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return errs
}
