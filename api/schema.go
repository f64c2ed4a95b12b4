package api

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Request body schema names.
const (
	schemaRegister          = "register"
	schemaLogin             = "login"
	schemaJobCreate         = "job_create"
	schemaJobUpdate         = "job_update"
	schemaStatus            = "status"
	schemaApplicationCreate = "application_create"
)

const msgInvalidBody = "Invalid request body"

// Validator checks request bodies against the embedded JSON schemas before
// they are decoded.
type Validator struct {
	schemas  map[string]*jsonschema.Schema
	maxBytes int64
}

// NewValidator compiles every embedded schema. maxBytes <= 0 means 1 MiB.
func NewValidator(maxBytes int64) (*Validator, error) {
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}

	files, err := fs.Glob(schemaFS, "schemas/*.json")
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}

	schemas := make(map[string]*jsonschema.Schema, len(files))
	for _, f := range files {
		b, err := schemaFS.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", f, err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", f, err)
		}
		schemas[strings.TrimSuffix(path.Base(f), ".json")] = rs
	}

	return &Validator{schemas: schemas, maxBytes: maxBytes}, nil
}

// Decode reads the request body, validates it against the named schema and
// unmarshals it into dst. Every failure is a validation error.
func (v *Validator) Decode(w http.ResponseWriter, r *http.Request, name string, dst any) error {
	rs, ok := v.schemas[name]
	if !ok {
		return apperr.Internal(fmt.Errorf("unknown schema %q", name))
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, v.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("Request body too large")
		}
		return apperr.Validation(msgInvalidBody)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}

	keyErrs, err := rs.ValidateBytes(r.Context(), body)
	if err != nil {
		return apperr.Validation(msgInvalidBody)
	}
	if len(keyErrs) > 0 {
		var fields apperr.Fields
		for _, ke := range keyErrs {
			field := strings.TrimPrefix(ke.PropertyPath, "/")
			if field == "" {
				field = "body"
			}
			fields.Add(field, ke.Message)
		}
		return fields.Err()
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.Validation(msgInvalidBody)
	}
	return nil
}
