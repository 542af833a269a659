package model

import (
	"fmt"
	"strings"
)

// Canonical field names. These are the CSV header columns, the JSON keys the
// remote API speaks, and the accepted sort keys — the same strings everywhere.
const (
	FieldProvince = "Provincia"
	FieldName     = "Colegio"
	FieldStudents = "Cantidad de Estudiantes"
	FieldFounded  = "Año de Creación"
)

// Fields lists the four data columns in persisted order.
func Fields() []string {
	return []string{FieldProvince, FieldName, FieldStudents, FieldFounded}
}

const (
	MinFoundedYear = 1800
	MaxFoundedYear = 2100
)

// School is one school record. ID is assigned by the remote API and is zero
// for local-only records.
type School struct {
	ID       int64  `json:"id,omitempty"`
	Province string `json:"Provincia"`
	Name     string `json:"Colegio"`
	Students int    `json:"Cantidad de Estudiantes"`
	Founded  int    `json:"Año de Creación"`
}

// Changes is a partial update: nil fields are left untouched. It doubles as
// the PATCH request body.
type Changes struct {
	Province *string `json:"Provincia,omitempty"`
	Name     *string `json:"Colegio,omitempty"`
	Students *int    `json:"Cantidad de Estudiantes,omitempty"`
	Founded  *int    `json:"Año de Creación,omitempty"`
}

// Empty reports whether the change set touches nothing.
func (c Changes) Empty() bool {
	return c.Province == nil && c.Name == nil && c.Students == nil && c.Founded == nil
}

// Apply returns a copy of s with the non-nil changes applied.
func (c Changes) Apply(s School) School {
	if c.Province != nil {
		s.Province = *c.Province
	}
	if c.Name != nil {
		s.Name = *c.Name
	}
	if c.Students != nil {
		s.Students = *c.Students
	}
	if c.Founded != nil {
		s.Founded = *c.Founded
	}
	return s
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the record against the creation/edit rules. Founded == 0
// means "unknown year" and is accepted; any other value must fall inside the
// plausible range.
func (s School) Validate() error {
	if strings.TrimSpace(s.Province) == "" {
		return &ValidationError{Field: FieldProvince, Reason: "required"}
	}
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: FieldName, Reason: "required"}
	}
	if s.Students < 0 {
		return &ValidationError{Field: FieldStudents, Reason: "must not be negative"}
	}
	if s.Founded != 0 && (s.Founded < MinFoundedYear || s.Founded > MaxFoundedYear) {
		return &ValidationError{
			Field:  FieldFounded,
			Reason: fmt.Sprintf("must be between %d and %d", MinFoundedYear, MaxFoundedYear),
		}
	}
	return nil
}

// Validate checks a change set with the same rules as School.Validate,
// treating explicitly-set empty strings as invalid.
func (c Changes) Validate() error {
	if c.Province != nil && strings.TrimSpace(*c.Province) == "" {
		return &ValidationError{Field: FieldProvince, Reason: "must not be blank"}
	}
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return &ValidationError{Field: FieldName, Reason: "must not be blank"}
	}
	if c.Students != nil && *c.Students < 0 {
		return &ValidationError{Field: FieldStudents, Reason: "must not be negative"}
	}
	if c.Founded != nil && *c.Founded != 0 && (*c.Founded < MinFoundedYear || *c.Founded > MaxFoundedYear) {
		return &ValidationError{
			Field:  FieldFounded,
			Reason: fmt.Sprintf("must be between %d and %d", MinFoundedYear, MaxFoundedYear),
		}
	}
	return nil
}
