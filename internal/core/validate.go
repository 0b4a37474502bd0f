package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// Validate checks every field of the draft and collects all violations into
// a single ValidationError, so the caller gets complete feedback in one
// pass. It also normalizes the draft: the name is trimmed and an empty
// recurrence defaults to "none".
func (d *Draft) Validate() error {
	fields := map[string]string{}

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		fields["name"] = "name is required"
	} else if utf8.RuneCountInString(d.Name) > maxNameLen {
		fields["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLen)
	}

	if d.Amount <= 0 {
		fields["amount"] = "amount must be a positive number"
	}

	if d.Type == "" {
		fields["type"] = "type is required"
	} else if !d.Type.IsValid() {
		fields["type"] = fmt.Sprintf("type must be %q or %q", TypeIncome, TypeExpense)
	}

	if d.Category == "" {
		fields["category"] = "category is required"
	} else if !d.Category.IsValid() {
		fields["category"] = "unknown category " + string(d.Category)
	}

	if d.Date.IsZero() {
		fields["date"] = "date is required"
	}

	if utf8.RuneCountInString(d.Description) > maxDescriptionLen {
		fields["description"] = fmt.Sprintf("description must be at most %d characters", maxDescriptionLen)
	}

	if d.Recurrence == "" {
		d.Recurrence = RecurrenceNone
	} else if !d.Recurrence.IsValid() {
		fields["recurrence"] = "unknown recurrence " + string(d.Recurrence)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks the fields present in the patch against the same rules
// applied on creation, collecting all violations.
func (p *Patch) Validate() error {
	fields := map[string]string{}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		*p.Name = name
		if name == "" {
			fields["name"] = "name cannot be empty"
		} else if utf8.RuneCountInString(name) > maxNameLen {
			fields["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLen)
		}
	}

	if p.Amount != nil && *p.Amount <= 0 {
		fields["amount"] = "amount must be a positive number"
	}

	if p.Category != nil && !p.Category.IsValid() {
		fields["category"] = "unknown category " + string(*p.Category)
	}

	if p.Date != nil && p.Date.IsZero() {
		fields["date"] = "date cannot be empty"
	}

	if p.Description != nil && utf8.RuneCountInString(*p.Description) > maxDescriptionLen {
		fields["description"] = fmt.Sprintf("description must be at most %d characters", maxDescriptionLen)
	}

	if p.Recurrence != nil && !p.Recurrence.IsValid() {
		fields["recurrence"] = "unknown recurrence " + string(*p.Recurrence)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
