// Package types provides type definitions for structured data used throughout the resume-parser system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AIRecord is the structured record returned by the AI extractor. Keys mirror the prompt verbatim.
type AIRecord struct {
	Name           string         `json:"Name"`
	JobRole        string         `json:"Job Role"`
	SocialMedia    StringList     `json:"Social Media"`
	Education      EducationList  `json:"Education Details"`
	TotalYears     Years          `json:"Total Estimated Years of Experience"`
	Experience     ExperienceList `json:"Experience Details"`
	Skills         StringList     `json:"Skills"`
	Certifications StringList     `json:"Certification"`
}

// NewAIRecord returns a record with every field set to the n/a sentinel.
func NewAIRecord() *AIRecord {
	return &AIRecord{
		Name:           NotAvailable,
		JobRole:        NotAvailable,
		SocialMedia:    StringList{NotAvailable},
		TotalYears:     Years{Text: NotAvailable},
		Skills:         StringList{NotAvailable},
		Certifications: StringList{NotAvailable},
	}
}

// UnmarshalJSON decodes the record, leaving absent keys at their n/a defaults.
func (r *AIRecord) UnmarshalJSON(data []byte) error {
	type alias AIRecord
	rec := alias(*NewAIRecord())
	aux := struct {
		*alias
		Name    json.RawMessage `json:"Name"`
		JobRole json.RawMessage `json:"Job Role"`
	}{alias: &rec}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = AIRecord(rec)
	r.Name = scalarText(aux.Name)
	r.JobRole = scalarText(aux.JobRole)
	return nil
}

// scalarText reads a JSON string or number. Absent, null, blank or other values yield n/a.
func scalarText(data json.RawMessage) string {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if len(bytes.TrimSpace(data)) == 0 || dec.Decode(&v) != nil {
		return NotAvailable
	}
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case json.Number:
		s = t.String()
	}
	if s == "" {
		return NotAvailable
	}
	return s
}

// ToResumeRecord converts the AI output into a ResumeRecord ready for resolution.
func (r *AIRecord) ToResumeRecord(rawText string) *ResumeRecord {
	return &ResumeRecord{
		Name:                 strings.TrimSpace(r.Name),
		JobRole:              strings.TrimSpace(r.JobRole),
		SocialMedia:          append([]string(nil), r.SocialMedia...),
		Education:            append([]Education(nil), r.Education...),
		TotalExperienceYears: r.TotalYears,
		Experience:           append([]Experience(nil), r.Experience...),
		Skills:               append([]string(nil), r.Skills...),
		Certifications:       append([]string(nil), r.Certifications...),
		RawText:              rawText,
	}
}

// StringList decodes from a JSON array, a single string, or an object of strings.
// Nested values are flattened and numbers are kept in their textual form.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	var out []string
	flattenStrings(v, &out)
	*l = out
	return nil
}

func flattenStrings(v any, out *[]string) {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			*out = append(*out, s)
		}
	case json.Number:
		*out = append(*out, t.String())
	case bool:
		*out = append(*out, strconv.FormatBool(t))
	case []any:
		for _, item := range t {
			flattenStrings(item, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenStrings(t[k], out)
		}
	}
}

// EducationList decodes the "Education Details" field. A bare string such as "n/a" yields an empty
// list, and a string item such as "BSc Computer Science, MIT" becomes an entry with only Level set.
type EducationList []Education

// UnmarshalJSON implements json.Unmarshaler.
func (l *EducationList) UnmarshalJSON(data []byte) error {
	items, err := listItems(data)
	if err != nil || items == nil {
		*l = nil
		return err
	}
	out := make([]Education, 0, len(items))
	for _, item := range items {
		if text, ok := itemText(item); ok {
			if !IsPlaceholder(text) {
				out = append(out, Education{
					Level:         text,
					FieldOfStudy:  NotAvailable,
					Institution:   NotAvailable,
					Grade:         NotAvailable,
					DateCompleted: NotAvailable,
				})
			}
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(item, &m); err != nil {
			return fmt.Errorf("invalid education entry: %w", err)
		}
		if m == nil {
			continue
		}
		out = append(out, Education{
			Level:         lookupString(m, "education level", "level"),
			FieldOfStudy:  lookupString(m, "field of study", "field_of_study"),
			Institution:   lookupString(m, "institution"),
			Grade:         lookupString(m, "grade level", "grade"),
			DateCompleted: lookupString(m, "date completed", "date_completed"),
		})
	}
	*l = out
	return nil
}

// ExperienceList decodes the "Experience Details" field. A bare string such as "n/a" yields an
// empty list, and a string item such as "Google - Software Engineer" becomes an entry whose
// Organization is that text.
type ExperienceList []Experience

// UnmarshalJSON implements json.Unmarshaler.
func (l *ExperienceList) UnmarshalJSON(data []byte) error {
	items, err := listItems(data)
	if err != nil || items == nil {
		*l = nil
		return err
	}
	out := make([]Experience, 0, len(items))
	for _, item := range items {
		if text, ok := itemText(item); ok {
			if !IsPlaceholder(text) {
				out = append(out, Experience{Organization: text, Roles: []string{}})
			}
			continue
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(item, &m); err != nil {
			return fmt.Errorf("invalid experience entry: %w", err)
		}
		if m == nil {
			continue
		}
		exp := Experience{}
		for k, v := range m {
			switch strings.ToLower(k) {
			case "industry name", "organization", "company":
				exp.Organization = scalarText(v)
			case "roles", "role":
				var roles StringList
				if err := json.Unmarshal(v, &roles); err != nil {
					return fmt.Errorf("invalid roles: %w", err)
				}
				exp.Roles = roles
			}
		}
		if IsPlaceholder(exp.Organization) {
			exp.Organization = NotAvailable
		}
		out = append(out, exp)
	}
	*l = out
	return nil
}

// listItems splits a JSON array into its items. Scalars such as "n/a" or null yield no items.
func listItems(data []byte) ([]json.RawMessage, error) {
	if isJSONScalar(data) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// itemText reports whether item is a JSON string or number and returns its trimmed text.
func itemText(item json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || (trimmed[0] != '"' && trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return "", false
	}
	return scalarText(trimmed), true
}

// Years holds the total years of experience, either as a number or as a string sentinel.
type Years struct {
	Value *float64
	Text  string
}

// YearsOf returns a numeric Years value.
func YearsOf(v float64) Years {
	return Years{Value: &v}
}

// IsSet reports whether the value is numeric.
func (y Years) IsSet() bool {
	return y.Value != nil
}

// String returns the numeric value or the sentinel text.
func (y Years) String() string {
	if y.Value != nil {
		return strconv.FormatFloat(*y.Value, 'f', -1, 64)
	}
	if y.Text == "" {
		return NotAvailable
	}
	return y.Text
}

// MarshalJSON implements json.Marshaler.
func (y Years) MarshalJSON() ([]byte, error) {
	if y.Value != nil {
		return json.Marshal(*y.Value)
	}
	return json.Marshal(y.String())
}

// UnmarshalJSON implements json.Unmarshaler. Numeric strings such as "4.5" are read as numbers.
func (y *Years) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*y = Years{Text: NotAvailable}
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err == nil {
		*y = YearsOf(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("years must be a number or string: %w", err)
	}
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*y = YearsOf(f)
		return nil
	}
	if s == "" {
		s = NotAvailable
	}
	*y = Years{Text: s}
	return nil
}

func isJSONScalar(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	switch trimmed[0] {
	case '"', 'n', 't', 'f':
		return true
	}
	return false
}

func lookupString(m map[string]any, keys ...string) string {
	for k, v := range m {
		for _, want := range keys {
			if strings.EqualFold(k, want) {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
				if v != nil {
					if f, ok := v.(float64); ok {
						return strconv.FormatFloat(f, 'f', -1, 64)
					}
				}
			}
		}
	}
	return NotAvailable
}
