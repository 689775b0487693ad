package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-parser/internal/types"
)

func TestPrintResumeRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeRecord(&types.ResumeRecord{
		Name:                 "Jane Doe",
		JobRole:              "Data Scientist",
		ExperienceLevel:      "Senior",
		TotalExperienceYears: types.YearsOf(7.5),
		Email:                "jane@x.com",
		Skills:               []string{"python", "sql", "pandas", "spark", "airflow", "dbt", "looker"},
		Education:            []types.Education{{Level: "MSc", FieldOfStudy: "Statistics", Institution: "UCL", DateCompleted: "2016"}},
		Experience:           []types.Experience{{Organization: "Acme", Roles: []string{"Analyst", "Lead"}}},
	})
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "7.5 years")
	assert.Contains(t, output, "jane@x.com")
	assert.Contains(t, output, "Skills (7):")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Acme: Analyst, Lead")
	assert.NotContains(t, output, "Phone:")
	assert.NotContains(t, output, "Certifications")
}

func TestPrintResumeRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeRecord(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_AlignsMultibyte(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.printBox("TITLE", "José Müller\n"+strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintStage(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStage("extract", "Extracting text from cv.pdf")
	assert.Equal(t, "[EXTRACT] Extracting text from cv.pdf\n", buf.String())
}

func TestPrintSkillCategories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintSkillCategories(map[string][]string{"Other": {"payroll"}, "Database": {"mysql", "redis"}})

	out := buf.String()
	assert.Contains(t, out, "SKILLS BY CATEGORY")
	assert.Less(t, strings.Index(out, "Database"), strings.Index(out, "Other"))
	assert.Contains(t, out, "mysql, redis")

	buf.Reset()
	p.PrintSkillCategories(nil)
	assert.Empty(t, buf.String())
}
