package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceCutoff(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no heading", "Jane Doe jane@x.com", "Jane Doe jane@x.com"},
		{"references", "Jane\nREFERENCES\nBob", "Jane\n"},
		{"referees", "Jane\nReferees: Bob", "Jane\n"},
		{"reference singular", "Jane\nReference available", "Jane\n"},
		{"earliest wins", "a Referees b References c", "a "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReferenceCutoff(tt.in))
		})
	}
}

func TestEmails(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"none", "no contact here", ""},
		{"single", "Email: jane.doe@example.com", "jane.doe@example.com"},
		{"distinct in order", "b@y.org then a@x.com then b@y.org", "b@y.org, a@x.com"},
		{"case duplicates", "Jane@X.com and jane@x.com", "Jane@X.com"},
		{"trailing sentence dot", "Write to jane@example.com.", "jane@example.com"},
		{"subdomain", "m.ashraf@student.jkuat.ac.ke", "m.ashraf@student.jkuat.ac.ke"},
		{"chained addresses rejected", "a@b.com@c.org", ""},
		{"single letter tld rejected", "x@y.z", ""},
		{"after references ignored", "me@a.com\nReferences\nref@b.com", "me@a.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Emails(tt.in))
		})
	}
}

func TestFirstPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"too few digits", "call 123", ""},
		{"international", "Phone: +1 234 567 8901", "+1 234 567 8901"},
		{"parenthesized area code", "Tel (123) 456-7890", "(123) 456-7890"},
		{"plain", "Mobile 0712345678 anytime", "0712345678"},
		{"year range rejected", "Acme 1998 - 2002 Engineer", ""},
		{"year inside number rejected", "ID 12-1998-77", ""},
		{"wide spacing rejected", "Scores 12   34   56   78", ""},
		{"parenthesis far away rejected", "(12345) 678", ""},
		{"embedded in long digit run", "ACC 12345678901234567890123", ""},
		{"first valid wins", "2010 - 2015 then +254 712 345 678 or 0700000000", "+254 712 345 678"},
		{"after referees ignored", "Referees\nBob 0712345678", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstPhone(tt.in))
		})
	}
}

func TestAllPhones(t *testing.T) {
	text := "Phone: +1 234 567 8901, Office: (020) 555-1234\nReferences\nBob 0712345678"
	assert.Equal(t, []string{"+1 234 567 8901", "(020) 555-1234"}, AllPhones(text))
	assert.Equal(t, "+1 234 567 8901, (020) 555-1234", Phones(text))
	assert.Empty(t, AllPhones("nothing"))
}

func TestEndToEndScenario(t *testing.T) {
	text := "Email: a@b.com Phone: (123) 456-7890 References: c@d.com"
	assert.Equal(t, "a@b.com", Emails(text))
	assert.Equal(t, "(123) 456-7890", FirstPhone(text))
}
