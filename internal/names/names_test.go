package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane.doe@x.com", "jane doe"},
		{"mohammed.ashraf@student.jkuat.ac.ke", "mohammed ashraf"},
		{"ashrafanil434@gmail.com", "ashrafanil"},
		{"first.last_211@jhub.africa.com", "first last"},
		{"__a..b__@x.com", "a b"},
		{"1234@x.com", ""},
		{"no-at-sign", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, FromEmail(tt.email))
		})
	}
}

func TestFromEmails(t *testing.T) {
	assert.Equal(t, "jane doe", FromEmails("jane.doe@x.com, other@y.com"))
	assert.Equal(t, "", FromEmails(""))
}
