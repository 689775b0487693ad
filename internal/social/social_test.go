package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleResume = `
John Doe
Software Engineer
john.doe@example.com | (123) 456-7890

linkedin.com/in/johndoe
github.com/jdoe
Check out my portfolio at johndoe.dev
Follow me on Twitter @johndoe

EXPERIENCE
...
`

func TestExtract_SampleResume(t *testing.T) {
	links := Extract(sampleResume)

	assert.Equal(t, []string{"https://linkedin.com/in/johndoe"}, links[LinkedIn])
	assert.Equal(t, []string{"https://github.com/jdoe"}, links[GitHub])
	assert.Equal(t, []string{"https://twitter.com/johndoe"}, links[Twitter])
	assert.Equal(t, []string{"https://johndoe.dev"}, links[Portfolio])
	assert.NotContains(t, links, Medium)
}

func TestFlatten_PlatformOrder(t *testing.T) {
	got := Flatten(Extract(sampleResume))
	assert.Equal(t, []string{
		"https://linkedin.com/in/johndoe",
		"https://github.com/jdoe",
		"https://twitter.com/johndoe",
		"https://johndoe.dev",
	}, got)
}

func TestExtract_Platforms(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		platform Platform
		want     []string
	}{
		{"https kept", "See https://www.linkedin.com/in/jane-doe for more", LinkedIn, []string{"https://www.linkedin.com/in/jane-doe"}},
		{"github alice", "code: github.com/alice", GitHub, []string{"https://github.com/alice"}},
		{"medium handle", "blog medium.com/@jane", Medium, []string{"https://medium.com/@jane"}},
		{"kaggle", "kaggle.com/janedoe", Kaggle, []string{"https://kaggle.com/janedoe"}},
		{"stackoverflow", "https://stackoverflow.com/users/12345", StackOverflow, []string{"https://stackoverflow.com/users/12345"}},
		{"behance", "behance.net/jane", Behance, []string{"https://behance.net/jane"}},
		{"dribbble", "dribbble.com/jane", Dribbble, []string{"https://dribbble.com/jane"}},
		{"deduplicated", "github.com/alice and github.com/alice", GitHub, []string{"https://github.com/alice"}},
		{"website context", "Website: https://janedoe.io/work", Portfolio, []string{"https://janedoe.io/work"}},
		{"linkedin username", "LinkedIn: janedoe", LinkedIn, []string{"https://linkedin.com/in/janedoe"}},
		{"github username", "GitHub @alice-dev", GitHub, []string{"https://github.com/alice-dev"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text)[tt.platform])
		})
	}
}

func TestExtract_PortfolioExcludesPlatformsAndEmails(t *testing.T) {
	links := Extract("github.com/alice linkedin.com/in/alice jane.dev@gmail.com ASP.NET developer")
	assert.NotContains(t, links, Portfolio)
}

func TestExtract_GenericWordsAreNotHandles(t *testing.T) {
	links := Extract("Skills: Git, GitHub Actions, Docker. LinkedIn: profile")
	assert.NotContains(t, links, GitHub)
	assert.NotContains(t, links, LinkedIn)
}

func TestExtract_StopsAtReferences(t *testing.T) {
	links := Extract("Jane\nReferences\nBob github.com/bob")
	assert.Empty(t, links)
	assert.Equal(t, []string{}, Flatten(links))
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.NotNil(t, Flatten(Extract("")))
}

func TestLinks_ByPlatform(t *testing.T) {
	got := Extract(sampleResume).ByPlatform()

	assert.Equal(t, []string{"https://github.com/jdoe"}, got["GitHub"])
	assert.Equal(t, []string{"https://johndoe.dev"}, got["Portfolio"])
	assert.NotContains(t, got, "Medium")
	assert.Empty(t, Links{}.ByPlatform())
}
