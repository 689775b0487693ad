package parsing

import (
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// skillAliases maps common skill spellings to canonical names
var skillAliases = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"python3":    "Python",
	"python 3":   "Python",
	"k8s":        "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"nodejs":     "Node.js",
	"node js":    "Node.js",
	"postgres":   "PostgreSQL",
	"ml":         "Machine Learning",
	"ai":         "Artificial Intelligence",
	"nlp":        "Natural Language Processing",
}

// NormalizeSkillName maps a known alias to its canonical name and trims everything else.
func NormalizeSkillName(skill string) string {
	trimmed := strings.TrimSpace(skill)
	if canonical, ok := skillAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeSkills canonicalizes aliases and drops case-insensitive duplicates, keeping the
// first spelling. Placeholder entries are kept so callers can still detect a missing list.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if types.IsPlaceholder(s) {
			out = append(out, s)
			continue
		}
		if n := NormalizeSkillName(s); n != "" {
			out = append(out, n)
		}
	}
	return types.DedupeFold(out)
}
