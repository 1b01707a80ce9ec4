// Package classify assigns a tech-stack label to a community record by
// matching hand-authored keyword lists against its textual fields. It is
// used by the seeding pipeline, never at request time.
package classify

import (
	"strings"

	"devcomm/internal/models"
)

// GeneralLabel is the fallback label when nothing matches and the record
// carries no tech stack of its own.
const GeneralLabel = "General"

// CanonicalLabels are the labels the rule chain can produce, plus the
// pre-set values it preserves on fallback.
var CanonicalLabels = []string{
	"React", "Node.js", "Python", "Machine Learning", "Vue", "Angular",
	"Django", "Flask",
}

// rule matches when any of its keyword disjuncts hits: a substring of the
// case-folded title, an exact member of the case-folded tag set, or a
// substring of the combined text blob.
type rule struct {
	label string
	title []string
	tags  []string
	blob  []string
	// sub rules are evaluated only after this rule matches; the first
	// matching sub rule overrides the label. This reproduces the
	// Python-first/Django-Flask-override nesting: a record matching the
	// Python rule is re-tested for Django and Flask, while Django/Flask
	// records that never match the Python rule are caught by the
	// standalone rules further down the chain.
	sub []rule
}

// rules is evaluated in order; the first match wins.
var rules = []rule{
	{
		label: "React",
		title: []string{"react", "reactiflux", "next.js", "nextjs", "remix", "react native"},
		tags:  []string{"react", "next.js", "nextjs"},
		blob:  []string{"react.js", "reactjs", "react framework", "jsx"},
	},
	{
		label: "Node.js",
		title: []string{"node", "nodeiflux", "express.js", "expressjs"},
		tags:  []string{"node.js", "nodejs", "node", "express"},
		blob:  []string{"node.js", "nodejs", "express.js", "backend js", "server-side js"},
	},
	{
		label: "Python",
		title: []string{"python", "pyslackers", "real python", "r/python", "python cpython"},
		tags:  []string{"python"},
		blob:  []string{"python programming", "pythonista"},
		sub: []rule{
			{
				label: "Django",
				title: []string{"django"},
				tags:  []string{"django"},
				blob:  []string{"django framework"},
			},
			{
				label: "Flask",
				title: []string{"flask"},
				tags:  []string{"flask"},
				blob:  []string{"flask framework"},
			},
		},
	},
	{
		label: "Django",
		title: []string{"django"},
		tags:  []string{"django"},
		blob:  []string{"django framework", "django web"},
	},
	{
		label: "Flask",
		title: []string{"flask"},
		tags:  []string{"flask"},
		blob:  []string{"flask framework", "flask web"},
	},
	{
		label: "Machine Learning",
		title: []string{
			"machine learning", "ml", "ai", "artificial intelligence",
			"tensorflow", "pytorch", "deep learning", "neural", "kaggle",
			"fast.ai", "learnmachinelearning", "machinelearning",
		},
		tags: []string{"machine learning", "ml", "ai", "tensorflow", "pytorch", "deep learning"},
		blob: []string{"neural network", "data science", "data scientist", "ml model", "ai model"},
	},
	{
		label: "Vue",
		title: []string{"vue", "nuxt"},
		tags:  []string{"vue", "vue.js", "vuejs", "nuxt"},
		blob:  []string{"vue.js", "vuejs", "nuxt.js"},
	},
	{
		label: "Angular",
		title: []string{"angular"},
		tags:  []string{"angular", "angular.js"},
		blob:  []string{"angular.js", "angular framework", "typescript framework"},
	},
}

func (r rule) matches(title string, tagSet map[string]struct{}, blob string) bool {
	for _, kw := range r.title {
		if strings.Contains(title, kw) {
			return true
		}
	}
	for _, kw := range r.tags {
		if _, ok := tagSet[kw]; ok {
			return true
		}
	}
	for _, kw := range r.blob {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}

// TechStack returns the tech-stack label for the community. It is pure and
// total: the same input always yields the same non-empty label.
func TechStack(c models.Community) string {
	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)
	fullDesc := strings.ToLower(c.FullDescription)

	tagSet := make(map[string]struct{}, len(c.Tags))
	folded := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		lt := strings.ToLower(t)
		tagSet[lt] = struct{}{}
		folded = append(folded, lt)
	}
	blob := title + " " + desc + " " + fullDesc + " " + strings.Join(folded, " ")

	for _, r := range rules {
		if !r.matches(title, tagSet, blob) {
			continue
		}
		for _, s := range r.sub {
			if s.matches(title, tagSet, blob) {
				return s.label
			}
		}
		return r.label
	}

	original := strings.TrimSpace(c.TechStack)
	for _, label := range CanonicalLabels {
		if original == label {
			return original
		}
	}
	if original != "" {
		return original
	}
	return GeneralLabel
}
