// Package perspective holds the fixed set of analytical lenses a question is
// examined through.
package perspective

// Perspective is one analytical lens
type Perspective struct {
	Key         string
	Name        string
	Emoji       string
	Typicality  string // how common the approach is
	Description string
	Color       string
}

// Label returns the emoji and name, e.g. "🔵 Traditional"
func (p Perspective) Label() string {
	return p.Emoji + " " + p.Name
}

const (
	Traditional = "traditional"
	Practical   = "practical"
	Critical    = "critical"
	Creative    = "creative"
)

var all = [...]Perspective{
	{
		Key:         Traditional,
		Name:        "Traditional",
		Emoji:       "🔵",
		Typicality:  "high",
		Description: "The most common, well-proven approach",
		Color:       "blue",
	},
	{
		Key:         Practical,
		Name:        "Practical",
		Emoji:       "🟢",
		Typicality:  "medium-high",
		Description: "A realistic approach you can act on right away",
		Color:       "green",
	},
	{
		Key:         Critical,
		Name:        "Critical",
		Emoji:       "🟡",
		Typicality:  "medium",
		Description: "Counterarguments, concerns and risks to weigh",
		Color:       "orange",
	},
	{
		Key:         Creative,
		Name:        "Creative",
		Emoji:       "🔴",
		Typicality:  "low",
		Description: "An atypical approach that may still be valuable",
		Color:       "red",
	},
}

// All returns the perspectives in display order. The slice is a copy.
func All() []Perspective {
	out := make([]Perspective, len(all))
	copy(out, all[:])
	return out
}

// Keys returns the perspective keys in display order
func Keys() []string {
	keys := make([]string, len(all))
	for i, p := range all {
		keys[i] = p.Key
	}
	return keys
}

// Lookup finds a perspective by key
func Lookup(key string) (Perspective, bool) {
	for _, p := range all {
		if p.Key == key {
			return p, true
		}
	}
	return Perspective{}, false
}

// Others returns every perspective except key, in display order
func Others(key string) []Perspective {
	out := make([]Perspective, 0, len(all))
	for _, p := range all {
		if p.Key != key {
			out = append(out, p)
		}
	}
	return out
}
