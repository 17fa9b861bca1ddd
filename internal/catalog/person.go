package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// personIndex maps names to titles, keeping names in first-seen order.
type personIndex struct {
	names  []string
	folded []string
	titles map[string][]string
	caser  cases.Caser
}

func newPersonIndex() *personIndex {
	return &personIndex{
		titles: make(map[string][]string),
		caser:  cases.Lower(language.Und),
	}
}

func (p *personIndex) add(name, title string) {
	list, ok := p.titles[name]
	if !ok {
		p.names = append(p.names, name)
		p.folded = append(p.folded, p.caser.String(name))
	}
	if slices.Contains(list, title) {
		return
	}
	p.titles[name] = append(list, title)
}

func (p *personIndex) len() int {
	return len(p.names)
}

// find unions the title lists of every name containing query. A Caser holds
// state, so queries fold with their own instead of the build-time one.
func (p *personIndex) find(query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	needle := cases.Lower(language.Und).String(query)

	var out []string
	seen := make(map[string]struct{})
	for i, key := range p.folded {
		if !strings.Contains(key, needle) {
			continue
		}
		for _, title := range p.titles[p.names[i]] {
			if _, dup := seen[title]; dup {
				continue
			}
			seen[title] = struct{}{}
			out = append(out, title)
		}
	}
	return out
}
