package program

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Registry stores programs and provides lookup by ID, short name, display
// name, or auto-detection against a command string.
type Registry struct {
	programs map[string]Program
	// order preserves registration order, used to break ties
	// deterministically in Get and Detect instead of relying on Go's
	// randomized map iteration (see DESIGN.md's Open Question decision).
	order           []string
	detectionCache  map[string]*regexp.Regexp
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		programs:       map[string]Program{},
		detectionCache: map[string]*regexp.Regexp{},
	}
}

// Register adds a program to the registry and compiles its detection
// patterns (each is matched as a whole word, case-insensitively).
func (r *Registry) Register(p Program) {
	for _, pattern := range p.DetectPatterns() {
		if _, ok := r.detectionCache[pattern]; ok {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(pattern) + `\b`)
		if err == nil {
			r.detectionCache[pattern] = re
		}
	}

	id := p.Info().ID
	if _, exists := r.programs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.programs[id] = p
}

// Get looks up a program by exact ID first, then falls back to matching
// the short-name suffix (e.g. "lodestar" matches "ethereum.lodestar") or a
// case-insensitive name match. Ties among fallback matches are broken by
// registration order.
func (r *Registry) Get(id string) (Program, bool) {
	if p, ok := r.programs[id]; ok {
		return p, true
	}

	suffix := "." + id
	for _, programID := range r.order {
		p := r.programs[programID]
		if strings.HasSuffix(programID, suffix) || strings.EqualFold(p.Info().Name, id) {
			return p, true
		}
	}
	return nil, false
}

// Detect finds the program whose detection pattern matches cmd most
// specifically (longest matching pattern wins). Ties are broken by
// registration order.
func (r *Registry) Detect(cmd string) (Program, bool) {
	lower := strings.ToLower(cmd)

	bestLen := -1
	var best Program
	for _, programID := range r.order {
		p := r.programs[programID]
		for _, pattern := range p.DetectPatterns() {
			re, ok := r.detectionCache[pattern]
			if !ok || !re.MatchString(lower) {
				continue
			}
			if len(pattern) > bestLen {
				bestLen = len(pattern)
				best = p
			}
			break // one match per program is enough
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// List returns every registered program's info, in registration order.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, r.programs[id].Info())
	}
	return infos
}

// ListByCategory returns the info of every program in the given category,
// in registration order.
func (r *Registry) ListByCategory(c Category) []Info {
	var infos []Info
	for _, id := range r.order {
		info := r.programs[id].Info()
		if info.Category == c {
			infos = append(infos, info)
		}
	}
	return infos
}

// Categories returns every category that has at least one registered
// program, sorted by category name.
func (r *Registry) Categories() []Category {
	seen := map[Category]bool{}
	for _, id := range r.order {
		seen[r.programs[id].Info().Category] = true
	}
	cats := make([]Category, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].String() < cats[j].String() })
	return cats
}

// Len returns the number of registered programs.
func (r *Registry) Len() int { return len(r.programs) }

// String is used for debug output and error messages referencing the
// registry's size.
func (r *Registry) String() string {
	return fmt.Sprintf("Registry(%d programs)", len(r.programs))
}
