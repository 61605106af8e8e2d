package frontend

// Page ids without the "page-" prefix.
const (
	PageLogin           = "login"
	PageProfileOverview = "profile-overview"
)

const pagePrefix = "page-"

// Pages tracks which of the registered pages is visible. At most one page is active.
type Pages struct {
	ids    []string
	active map[string]bool
}

// NewPages registers pages by their full element id, e.g. "page-login". All start inactive.
func NewPages(ids ...string) *Pages {
	p := &Pages{active: make(map[string]bool, len(ids))}
	for _, id := range ids {
		if _, ok := p.active[id]; ok {
			continue
		}
		p.ids = append(p.ids, id)
		p.active[id] = false
	}
	return p
}

// Show activates "page-"+id and deactivates every other page.
// An unknown id leaves all pages inactive.
func (p *Pages) Show(id string) {
	want := pagePrefix + id
	for _, pid := range p.ids {
		p.active[pid] = pid == want
	}
}

// IsActive reports whether "page-"+id is the visible page.
func (p *Pages) IsActive(id string) bool {
	return p.active[pagePrefix+id]
}

// Active returns the id (without prefix) of the visible page, or "" when none is.
func (p *Pages) Active() string {
	for _, pid := range p.ids {
		if p.active[pid] {
			return pid[len(pagePrefix):]
		}
	}
	return ""
}

func newAppPages() *Pages {
	return NewPages(pagePrefix+PageLogin, pagePrefix+PageProfileOverview)
}
