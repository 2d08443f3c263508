package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// Scope selects which listing view a query feeds. It is fixed per page
// type and never user-editable.
type Scope string

const (
	ScopeOpen   Scope = "open"
	ScopeClosed Scope = "closed"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeOpen, ScopeClosed:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// Query is one materialized filter selection, ready to send.
type Query struct {
	Text      string
	Regione   string
	Provincia string
	Comune    string
	Categorie []string // insertion order, joined as CSV
	Scope     Scope
}

// Values encodes the query parameters for GET /interpelli. Empty fields
// are omitted entirely rather than sent as empty strings, and exactly
// one of open_only / only_closed is present.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.Regione != "" {
		v.Set("regione", q.Regione)
	}
	if q.Provincia != "" {
		v.Set("provincia", q.Provincia)
	}
	if q.Comune != "" {
		v.Set("comune", q.Comune)
	}
	if len(q.Categorie) > 0 {
		v.Set("categorie", strings.Join(q.Categorie, ","))
	}
	if q.Scope == ScopeClosed {
		v.Set("only_closed", "true")
	} else {
		v.Set("open_only", "true")
	}
	return v
}
