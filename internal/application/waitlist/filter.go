package waitlist

import (
	"sort"
	"strings"

	"github.com/raatap-waitlist/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys and directions accepted by Apply.
const (
	SortCreatedAt   = "created_at"
	SortFullName    = "full_name"
	SortInstitution = "institution"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	RoleHost  = "host"
	RoleRider = "rider"

	filterAll = "all"
)

// Query selects and orders the admin view of the waitlist.
type Query struct {
	Search      string `json:"q"`
	Institution string `json:"institution"`
	Role        string `json:"role"`
	Sort        string `json:"sort"`
	Order       string `json:"order"`
}

// Apply returns the entries matching q, ordered as q requests.
// The input slice is not modified.
func Apply(entries []domain.Profile, q Query) []domain.Profile {
	out := make([]domain.Profile, 0, len(entries))
	needle := strings.ToLower(q.Search)
	for _, e := range entries {
		if matches(e, needle, q) {
			out = append(out, e)
		}
	}

	less := comparator(q.Sort)
	desc := q.Order != OrderAsc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func matches(e domain.Profile, needle string, q Query) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(e.FullName), needle) &&
		!strings.Contains(strings.ToLower(e.InstitutionalEmail), needle) &&
		!strings.Contains(strings.ToLower(e.Institution), needle) {
		return false
	}
	if q.Institution != "" && q.Institution != filterAll && e.Institution != q.Institution {
		return false
	}
	switch q.Role {
	case RoleHost:
		return e.PreferHosting
	case RoleRider:
		return e.PreferTakingRide
	}
	return true
}

func comparator(key string) func(a, b domain.Profile) bool {
	switch key {
	case SortFullName, SortInstitution:
		// Collator keeps per-call buffers, so each Apply gets its own.
		col := collate.New(language.English)
		field := func(p domain.Profile) string { return p.FullName }
		if key == SortInstitution {
			field = func(p domain.Profile) string { return p.Institution }
		}
		return func(a, b domain.Profile) bool {
			return col.CompareString(field(a), field(b)) < 0
		}
	default:
		return func(a, b domain.Profile) bool {
			return a.CreatedAt.UnixMilli() < b.CreatedAt.UnixMilli()
		}
	}
}

// Stats summarises the whole waitlist for the dashboard header.
type Stats struct {
	Total        int `json:"total"`
	Hosts        int `json:"hosts"`
	Riders       int `json:"riders"`
	Verified     int `json:"verified"`
	Institutions int `json:"institutions"`
}

// InstitutionCount is one row of the institution breakdown.
type InstitutionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summarize computes stats and the institution breakdown, sorted by name.
func Summarize(entries []domain.Profile) (Stats, []InstitutionCount) {
	var st Stats
	counts := map[string]int{}
	for _, e := range entries {
		st.Total++
		if e.PreferHosting {
			st.Hosts++
		}
		if e.PreferTakingRide {
			st.Riders++
		}
		if e.EmailVerified {
			st.Verified++
		}
		if e.Institution != "" {
			counts[e.Institution]++
		}
	}
	st.Institutions = len(counts)

	insts := make([]InstitutionCount, 0, len(counts))
	for name, n := range counts {
		insts = append(insts, InstitutionCount{Name: name, Count: n})
	}
	col := collate.New(language.English)
	sort.Slice(insts, func(i, j int) bool {
		return col.CompareString(insts[i].Name, insts[j].Name) < 0
	})
	return st, insts
}
