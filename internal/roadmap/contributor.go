package roadmap

import "sort"

// Contributor is a person who can be staffed on roadmap items.
// Two contributors are equal when both name and seniority match.
type Contributor struct {
	Name      string `json:"name"`
	Seniority int    `json:"seniority"`
}

// Seniority bounds.
const (
	MinSeniority = 1
	MaxSeniority = 5
)

func (c Contributor) String() string {
	return c.Name
}

// SortBySeniority orders contributors from most junior to most senior.
// Contributors of equal seniority keep their relative order.
func SortBySeniority(contributors []Contributor) {
	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].Seniority < contributors[j].Seniority
	})
}

// Names returns the contributor names in order.
func Names(contributors []Contributor) []string {
	names := make([]string, len(contributors))
	for i, c := range contributors {
		names[i] = c.Name
	}
	return names
}
