package allocator

import "github.com/MikeSquared-Agency/Roadmap/internal/roadmap"

// Pool is the ordered set of contributors still available during one allocation
// pass, held from most junior (head) to most senior (tail). Pool is a value:
// taking a contributor returns a new Pool and never touches the old one.
type Pool struct {
	contributors []roadmap.Contributor
}

// NewPool copies the contributors into a pool ordered by ascending seniority.
func NewPool(contributors []roadmap.Contributor) Pool {
	cs := make([]roadmap.Contributor, len(contributors))
	copy(cs, contributors)
	roadmap.SortBySeniority(cs)
	return Pool{contributors: cs}
}

// Len returns the number of contributors still available.
func (p Pool) Len() int {
	return len(p.contributors)
}

// Empty reports whether no contributors remain.
func (p Pool) Empty() bool {
	return len(p.contributors) == 0
}

// Contributors returns a copy of the remaining contributors in pool order.
func (p Pool) Contributors() []roadmap.Contributor {
	out := make([]roadmap.Contributor, len(p.contributors))
	copy(out, p.contributors)
	return out
}

func (p Pool) takeHead() (roadmap.Contributor, Pool, bool) {
	return p.takeAt(0)
}

func (p Pool) takeTail() (roadmap.Contributor, Pool, bool) {
	return p.takeAt(len(p.contributors) - 1)
}

func (p Pool) takeAt(i int) (roadmap.Contributor, Pool, bool) {
	if i < 0 || i >= len(p.contributors) {
		return roadmap.Contributor{}, p, false
	}
	taken := p.contributors[i]
	rest := make([]roadmap.Contributor, 0, len(p.contributors)-1)
	rest = append(rest, p.contributors[:i]...)
	rest = append(rest, p.contributors[i+1:]...)
	return taken, Pool{contributors: rest}, true
}
