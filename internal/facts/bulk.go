package facts

import (
	"golang.org/x/sync/errgroup"

	"github.com/detljh/souffle/internal/relation"
)

// LoadDir loads every relation in rels from dir, reading up to jobs files
// concurrently. Each goroutine mutates exactly one relation, so the
// single-owner mutation model holds. jobs below 1 is treated as 1.
func LoadDir(dir string, rels []relation.Relation, jobs int) error {
	return fanOut(rels, jobs, func(r relation.Relation) error {
		return Load(dir, r)
	})
}

// StoreDir stores every relation in rels into dir, writing up to jobs files
// concurrently.
func StoreDir(dir string, rels []relation.Relation, jobs int) error {
	return fanOut(rels, jobs, func(r relation.Relation) error {
		return Store(dir, r)
	})
}

func fanOut(rels []relation.Relation, jobs int, op func(relation.Relation) error) error {
	if jobs < 1 {
		jobs = 1
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for _, r := range rels {
		g.Go(func() error {
			return op(r)
		})
	}
	return g.Wait()
}
