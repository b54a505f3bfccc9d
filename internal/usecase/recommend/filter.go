package recommend

import (
	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/worker"
)

// eligible reports whether p can be recommended under f.
// Inactive workers are never recommended even if still present in a model.
func eligible(p *worker.Profile, f filter.Filters) bool {
	return p != nil && p.IsActive && f.Matches(p)
}

// filterProfiles keeps the profiles passing f, preserving order.
func filterProfiles(profiles []worker.Profile, f filter.Filters) []worker.Profile {
	out := profiles[:0:0]
	for i := range profiles {
		if eligible(&profiles[i], f) {
			out = append(out, profiles[i])
		}
	}
	return out
}
