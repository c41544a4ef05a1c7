package candidate

import (
	"fmt"
	"sort"
	"strings"
)

const unknownIndustry = "unspecified"

// Candidates is an ordered pool of candidate profiles.
type Candidates struct {
	Items []Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// IDs returns identifiers in pool order.
func (c *Candidates) IDs() []string {
	ids := make([]string, 0, c.Len())
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// ReportByIndustry groups candidates under every industry they list.
// Candidates without industries are reported as "unspecified".
func (c *Candidates) ReportByIndustry() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range c.Items {
		industries := item.Industries
		if len(industries) == 0 {
			industries = []string{unknownIndustry}
		}

		entry := map[string]string{
			"id":         item.ID,
			"title":      item.Title,
			"experience": fmt.Sprintf("%d years", item.ExperienceYears),
			"location":   item.Location.String(),
		}

		for _, industry := range industries {
			report[industry] = append(report[industry], entry)
		}
	}
	return report
}

// Industries returns the distinct industries of the pool sorted by name.
func (c *Candidates) Industries() []string {
	seen := make(map[string]string)
	for _, item := range c.Items {
		for _, industry := range item.Industries {
			key := strings.ToLower(industry)
			if _, ok := seen[key]; !ok {
				seen[key] = industry
			}
		}
	}

	out := make([]string, 0, len(seen))
	for _, industry := range seen {
		out = append(out, industry)
	}
	sort.Strings(out)
	return out
}

func (l Location) String() string {
	parts := make([]string, 0, 3)
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	if l.Remote {
		parts = append(parts, "remote")
	}
	return strings.Join(parts, ", ")
}
