// Package match computes the per-candidate scores that rank technicians for a
// dispatch request: skill compatibility, proximity, workload availability and
// historical performance, combined into one weighted composite.
package match

import "strings"

// RelatedSkills maps a required-skill category keyword to technician skill
// keywords considered related to it. The table is a heuristic tie-break, not
// semantic matching; downstream weighting depends on these exact entries.
var RelatedSkills = map[string][]string{
	"installation": {"install", "setup", "deploy"},
	"repair":       {"restoration", "fix", "maintenance"},
	"diagnosis":    {"diagnostic", "troubleshoot", "test"},
}

// Skill match score tiers.
const (
	skillExact   = 1.0
	skillPartial = 0.7
	skillRelated = 0.5
)

// SkillScore rates how well a technician's skill label matches the required
// skill, case-insensitively. Exact matches score 1.0, substring matches 0.7,
// related-category matches 0.5, anything else 0.0. Empty labels score 0.0.
func SkillScore(technicianSkill, requiredSkill string) float64 {
	tech := strings.ToLower(strings.TrimSpace(technicianSkill))
	req := strings.ToLower(strings.TrimSpace(requiredSkill))
	if tech == "" || req == "" {
		return 0
	}
	if tech == req {
		return skillExact
	}
	// Partial matching, e.g. "Service restoration" matches "restoration".
	if strings.Contains(tech, req) || strings.Contains(req, tech) {
		return skillPartial
	}
	for category, keywords := range RelatedSkills {
		if !strings.Contains(req, category) {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(tech, kw) {
				return skillRelated
			}
		}
	}
	return 0
}
