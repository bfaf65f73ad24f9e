package match

import "testing"

func TestSkillScore(t *testing.T) {
	cases := []struct {
		name     string
		tech     string
		required string
		want     float64
	}{
		{"exact", "Installation", "Installation", 1.0},
		{"exact case-insensitive", "installation", "INSTALLATION", 1.0},
		{"required contained in tech", "Service restoration", "restoration", 0.7},
		{"tech contained in required", "repair", "Fiber repair", 0.7},
		{"related installation", "Network setup", "Installation", 0.5},
		{"related repair", "Line maintenance", "Repair ticket", 0.5},
		{"related diagnosis", "Remote troubleshooting", "Diagnosis", 0.5},
		{"unrelated", "Plumbing", "Installation", 0.0},
		{"empty tech", "", "Installation", 0.0},
		{"empty required", "Installation", "", 0.0},
		{"both empty", "", "", 0.0},
		{"whitespace only", "   ", "Installation", 0.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SkillScore(c.tech, c.required); got != c.want {
				t.Errorf("SkillScore(%q, %q) = %v, want %v", c.tech, c.required, got, c.want)
			}
		})
	}
}

func TestSkillScoreBounds(t *testing.T) {
	valid := map[float64]bool{0.0: true, 0.5: true, 0.7: true, 1.0: true}
	inputs := [][2]string{
		{"Installation", "Repair"},
		{"deploy team", "installation work"},
		{"x", "y"},
		{"Fix crew", "repair"},
	}
	for _, in := range inputs {
		if got := SkillScore(in[0], in[1]); !valid[got] {
			t.Errorf("SkillScore(%q, %q) = %v, not one of the defined tiers", in[0], in[1], got)
		}
	}
}

func TestRelatedSkillsTable(t *testing.T) {
	for _, category := range []string{"installation", "repair", "diagnosis"} {
		if len(RelatedSkills[category]) == 0 {
			t.Errorf("category %q missing from RelatedSkills", category)
		}
	}
}
