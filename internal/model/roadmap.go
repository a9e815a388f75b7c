package model

// Track is the closed set of roadmap milestone tracks.
type Track string

const (
	TrackAcademics   Track = "Academics"
	TrackResearch    Track = "Research"
	TrackInternships Track = "Internships"
	TrackProjects    Track = "Projects"
	TrackSkills      Track = "Skills"
	TrackLeadership  Track = "Leadership"
	TrackNetwork     Track = "Network"
	TrackImpact      Track = "Impact"
)

// Tracks lists every valid track in display order.
var Tracks = []Track{
	TrackAcademics,
	TrackResearch,
	TrackInternships,
	TrackProjects,
	TrackSkills,
	TrackLeadership,
	TrackNetwork,
	TrackImpact,
}

// Valid reports whether t belongs to the closed track enumeration.
func (t Track) Valid() bool {
	for _, known := range Tracks {
		if t == known {
			return true
		}
	}
	return false
}

// Icon is the closed set of milestone icon tags rendered by the client.
type Icon string

const (
	IconBriefcase  Icon = "briefcase"
	IconTrendingUp Icon = "trending-up"
	IconTarget     Icon = "target"
	IconBookOpen   Icon = "book-open"
	IconFlask      Icon = "flask"
	IconUsers      Icon = "users"
	IconAward      Icon = "award"
	IconRocket     Icon = "rocket"
)

// Icons lists every valid icon tag.
var Icons = []Icon{
	IconBriefcase,
	IconTrendingUp,
	IconTarget,
	IconBookOpen,
	IconFlask,
	IconUsers,
	IconAward,
	IconRocket,
}

// Valid reports whether i belongs to the closed icon enumeration.
func (i Icon) Valid() bool {
	for _, known := range Icons {
		if i == known {
			return true
		}
	}
	return false
}

// ActionItem is one concrete step inside a milestone checklist.
type ActionItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// RoadmapMilestone bridges the mentee's current state and how the mentor
// got there, on one track.
type RoadmapMilestone struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Track          Track        `json:"track"`
	Icon           Icon         `json:"icon"`
	Rationale      string       `json:"rationale"`
	MentorPath     string       `json:"mentor_path"`
	MenteeState    string       `json:"mentee_state"`
	GapNarrative   string       `json:"gap_narrative"`
	EstimatedWeeks int          `json:"estimated_weeks"`
	Impact         int          `json:"impact"`
	Effort         int          `json:"effort"`
	Actions        []ActionItem `json:"actions"`
}

// Leverage is the milestone's priority score: impact doubled minus effort.
func (m *RoadmapMilestone) Leverage() int {
	return m.Impact*2 - m.Effort
}
