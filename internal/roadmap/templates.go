package roadmap

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/selector"
)

// trackIcons maps each track to its default icon tag.
var trackIcons = map[model.Track]model.Icon{
	model.TrackAcademics:   model.IconBookOpen,
	model.TrackResearch:    model.IconFlask,
	model.TrackInternships: model.IconBriefcase,
	model.TrackProjects:    model.IconRocket,
	model.TrackSkills:      model.IconTrendingUp,
	model.TrackLeadership:  model.IconAward,
	model.TrackNetwork:     model.IconUsers,
	model.TrackImpact:      model.IconTarget,
}

// trackTemplate parameterizes the deterministic milestone built for one
// track when generation is unavailable or structurally invalid.
type trackTemplate struct {
	title   string
	weeks   int
	impact  int
	effort  int
	actions []string
}

var trackTemplates = map[model.Track]trackTemplate{
	model.TrackAcademics: {
		title: "Target the coursework your mentor built on", weeks: 12, impact: 4, effort: 3,
		actions: []string{
			"List the courses your mentor's path required and compare against your transcript",
			"Enroll in the highest-leverage missing course next term",
			"Set a grade target and a weekly study block for it",
		},
	},
	model.TrackResearch: {
		title: "Get into a research group", weeks: 10, impact: 5, effort: 4,
		actions: []string{
			"Identify two labs working near your mentor's area",
			"Email each PI with a one-paragraph pitch and your transcript highlights",
			"Commit to one semester of weekly lab hours",
		},
	},
	model.TrackInternships: {
		title: "Land an internship in your mentor's field", weeks: 16, impact: 5, effort: 4,
		actions: []string{
			"Draft a resume aimed at roles like your mentor's early positions",
			"Apply to ten internships with tailored cover notes",
			"Ask your mentor for one warm introduction",
		},
	},
	model.TrackProjects: {
		title: "Ship a portfolio project", weeks: 8, impact: 4, effort: 3,
		actions: []string{
			"Scope a project that exercises your mentor's core tools",
			"Publish the code and a short writeup",
			"Present it at a student meetup or class",
		},
	},
	model.TrackSkills: {
		title: "Close the core skill gap", weeks: 6, impact: 4, effort: 2,
		actions: []string{
			"Pick the one skill your mentor uses daily that you lack",
			"Finish a structured course or book on it",
			"Apply it inside an existing project within two weeks",
		},
	},
	model.TrackLeadership: {
		title: "Take on a leadership role", weeks: 12, impact: 3, effort: 3,
		actions: []string{
			"Volunteer to lead one initiative in a club or team you already belong to",
			"Run it end to end for a semester",
			"Collect feedback from the people you led",
		},
	},
	model.TrackNetwork: {
		title: "Build your professional network", weeks: 8, impact: 3, effort: 2,
		actions: []string{
			"Attend one industry or campus event per month",
			"Follow up with three new contacts after each event",
			"Keep a simple log of who you met and what you discussed",
		},
	},
	model.TrackImpact: {
		title: "Create visible impact", weeks: 10, impact: 4, effort: 3,
		actions: []string{
			"Find a real user or community for your work",
			"Measure one concrete outcome your work improves",
			"Write up the result where future employers can find it",
		},
	},
}

// buildTemplate constructs the deterministic milestone for a track,
// grounding its narrative in the supplied profile texts.
func buildTemplate(track model.Track, menteeText, mentorText string) model.RoadmapMilestone {
	tpl := trackTemplates[track]

	menteeFocus := firstKeywords(menteeText, 4)
	mentorFocus := firstKeywords(mentorText, 4)

	actions := make([]model.ActionItem, 0, len(tpl.actions))
	for _, a := range tpl.actions {
		actions = append(actions, model.ActionItem{Text: a})
	}

	return model.RoadmapMilestone{
		ID:    uuid.New().String(),
		Title: tpl.title,
		Track: track,
		Icon:  trackIcons[track],
		Rationale: fmt.Sprintf("%s progress is the most direct bridge between where you are (%s) and where your mentor operates (%s).",
			track, menteeFocus, mentorFocus),
		MentorPath: fmt.Sprintf("Your mentor's background in %s was built through sustained %s work.",
			mentorFocus, strings.ToLower(string(track))),
		MenteeState: fmt.Sprintf("You are currently focused on %s and have not yet built a track record here.",
			menteeFocus),
		GapNarrative: fmt.Sprintf("The gap is experience, not aptitude: your mentor accumulated %s credibility step by step, and the same ladder is open to you.",
			strings.ToLower(string(track))),
		EstimatedWeeks: tpl.weeks,
		Impact:         tpl.impact,
		Effort:         tpl.effort,
		Actions:        actions,
	}
}

// firstKeywords extracts up to n salient keywords from free text for use
// in template narratives.
func firstKeywords(text string, n int) string {
	kws := selector.Keywords(text)
	if len(kws) == 0 {
		return "your stated interests"
	}
	if len(kws) > n {
		kws = kws[:n]
	}
	return strings.Join(kws, ", ")
}
