package model

// OnboardingRequest carries a mentee's onboarding artifacts: structured
// extraction results from resume/transcript parsing plus the free-text
// narrative paragraph. Parsing itself happens upstream; this service
// receives the structured payload.
type OnboardingRequest struct {
	ParagraphText  string          `json:"paragraph_text" validate:"required,min=1"`
	ResumeData     *ResumeData     `json:"resume_data,omitempty"`
	TranscriptData *TranscriptData `json:"transcript_data,omitempty"`
	Availability   []string        `json:"availability,omitempty"`
}

// ResumeData is the structured resume extraction result.
type ResumeData struct {
	Contact    Contact             `json:"contact"`
	Skills     map[string][]string `json:"skills,omitempty"`
	Experience []ExperienceEntry   `json:"experience,omitempty"`
}

// Contact holds resume contact fields.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ExperienceEntry is one resume experience item.
type ExperienceEntry struct {
	Role    string `json:"role"`
	Company string `json:"company,omitempty"`
}

// TranscriptData is the structured transcript extraction result.
type TranscriptData struct {
	Majors           []string      `json:"majors,omitempty"`
	CoursesCompleted []CourseEntry `json:"courses_completed,omitempty"`
}

// CourseEntry is one completed course.
type CourseEntry struct {
	Code  string `json:"code,omitempty"`
	Title string `json:"title"`
}

// OnboardingResponse acknowledges a stored onboarding submission.
type OnboardingResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
}

// RoadmapRequest asks for a milestone roadmap bridging a mentee/mentor
// text pair.
type RoadmapRequest struct {
	MenteeText string `json:"mentee_text" validate:"required"`
	MentorText string `json:"mentor_text" validate:"required"`
	Count      int    `json:"count" validate:"min=1,max=20"`
}

// RoadmapResponse carries the synthesized milestones.
type RoadmapResponse struct {
	Milestones []RoadmapMilestone `json:"milestones"`
}

// RankingResponse carries the best-known ranking for a session.
type RankingResponse struct {
	SessionID string         `json:"session_id"`
	Complete  bool           `json:"complete"`
	Ranking   []RankedMentor `json:"ranking"`
}

// NegotiationsResponse exposes per-candidate negotiation states,
// including transcripts of rejected and exhausted candidates.
type NegotiationsResponse struct {
	SessionID    string             `json:"session_id"`
	Negotiations []NegotiationState `json:"negotiations"`
}

// StreamCommand is a client->server control message on the WebSocket.
type StreamCommand struct {
	Cmd string `json:"cmd"`
}
