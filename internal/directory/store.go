// Package directory provides the persistent mentor directory and the
// onboarded-mentee store. Mentors are read-only to every other component;
// mentees are written once per onboarding submission.
package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/owlconnect/matching-platform/internal/model"
)

// Store wraps the SQLite database holding mentors and mentees.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the store at path. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory store: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mentors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		avatar TEXT,
		title TEXT,
		employer TEXT,
		location TEXT,
		comm_style TEXT,
		mbti TEXT,
		experience_years INTEGER DEFAULT 0,
		max_mentees INTEGER DEFAULT 3,
		education TEXT,
		skills TEXT,
		tools TEXT,
		interests TEXT,
		mentorship_topics TEXT,
		availability TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS mentees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		major TEXT,
		mbti TEXT,
		paragraph TEXT,
		courses TEXT,
		skills TEXT,
		experience TEXT,
		hobbies TEXT,
		career_goals TEXT,
		availability TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_mentees_created_at ON mentees(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ListMentors returns every mentor profile in the directory.
func (s *Store) ListMentors(ctx context.Context) ([]model.MentorProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, avatar, title, employer, location, comm_style, mbti,
		       experience_years, max_mentees, education, skills, tools,
		       interests, mentorship_topics, availability
		FROM mentors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDirectoryUnavailable, err)
	}
	defer rows.Close()

	var mentors []model.MentorProfile
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDirectoryUnavailable, err)
		}
		mentors = append(mentors, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDirectoryUnavailable, err)
	}
	return mentors, nil
}

// GetMentor resolves one mentor profile by id.
func (s *Store) GetMentor(ctx context.Context, id string) (*model.MentorProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, avatar, title, employer, location, comm_style, mbti,
		       experience_years, max_mentees, education, skills, tools,
		       interests, mentorship_topics, availability
		FROM mentors WHERE id = ?`, id)

	m, err := scanMentor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMentorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDirectoryUnavailable, err)
	}
	return m, nil
}

// PutMentor inserts or replaces a mentor profile. Used by seeding and
// admin tooling; the rest of the system treats mentors as read-only.
func (s *Store) PutMentor(ctx context.Context, m *model.MentorProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO mentors
			(id, name, avatar, title, employer, location, comm_style, mbti,
			 experience_years, max_mentees, education, skills, tools,
			 interests, mentorship_topics, availability)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Avatar, m.Title, m.Employer, m.Location, m.CommStyle,
		m.MBTI, m.ExperienceYears, m.MaxMentees,
		marshalList(m.Education), marshalList(m.Skills), marshalList(m.Tools),
		marshalList(m.Interests), marshalList(m.MentorshipTopics),
		marshalList(m.Availability))
	if err != nil {
		return fmt.Errorf("failed to store mentor: %w", err)
	}
	return nil
}

// CreateMentee persists a normalized mentee profile.
func (s *Store) CreateMentee(ctx context.Context, p *model.MenteeProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mentees
			(id, name, email, major, mbti, paragraph, courses, skills,
			 experience, hobbies, career_goals, availability, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Email, p.Major, p.MBTI, p.Paragraph,
		marshalList(p.Courses), marshalList(p.Skills),
		marshalList(p.Experience), marshalList(p.Hobbies),
		marshalList(p.CareerGoals), marshalList(p.Availability),
		p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store mentee: %w", err)
	}
	return nil
}

// NewestMentee returns the most recently onboarded mentee.
func (s *Store) NewestMentee(ctx context.Context) (*model.MenteeProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, major, mbti, paragraph, courses, skills,
		       experience, hobbies, career_goals, availability, created_at
		FROM mentees ORDER BY created_at DESC LIMIT 1`)

	var p model.MenteeProfile
	var courses, skills, experience, hobbies, goals, availability string
	var createdAt time.Time
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Major, &p.MBTI, &p.Paragraph,
		&courses, &skills, &experience, &hobbies, &goals, &availability,
		&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMenteeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mentee: %w", err)
	}

	p.CreatedAt = createdAt
	p.Courses = unmarshalList(courses)
	p.Skills = unmarshalList(skills)
	p.Experience = unmarshalList(experience)
	p.Hobbies = unmarshalList(hobbies)
	p.CareerGoals = unmarshalList(goals)
	p.Availability = unmarshalList(availability)
	return &p, nil
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMentor(row rowScanner) (*model.MentorProfile, error) {
	var m model.MentorProfile
	var education, skills, tools, interests, topics, availability string
	err := row.Scan(&m.ID, &m.Name, &m.Avatar, &m.Title, &m.Employer,
		&m.Location, &m.CommStyle, &m.MBTI, &m.ExperienceYears, &m.MaxMentees,
		&education, &skills, &tools, &interests, &topics, &availability)
	if err != nil {
		return nil, err
	}
	m.Education = unmarshalList(education)
	m.Skills = unmarshalList(skills)
	m.Tools = unmarshalList(tools)
	m.Interests = unmarshalList(interests)
	m.MentorshipTopics = unmarshalList(topics)
	m.Availability = unmarshalList(availability)
	return &m, nil
}

func marshalList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalList(data string) []string {
	if data == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
