package models

import "time"

// Role profile tables. The platform stores each participant kind in its own
// table with its own extras; the repository's ProfileProvider flattens them
// into ActorProfile so callers never enumerate role tables themselves.

type Attendee struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ActorID        string    `gorm:"uniqueIndex;not null" json:"actor_id"`
	EventID        uint      `gorm:"not null;index" json:"event_id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	JobTitle       string    `json:"job_title"`
	LookingFor     string    `json:"looking_for"`
	Offering       string    `json:"offering"`
	Industries     string    `json:"industries"`
	Regions        string    `json:"regions"`
	Languages      string    `json:"languages"`
	OpenToMeetings bool      `gorm:"default:true" json:"open_to_meetings"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Exhibitor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ActorID        string    `gorm:"uniqueIndex;not null" json:"actor_id"`
	EventID        uint      `gorm:"not null;index" json:"event_id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	CompanyName    string    `json:"company_name"`
	BoothNumber    string    `json:"booth_number"`
	LookingFor     string    `json:"looking_for"`
	Offering       string    `json:"offering"`
	Industries     string    `json:"industries"`
	Regions        string    `json:"regions"`
	Languages      string    `json:"languages"`
	OpenToMeetings bool      `gorm:"default:true" json:"open_to_meetings"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Speaker struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ActorID        string    `gorm:"uniqueIndex;not null" json:"actor_id"`
	EventID        uint      `gorm:"not null;index" json:"event_id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	TalkTitle      string    `json:"talk_title"`
	LookingFor     string    `json:"looking_for"`
	Offering       string    `json:"offering"`
	Industries     string    `json:"industries"`
	Regions        string    `json:"regions"`
	Languages      string    `json:"languages"`
	OpenToMeetings bool      `gorm:"default:true" json:"open_to_meetings"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ActorProfile is the normalized, role-agnostic view used by the scorer.
// It is derived from the role tables at query time and never stored.
type ActorProfile struct {
	ActorID        string    `json:"actor_id"`
	Role           ActorRole `json:"role"`
	EventID        uint      `json:"event_id"`
	FullName       string    `json:"full_name"`
	Headline       string    `json:"headline"`
	LookingFor     string    `json:"looking_for"`
	Offering       string    `json:"offering"`
	Industries     string    `json:"industries"`
	Regions        string    `json:"regions"`
	Languages      string    `json:"languages"`
	OpenToMeetings bool      `json:"open_to_meetings"`
}

func (a *Attendee) Profile() ActorProfile {
	return ActorProfile{
		ActorID:        a.ActorID,
		Role:           RoleAttendee,
		EventID:        a.EventID,
		FullName:       a.FullName,
		Headline:       a.JobTitle,
		LookingFor:     a.LookingFor,
		Offering:       a.Offering,
		Industries:     a.Industries,
		Regions:        a.Regions,
		Languages:      a.Languages,
		OpenToMeetings: a.OpenToMeetings,
	}
}

func (e *Exhibitor) Profile() ActorProfile {
	return ActorProfile{
		ActorID:        e.ActorID,
		Role:           RoleExhibitor,
		EventID:        e.EventID,
		FullName:       e.FullName,
		Headline:       e.CompanyName,
		LookingFor:     e.LookingFor,
		Offering:       e.Offering,
		Industries:     e.Industries,
		Regions:        e.Regions,
		Languages:      e.Languages,
		OpenToMeetings: e.OpenToMeetings,
	}
}

func (s *Speaker) Profile() ActorProfile {
	return ActorProfile{
		ActorID:        s.ActorID,
		Role:           RoleSpeaker,
		EventID:        s.EventID,
		FullName:       s.FullName,
		Headline:       s.TalkTitle,
		LookingFor:     s.LookingFor,
		Offering:       s.Offering,
		Industries:     s.Industries,
		Regions:        s.Regions,
		Languages:      s.Languages,
		OpenToMeetings: s.OpenToMeetings,
	}
}
