package models

// ParticipantSchemaVersion версия формы записи участника, общей для
// репозитория, сервиса, фикстур и HTTP-ответов.
const ParticipantSchemaVersion = 1

type Role string

const (
	RoleParticipant Role = "participant"
	RoleReader      Role = "reader"
	RoleReviewer    Role = "reviewer"
	RoleSubmitter   Role = "submitter"
	RoleMentor      Role = "mentor"
)

// Roles lists the assignable roles in the order the admin screen offers them.
var Roles = []Role{RoleParticipant, RoleReader, RoleReviewer, RoleSubmitter, RoleMentor}

func (r Role) Valid() bool {
	switch r {
	case RoleParticipant, RoleReader, RoleReviewer, RoleSubmitter, RoleMentor:
		return true
	default:
		return false
	}
}

func (r Role) Label() string {
	switch r {
	case RoleParticipant:
		return "Participant"
	case RoleReader:
		return "Reader"
	case RoleReviewer:
		return "Reviewer"
	case RoleSubmitter:
		return "Submitter"
	case RoleMentor:
		return "Mentor"
	default:
		return string(r)
	}
}

// Description is the tooltip text shown next to the role selector.
func (r Role) Description() string {
	switch r {
	case RoleParticipant:
		return "A Participant is someone who actively participates in tasks or events."
	case RoleReader:
		return "A Reader is someone with read-only access to content."
	case RoleReviewer:
		return "A Reviewer provides feedback or evaluation on tasks or submissions."
	case RoleSubmitter:
		return "A Submitter is someone responsible for submitting work."
	case RoleMentor:
		return "A Mentor provides guidance and support to other users."
	default:
		return ""
	}
}

type RoleRef struct {
	ID   *int `json:"id"`
	Name Role `json:"name"`
}

// GroupRef ссылается на родительскую группу участника.
type GroupRef struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type InstitutionRef struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

type Participant struct {
	ID                    int64          `json:"id"`
	Name                  string         `json:"name"`
	Email                 string         `json:"email"`
	FullName              string         `json:"full_name"`
	EmailOnReview         bool           `json:"email_on_review"`
	EmailOnSubmission     bool           `json:"email_on_submission"`
	EmailOnReviewOfReview bool           `json:"email_on_review_of_review"`
	Parent                GroupRef       `json:"parent"`
	Institution           InstitutionRef `json:"institution"`
	Role                  RoleRef        `json:"role"`
	TakeQuiz              bool           `json:"take_quiz"`
}

// Clone returns a deep copy so callers never share reference fields with
// the stored record.
func (p Participant) Clone() Participant {
	c := p
	c.Role.ID = cloneInt(p.Role.ID)
	c.Parent.ID = cloneInt(p.Parent.ID)
	c.Parent.Name = cloneString(p.Parent.Name)
	c.Institution.ID = cloneInt(p.Institution.ID)
	c.Institution.Name = cloneString(p.Institution.Name)
	return c
}

func IntPtr(v int) *int {
	return &v
}

func StringPtr(v string) *string {
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
