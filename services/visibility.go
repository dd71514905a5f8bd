package services

import "github.com/Dosada05/participants-admin/models"

// FlagStatus агрегат одного булева флага по всем участникам.
type FlagStatus struct {
	Mixed   bool
	AllTrue bool
}

type FlagSummary struct {
	Quiz       FlagStatus
	Review     FlagStatus
	Submission FlagStatus
}

// SummarizeFlags computes, per tracked flag, whether the values differ across
// the records and whether they are all true. An empty list is uniformly true
// and uniformly false at once, so nothing is mixed and everything is all-true.
func SummarizeFlags(records []models.Participant) FlagSummary {
	return FlagSummary{
		Quiz:       summarize(records, func(p models.Participant) bool { return p.TakeQuiz }),
		Review:     summarize(records, func(p models.Participant) bool { return p.EmailOnReview }),
		Submission: summarize(records, func(p models.Participant) bool { return p.EmailOnSubmission }),
	}
}

func summarize(records []models.Participant, flag func(models.Participant) bool) FlagStatus {
	allTrue, allFalse := true, true
	for _, p := range records {
		if flag(p) {
			allFalse = false
		} else {
			allTrue = false
		}
	}
	return FlagStatus{Mixed: !(allTrue || allFalse), AllTrue: allTrue}
}

// HiddenColumns is the column-visibility policy: a flag column is only worth
// a per-row cell when its values are mixed.
func HiddenColumns(records []models.Participant) map[string]bool {
	return hiddenFromSummary(SummarizeFlags(records))
}

func hiddenFromSummary(s FlagSummary) map[string]bool {
	hidden := make(map[string]bool, 3)
	if !s.Review.Mixed {
		hidden[models.ColumnEmailOnReview] = true
	}
	if !s.Submission.Mixed {
		hidden[models.ColumnEmailOnSubmission] = true
	}
	if !s.Quiz.Mixed {
		hidden[models.ColumnTakeQuiz] = true
	}
	return hidden
}

// Banners returns one summary line per flag that is true for everyone.
func Banners(s FlagSummary) []models.Banner {
	banners := make([]models.Banner, 0, 3)
	if s.Quiz.AllTrue {
		banners = append(banners, models.Banner{Key: models.ColumnTakeQuiz, Message: "All participants have taken the quiz"})
	}
	if s.Submission.AllTrue {
		banners = append(banners, models.Banner{Key: models.ColumnEmailOnSubmission, Message: "All participants can submit"})
	}
	if s.Review.AllTrue {
		banners = append(banners, models.Banner{Key: models.ColumnEmailOnReview, Message: "All participants can review"})
	}
	return banners
}

var participantColumns = []models.Column{
	{Key: models.ColumnID, Header: "Id", Sortable: true},
	{Key: models.ColumnName, Header: "Name", Sortable: true},
	{Key: models.ColumnFullName, Header: "Full Name", Sortable: true},
	{Key: models.ColumnEmail, Header: "Email", Sortable: true},
	{Key: models.ColumnRole, Header: "Role", Sortable: true},
	{Key: models.ColumnParent, Header: "Parent", Sortable: true},
	{Key: models.ColumnInstitution, Header: "Institution", Sortable: true},
	{Key: models.ColumnEmailOnReview, Header: "Email on Review"},
	{Key: models.ColumnEmailOnSubmission, Header: "Email on Submission"},
	{Key: models.ColumnEmailOnReviewOfReview, Header: "Email on Review of Review"},
	{Key: models.ColumnTakeQuiz, Header: "Take Quiz"},
	{Key: models.ColumnActions, Header: "Actions"},
}

func visibleColumns(hidden map[string]bool) []models.Column {
	columns := make([]models.Column, 0, len(participantColumns))
	for _, c := range participantColumns {
		if hidden[c.Key] {
			continue
		}
		columns = append(columns, c)
	}
	return columns
}

// columnVisibility are the renderer overrides: the id column is never shown
// and institution is shown only to the highest-privilege viewer.
func columnVisibility(viewer models.UserRole) map[string]bool {
	return map[string]bool{
		models.ColumnID:          false,
		models.ColumnInstitution: viewer.IsHighestPrivilege(),
	}
}
