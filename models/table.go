package models

// Ключи колонок таблицы участников.
const (
	ColumnID                    = "id"
	ColumnName                  = "name"
	ColumnFullName              = "full_name"
	ColumnEmail                 = "email"
	ColumnRole                  = "role"
	ColumnParent                = "parent"
	ColumnInstitution           = "institution"
	ColumnEmailOnReview         = "email_on_review"
	ColumnEmailOnSubmission     = "email_on_submission"
	ColumnEmailOnReviewOfReview = "email_on_review_of_review"
	ColumnTakeQuiz              = "take_quiz"
	ColumnActions               = "actions"
)

// Column describes one column for the table renderer.
type Column struct {
	Key      string `json:"key"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
}

type Banner struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type RoleOption struct {
	Name        Role   `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// TableView is everything the admin screen needs to render the participant
// table: the filtered column list, the rows, the renderer's per-column
// visibility overrides and the summary banners.
type TableView struct {
	Title            string          `json:"title"`
	SchemaVersion    int             `json:"schema_version"`
	Columns          []Column        `json:"columns"`
	Rows             []Participant   `json:"rows"`
	ColumnVisibility map[string]bool `json:"column_visibility"`
	Banners          []Banner        `json:"banners"`
}
