package viewmodels

type ProjectRef struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

type ProjectLevelItem struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Identifier  string      `json:"identifier"`
	HasChildren bool        `json:"has_children"`
	Level       int         `json:"level"`
	Parent      *ProjectRef `json:"parent,omitempty"`
}

// ProjectLevelList is the document served to project pickers. Projects is never nil.
type ProjectLevelList struct {
	Projects []ProjectLevelItem `json:"projects"`
}

type ProjectDescription struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

type Member struct {
	ProjectID int64    `json:"project_id"`
	UserID    int64    `json:"user_id"`
	Roles     []string `json:"roles"`
}
