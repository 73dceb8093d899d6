package viewmodels

type VersionOption struct {
	ID       int64
	Name     string
	Selected bool
}

type VersionOptionGroup struct {
	Label   string
	Options []VersionOption
}

type VersionLink struct {
	ID   int64  `json:"id"`
	HTML string `json:"html"`
}
