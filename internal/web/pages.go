package web

// Page data passed to templates. Values are display-ready.

type HomePage struct {
	Cards     []GalleryCard
	Error     string
	EmptyText string
}

type GalleryCard struct {
	Title       string
	Description string
	Href        string
	ImageURL    string
}

type DetailPage struct {
	Title       string
	Description string
	ImageURL    string
	OGImageURL  string
	WorkTitle   string
	Tags        []string
	ViewCount   string
	PostedAt    string
}

type ErrorPage struct {
	Message string
}

type LoginPage struct {
	Username string
	Next     string
	Error    string
}

type DashboardPage struct {
	Error        string
	WorksError   string
	Total        int
	StatusCounts []LabeledCount
	WorkCounts   []LabeledCount
	WorksTotal   int
	Recent       []AdminCard
	EmptyText    string
}

type LabeledCount struct {
	Key   string
	Label string
	Count int
}

type AdminIllustrationsPage struct {
	Error     string
	Tabs      []FilterTab
	Cards     []AdminCard
	EmptyText string
}

type FilterTab struct {
	Key    string
	Label  string
	Href   string
	Count  int
	Active bool
}

type AdminCard struct {
	ID          string
	Title       string
	Status      string
	StatusLabel string
	WorkTitle   string
	Slug        string
	ImageID     string
	ImageURL    string
	ViewCount   string
	PostedAt    string
	PublicURL   string
	EditURL     string
}
