package cases

import "time"

// VideoCase is one entry of the video library. The json names are the
// wire contract shared with the web client; the bson layout mirrors the
// spreadsheet columns the library was originally stored in (keywords
// are kept as a single comma-joined cell, see keywords.go).
type VideoCase struct {
	ID          string   `json:"id" bson:"_id"`
	Category    string   `json:"category" bson:"category"`
	Subcategory string   `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Region      string   `json:"region" bson:"region"`
	RobotType   string   `json:"robotType" bson:"robot_type"`
	ClientName  string   `json:"clientName" bson:"client_name"`
	VideoURL    string   `json:"videoUrl" bson:"video_url"`
	Rating      int      `json:"rating" bson:"rating"`
	Keywords    []string `json:"keywords" bson:"-"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`

	CreatedAt time.Time `json:"-" bson:"created_at"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

// Draft is a case as submitted by a caller: everything but the
// server-assigned id and timestamps.
type Draft struct {
	Category    string   `json:"category" validate:"required"`
	Subcategory string   `json:"subcategory"`
	Region      string   `json:"region" validate:"required"`
	RobotType   string   `json:"robotType" validate:"required"`
	ClientName  string   `json:"clientName" validate:"required"`
	VideoURL    string   `json:"videoUrl" validate:"omitempty,url"`
	Rating      int      `json:"rating" validate:"required,gte=1,lte=5"`
	Keywords    []string `json:"keywords" validate:"keywords"`
	Description string   `json:"description"`
}

// FilterState is the ephemeral client-side filter selection. An empty
// field is a wildcard. Search is a case-insensitive substring query;
// the three selectors are exact, case-sensitive matches.
type FilterState struct {
	Search    string `json:"search"`
	Category  string `json:"category"`
	Region    string `json:"region"`
	RobotType string `json:"robotType"`
}

// IsZero reports whether the filter selects everything.
func (f FilterState) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.Region == "" && f.RobotType == ""
}
