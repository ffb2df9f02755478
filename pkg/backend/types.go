package backend

import "time"

// User is an account as returned by /accounts/me and /profile/{username}.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email,omitempty"`
	Username           string    `json:"username"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	ProfilePictureURL  string    `json:"profile_picture_url"`
	CreatedAt          time.Time `json:"created_at"`
	HasConnectedClient bool      `json:"has_connected_client,omitempty"`
	TwitterUsername    string    `json:"twitter_username,omitempty"`
	InstagramUsername  string    `json:"instagram_username,omitempty"`
	GithubUsername     string    `json:"github_username,omitempty"`
}

// Note is a synced note; deployed notes are public under their slug.
type Note struct {
	ID               string    `json:"id"`
	Source           string    `json:"source"`
	SourceIdentifier string    `json:"source_identifier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	UserID           string    `json:"user_id"`
	InsertedAt       time.Time `json:"inserted_at"`
	Deployed         bool      `json:"deployed,omitempty"`
	Slug             string    `json:"slug,omitempty"`
	Views            int       `json:"views,omitempty"`
}

// Activity is an entry of the account activity log.
type Activity struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Stats summarises an account's notes.
type Stats struct {
	TotalViews    int `json:"totalViews"`
	TotalNotes    int `json:"totalNotes"`
	DeployedNotes int `json:"deployedNotes"`
}

// Binaries are the download links of the latest macOS desktop client.
type Binaries struct {
	Intel string `json:"intel,omitempty"`
	Arm   string `json:"arm,omitempty"`
}

// Credentials identify an account at login. Exactly one of Username and
// Email is sent.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Registration is the sign-up form.
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Upload is a file relayed to the backend as multipart form data.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
