package nylas

// Account represents a Nylas account.
type Account struct {
	ID               string `json:"id"`
	Object           string `json:"object"`
	AccountID        string `json:"account_id"`
	Name             string `json:"name"`
	Provider         string `json:"provider"`
	OrganizationUnit string `json:"organization_unit"`
	SyncState        string `json:"sync_state"`
	LinkedAt         int64  `json:"linked_at"`
	EmailAddress     string `json:"email_address"`
}

// EmailAddress represents an email address with an optional display name.
type EmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// File represents an attachment on a message.
type File struct {
	ID                 string `json:"id"`
	ContentDisposition string `json:"content_disposition"`
	ContentType        string `json:"content_type"`
	Filename           string `json:"filename,omitempty"`
	Size               int64  `json:"size"`
}

// Participant represents a participant in a calendar event.
type Participant struct {
	Comment     string `json:"comment,omitempty"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Status      string `json:"status"`
}

// Event represents a calendar event attached to a message.
type Event struct {
	ID           string           `json:"id"`
	Object       string           `json:"object"`
	AccountID    string           `json:"account_id"`
	CalendarID   string           `json:"calendar_id"`
	MessageID    string           `json:"message_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Location     string           `json:"location"`
	Owner        string           `json:"owner"`
	Status       string           `json:"status"`
	Busy         bool             `json:"busy"`
	ReadOnly     bool             `json:"read_only"`
	Participants []Participant    `json:"participants"`
	When         map[string]int64 `json:"when"`
}

// Folder represents a folder on a message (provider accounts that use
// folders rather than labels).
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Label represents a label on a message.
type Label struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Message represents an email message.
type Message struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	AccountID string         `json:"account_id"`
	ThreadID  string         `json:"thread_id"`
	Subject   string         `json:"subject"`
	From      []EmailAddress `json:"from"`
	To        []EmailAddress `json:"to"`
	Cc        []EmailAddress `json:"cc"`
	Bcc       []EmailAddress `json:"bcc"`
	ReplyTo   []EmailAddress `json:"reply_to"`
	Date      int64          `json:"date"`
	Unread    bool           `json:"unread"`
	Starred   bool           `json:"starred"`
	Snippet   string         `json:"snippet"`
	Body      string         `json:"body"`
	Files     []File         `json:"files"`
	Events    []Event        `json:"events"`
	Folder    *Folder        `json:"folder,omitempty"`
	Labels    []Label        `json:"labels"`
}

// Thread represents a conversation thread.
type Thread struct {
	ID                    string         `json:"id"`
	Object                string         `json:"object"`
	AccountID             string         `json:"account_id"`
	Subject               string         `json:"subject"`
	Participants          []EmailAddress `json:"participants"`
	Snippet               string         `json:"snippet"`
	Unread                bool           `json:"unread"`
	Starred               bool           `json:"starred"`
	FirstMessageTimestamp int64          `json:"first_message_timestamp"`
	LastMessageTimestamp  int64          `json:"last_message_timestamp"`
	MessageIDs            []string       `json:"message_ids"`
	Labels                []Label        `json:"labels"`
}

// Calendar represents a calendar belonging to the account.
type Calendar struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	AccountID   string `json:"account_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ReadOnly    bool   `json:"read_only"`
}
