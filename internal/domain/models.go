// Package domain defines the persistence models for the helpdesk: users,
// tickets, issue types, keywords, chats, and departments. These types are
// mapped with GORM and form the relational core of the application.
package domain

import (
	"time"
)

// Canonical ticket statuses. Status is stored as free-form text (the schema
// does not constrain it), but these are the values the application writes
// and the dashboard groups by.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// User represents an employee who can submit tickets. Tickets reference a
// user by ID, and the reference is validated at ticket-creation time.
type User struct {
	ID        uint      `json:"user_id"    gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// IssueType is a categorization taxonomy row referenced by tickets
// (e.g. "Hardware", "Network", "Account access").
type IssueType struct {
	ID          uint   `json:"issue_type_id" gorm:"primaryKey;autoIncrement"`
	Description string `json:"description"   gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for IssueType.
func (IssueType) TableName() string { return "issue_types" }

// Keyword is a tag/label row used for ticket search
// (e.g. "cannot login", "printer").
type Keyword struct {
	ID   uint   `json:"keyword_id" gorm:"primaryKey;autoIncrement"`
	Text string `json:"text"       gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Keyword.
func (Keyword) TableName() string { return "keywords" }

// Chat holds the transcript of a support conversation. A chat is optionally
// owned one-to-one by a ticket; its ID is assigned by the database on insert
// and immutable thereafter.
type Chat struct {
	ID         uint   `json:"chat_id"    gorm:"primaryKey;autoIncrement"`
	Transcript string `json:"transcript" gorm:"type:text"`
}

// TableName returns the database table name for Chat.
func (Chat) TableName() string { return "chats" }

// Department is a read-only organizational listing. The schema records no
// relationship between departments and tickets.
type Department struct {
	ID   uint   `json:"department_id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name"          gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Department.
func (Department) TableName() string { return "departments" }

// Ticket is a support request record.
//
// Fields:
//   - ID: database-assigned primary key, immutable after insert.
//   - UserID / IssueTypeID: required foreign keys; existence is validated by
//     the service layer before insert rather than by DB constraints alone.
//   - KeywordID: optional tag used by the keyword search routes.
//   - ChatID: optional one-to-one link to a chat transcript, set when the
//     ticket is created through the JSON API.
//   - Status: free-form text; see the Status* constants for canonical values.
//   - Priority: free-form text (e.g. "high", "low"); never empty after an
//     update, enforced by the service layer.
//   - DateCreated: set at insert time.
//   - DateResolved: nil until the ticket is resolved.
//   - IsWithdrawn: marks tickets withdrawn by the submitter. Not a soft-delete
//     marker; deletion is physical removal.
type Ticket struct {
	ID           uint       `json:"ticket_id"            gorm:"primaryKey;autoIncrement"`
	UserID       uint       `json:"user_id"              gorm:"not null;index"`
	IssueTypeID  uint       `json:"issue_type_id"        gorm:"not null;index"`
	KeywordID    *uint      `json:"keyword_id,omitempty" gorm:"index"`
	ChatID       *uint      `json:"chat_id,omitempty"`
	Status       string     `json:"status"               gorm:"type:varchar(32);not null"`
	Priority     string     `json:"priority"             gorm:"type:varchar(32);not null"`
	DateCreated  time.Time  `json:"date_created"         gorm:"index"`
	DateResolved *time.Time `json:"date_resolved,omitempty"`
	IsWithdrawn  bool       `json:"is_withdrawn"`

	// FK associations. Deleting a user or issue type is not part of the API
	// surface, so the default RESTRICT behavior stands. A ticket's chat is
	// removed alongside it by the repo layer.
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID"`
	IssueType IssueType `json:"-" gorm:"foreignKey:IssueTypeID;references:ID"`
	Keyword   *Keyword  `json:"-" gorm:"foreignKey:KeywordID;references:ID"`
	Chat      *Chat     `json:"-" gorm:"foreignKey:ChatID;references:ID"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }

// TicketRow is the joined projection returned by listing, detail, and search
// queries: the ticket columns plus the human-readable issue-type description
// and keyword text from the joined lookup tables.
type TicketRow struct {
	ID               uint       `json:"ticket_id"`
	UserID           uint       `json:"user_id"`
	IssueTypeID      uint       `json:"issue_type_id"`
	KeywordID        *uint      `json:"keyword_id,omitempty"`
	ChatID           *uint      `json:"chat_id,omitempty"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	DateCreated      time.Time  `json:"date_created"`
	DateResolved     *time.Time `json:"date_resolved,omitempty"`
	IsWithdrawn      bool       `json:"is_withdrawn"`
	IssueDescription string     `json:"issue_description"`
	KeywordText      string     `json:"keyword_text,omitempty"`
}
