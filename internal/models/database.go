package models

// GORM models

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Province codes stored on Candidate records. Nepal has seven provinces;
// the code is persisted, the display name lives in ProvinceNames.
const (
	ProvinceKoshi         = "1"
	ProvinceMadhesh       = "2"
	ProvinceBagmati       = "3"
	ProvinceGandaki       = "4"
	ProvinceLumbini       = "5"
	ProvinceKarnali       = "6"
	ProvinceSudurpashchim = "7"
)

var ProvinceNames = map[string]string{
	ProvinceKoshi:         "Koshi Province",
	ProvinceMadhesh:       "Madhesh Province",
	ProvinceBagmati:       "Bagmati Province",
	ProvinceGandaki:       "Gandaki Province",
	ProvinceLumbini:       "Lumbini Province",
	ProvinceKarnali:       "Karnali Province",
	ProvinceSudurpashchim: "Sudurpashchim Province",
}

// Query log sources
const (
	QuerySourceChat = "chat"
	QuerySourceLab  = "lab"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Candidate represents a political candidate in the directory
type Candidate struct {
	BaseModel
	Name           string `json:"name" gorm:"not null"`
	Party          string `json:"party" gorm:"not null"`
	Province       string `json:"province" gorm:"default:'3'"`
	ImagePath      string `json:"image_path"`
	Bio            string `json:"bio" gorm:"type:text"`
	PastWork       string `json:"past_work" gorm:"type:text"`
	AIWorkAnalysis string `json:"ai_work_analysis" gorm:"type:text"`
	Slug           string `json:"slug" gorm:"uniqueIndex"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	IsFeatured     bool   `json:"is_featured" gorm:"default:false"`
	ViewCount      int    `json:"view_count" gorm:"default:0"`
	SearchCount    int    `json:"search_count" gorm:"default:0"`

	// Associations
	Manifestos []Manifesto `json:"manifestos,omitempty" gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
}

// Manifesto is a candidate's uploaded policy document (Ghosada Patra)
// plus the AI-derived fields populated once by the analysis pipeline.
type Manifesto struct {
	BaseModel
	CandidateID      uint   `json:"candidate_id" gorm:"not null;index"`
	FilePath         string `json:"file_path" gorm:"not null"`
	VisionSummary    string `json:"vision_summary" gorm:"type:text"`
	KeyPromises      string `json:"key_promises" gorm:"type:text"`
	AIVisionAnalysis string `json:"ai_vision_analysis" gorm:"type:text"`

	// Associations
	Candidate Candidate `json:"-" gorm:"foreignKey:CandidateID"`
}

// QueryLog is an append-only record of one chat or lab turn.
type QueryLog struct {
	BaseModel
	Query          string  `json:"query" gorm:"type:text;not null"`
	Response       string  `json:"response" gorm:"type:text"`
	Source         string  `json:"source" gorm:"default:'chat'"`
	SentimentScore float64 `json:"sentiment_score" gorm:"default:0"`
}

// EngagementHistory is an append-only per-candidate view/search event.
// Writes are deduplicated within a 1-hour window at the service layer.
type EngagementHistory struct {
	BaseModel
	CandidateID uint `json:"candidate_id" gorm:"not null;index"`
	Views       int  `json:"views" gorm:"default:0"`
	Searches    int  `json:"searches" gorm:"default:0"`

	// Associations
	Candidate Candidate `json:"-" gorm:"foreignKey:CandidateID"`
}

// ResearchAnalysis is a persisted analysis-lab result.
type ResearchAnalysis struct {
	BaseModel
	Title           string `json:"title" gorm:"not null"`
	DocumentsCount  int    `json:"documents_count" gorm:"default:1"`
	AnalysisContent string `json:"analysis_content" gorm:"type:text"`
	ContextUsed     string `json:"context_used" gorm:"type:text"`
}

// ConversationNamespace separates the main assistant's history from the
// analysis lab's so the two features never bleed into each other.
type ConversationNamespace string

const (
	NamespaceChat ConversationNamespace = "chat"
	NamespaceLab  ConversationNamespace = "lab"
)

type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ConversationStore holds per-session conversation state. Histories are
// FIFO-trimmed to a per-namespace cap by the implementation.
type ConversationStore interface {
	History(ctx context.Context, namespace ConversationNamespace, session string) ([]ConversationTurn, error)
	AppendExchange(ctx context.Context, namespace ConversationNamespace, session, query, response string) error
	LabContext(ctx context.Context, session string) (string, error)
	SetLabContext(ctx context.Context, session, content string) error
	LabResult(ctx context.Context, session string) (string, error)
	SetLabResult(ctx context.Context, session, result string) error
}

// Database interfaces for repository pattern
type CandidateRepository interface {
	Create(candidate *Candidate) error
	GetByID(id uint) (*Candidate, error)
	GetBySlug(slug string) (*Candidate, error)
	GetByIDs(ids []uint) ([]Candidate, error)
	GetAll() ([]Candidate, error)
	GetActive() ([]Candidate, error)
	GetRecent(limit int) ([]Candidate, error)
	Search(term string) ([]Candidate, error)
	Update(candidate *Candidate) error
	UpdateWorkAnalysis(id uint, analysis string) error
	IncrementViewCount(id uint) error
	IncrementSearchCount(id uint) error
	SlugExists(slug string) (bool, error)
	Count() (int64, error)
	TotalViews() (int64, error)
	Delete(id uint) error
}

type ManifestoRepository interface {
	Create(manifesto *Manifesto) error
	GetByID(id uint) (*Manifesto, error)
	GetByCandidate(candidateID uint) ([]Manifesto, error)
	GetLatestForCandidate(candidateID uint) (*Manifesto, error)
	Update(manifesto *Manifesto) error
	Count() (int64, error)
}

type QueryLogRepository interface {
	Create(log *QueryLog) error
	GetRecent(limit int) ([]QueryLog, error)
	GetAllOrdered() ([]QueryLog, error)
	Count() (int64, error)
}

type EngagementRepository interface {
	Create(event *EngagementHistory) error
	HasRecent(candidateID uint, since time.Time) (bool, error)
	GetSince(candidateID uint, since time.Time) ([]EngagementHistory, error)
}

type ResearchAnalysisRepository interface {
	Create(analysis *ResearchAnalysis) error
	GetRecent(limit int) ([]ResearchAnalysis, error)
}

// TableName methods for custom table names
func (Candidate) TableName() string         { return "candidates" }
func (Manifesto) TableName() string         { return "manifestos" }
func (QueryLog) TableName() string          { return "query_logs" }
func (EngagementHistory) TableName() string { return "engagement_history" }
func (ResearchAnalysis) TableName() string  { return "research_analyses" }

// Model validation methods
func (c *Candidate) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("candidate name is required")
	}
	if c.Party == "" {
		return fmt.Errorf("candidate party is required")
	}
	if _, ok := ProvinceNames[c.Province]; !ok {
		return fmt.Errorf("invalid province code: %s", c.Province)
	}
	return nil
}

func (m *Manifesto) Validate() error {
	if m.CandidateID == 0 {
		return fmt.Errorf("candidate ID is required")
	}
	if m.FilePath == "" {
		return fmt.Errorf("manifesto file path is required")
	}
	return nil
}

func (q *QueryLog) Validate() error {
	if q.Query == "" {
		return fmt.Errorf("query text is required")
	}
	if q.Source != QuerySourceChat && q.Source != QuerySourceLab {
		return fmt.Errorf("invalid query source: %s", q.Source)
	}
	return nil
}

// GORM hooks
func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.Province == "" {
		c.Province = ProvinceBagmati
	}
	return c.Validate()
}

func (c *Candidate) BeforeUpdate(tx *gorm.DB) error {
	return c.Validate()
}

func (m *Manifesto) BeforeCreate(tx *gorm.DB) error {
	return m.Validate()
}

func (q *QueryLog) BeforeCreate(tx *gorm.DB) error {
	if q.Source == "" {
		q.Source = QuerySourceChat
	}
	return q.Validate()
}
