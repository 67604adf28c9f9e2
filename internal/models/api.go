package models

type ChatRequest struct {
	Query string `json:"query" binding:"required"`
}

type ChatResponse struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

type CandidateRequest struct {
	Name     string `json:"name" binding:"required"`
	Party    string `json:"party" binding:"required"`
	Province string `json:"province"`
	Bio      string `json:"bio"`
	PastWork string `json:"past_work"`
}

type CandidateUpdateRequest struct {
	Name       *string `json:"name"`
	Party      *string `json:"party"`
	Province   *string `json:"province"`
	Bio        *string `json:"bio"`
	PastWork   *string `json:"past_work"`
	IsActive   *bool   `json:"is_active"`
	IsFeatured *bool   `json:"is_featured"`
}

type CandidateDetailResponse struct {
	Candidate    Candidate   `json:"candidate"`
	ProvinceName string      `json:"province_name"`
	Manifestos   []Manifesto `json:"manifestos"`
}

type CompareResponse struct {
	Candidates   []Candidate `json:"candidates"`
	AIComparison string      `json:"ai_comparison,omitempty"`
}

type ReportResponse struct {
	Candidate string         `json:"candidate"`
	Report    string         `json:"report"`
	Matrix    map[string]int `json:"strategic_matrix"`
}

type BriefingItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Time    string `json:"time"`
}

type ActivityItem struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
	Time   string `json:"time"`
}

type DashboardStats struct {
	TotalCandidates int64  `json:"total_candidates"`
	TotalManifestos int64  `json:"total_manifestos"`
	QueriesHandled  int64  `json:"queries_handled"`
	TotalViews      int64  `json:"total_views"`
	SystemStatus    string `json:"system_status"`
	LastSync        string `json:"last_sync"`
}

type DashboardResponse struct {
	Stats             DashboardStats `json:"stats"`
	TrendingTopics    []string       `json:"trending_topics"`
	SentimentVelocity []int          `json:"sentiment_velocity"`
	Briefing          []BriefingItem `json:"briefing"`
	Activity          []ActivityItem `json:"activity"`
}

type LabUploadResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
	Analysis  string `json:"analysis"`
}
