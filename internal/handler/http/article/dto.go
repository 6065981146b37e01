package article

import (
	"time"

	"copydesk/internal/domain/entity"
	"copydesk/internal/usecase/lifecycle"
	"copydesk/internal/usecase/quality"
	"copydesk/internal/usecase/review"
)

type faqResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type articleResponse struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Excerpt         string        `json:"excerpt"`
	Content         string        `json:"content,omitempty"`
	ContentType     string        `json:"content_type"`
	TargetKeywords  []string      `json:"target_keywords"`
	FAQs            []faqResponse `json:"faqs"`
	WordCount       int           `json:"word_count"`
	InternalLinks   int           `json:"internal_links"`
	ExternalLinks   int           `json:"external_links"`
	Status          string        `json:"status"`
	PendingSince    *time.Time    `json:"pending_since,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	PublishedURL    string        `json:"published_url,omitempty"`
	LinksRelaxed    bool          `json:"links_relaxed"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// toArticleResponse converts an article for the API. With includeContent false
// the HTML body is omitted, which keeps list responses small.
func toArticleResponse(a *entity.Article, includeContent bool) articleResponse {
	faqs := make([]faqResponse, 0, len(a.FAQs))
	for _, f := range a.FAQs {
		faqs = append(faqs, faqResponse{Question: f.Question, Answer: f.Answer})
	}

	resp := articleResponse{
		ID:              a.ID,
		Title:           a.Title,
		Excerpt:         a.Excerpt,
		ContentType:     string(a.ContentType),
		TargetKeywords:  a.TargetKeywords,
		FAQs:            faqs,
		WordCount:       a.WordCount,
		InternalLinks:   a.InternalLinks,
		ExternalLinks:   a.ExternalLinks,
		Status:          string(a.Status),
		PendingSince:    a.PendingSince,
		RejectionReason: a.RejectionReason,
		PublishedURL:    a.PublishedURL,
		LinksRelaxed:    a.LinksRelaxed,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if includeContent {
		resp.Content = a.Content
	}
	return resp
}

type checkResponse struct {
	Pass     bool `json:"pass"`
	Current  int  `json:"current"`
	Target   int  `json:"target"`
	Critical bool `json:"critical"`
}

type qualityResponse struct {
	Checks     map[string]checkResponse `json:"checks"`
	Score      int                      `json:"score"`
	CanPublish bool                     `json:"can_publish"`
}

func toQualityResponse(r *quality.Report) qualityResponse {
	checks := make(map[string]checkResponse, len(r.Checks))
	for name, c := range r.Checks {
		checks[name] = checkResponse{
			Pass:     c.Pass,
			Current:  c.Current,
			Target:   c.Target,
			Critical: c.Critical,
		}
	}
	return qualityResponse{Checks: checks, Score: r.Score, CanPublish: r.CanPublish}
}

type clockResponse struct {
	HoursElapsed   float64 `json:"hours_elapsed"`
	HoursRemaining float64 `json:"hours_remaining"`
	Urgency        string  `json:"urgency"`
	Expired        bool    `json:"expired"`
}

func toClockResponse(r *lifecycle.ClockReport) clockResponse {
	return clockResponse{
		HoursElapsed:   r.HoursElapsed,
		HoursRemaining: r.HoursRemaining,
		Urgency:        string(r.Urgency),
		Expired:        r.Expired,
	}
}

type bulkItemResponse struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type bulkResponse struct {
	Results   []bulkItemResponse `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

func toBulkResponse(results []review.BulkResult) bulkResponse {
	resp := bulkResponse{Results: make([]bulkItemResponse, 0, len(results))}
	for _, r := range results {
		item := bulkItemResponse{ID: r.ID, OK: r.Err == nil}
		if r.Err != nil {
			item.Error = r.Err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}
