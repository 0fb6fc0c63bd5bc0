package models

import (
	"time"

	"github.com/google/uuid"
)

// NotAvailable is written for scalar recipe fields the page did not provide.
const NotAvailable = "N/A"

type Recipe struct {
	URL          string            `json:"url"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ImageURL     string            `json:"image_url"`
	Ingredients  []string          `json:"ingredients"`
	Instructions []string          `json:"instructions"`
	Rating       string            `json:"rating"`
	PrepTime     string            `json:"prep_time"`
	CookTime     string            `json:"cook_time"`
	TotalTime    string            `json:"total_time"`
	Nutrition    map[string]string `json:"nutrition"`
	Categories   []string          `json:"categories"`
	Keywords     []string          `json:"keywords"`
}

type RobotsSummary struct {
	Allowed    []string `json:"Allowed"`
	Disallowed []string `json:"Disallowed"`
	Sitemaps   []string `json:"Sitemaps"`
	CrawlDelay *string  `json:"Crawl-Delay"`
}

type BatchRun struct {
	ID         uuid.UUID `json:"id"`
	IndexURL   string    `json:"index_url"`
	OutputPath string    `json:"output_path"`
	Candidates int       `json:"candidates"`
	Written    int       `json:"written"`
	Discarded  int       `json:"discarded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
