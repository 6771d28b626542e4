package models

import (
	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

// Request модели

// ListRequest фильтры каталога, все поля опциональны
type ListRequest struct {
	Category *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   *string
}

// Response модели

// ExperienceResponse карточка experience
type ExperienceResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Highlights  []string `json:"highlights"`
	Included    []string `json:"included"`
}

// SlotResponse слот с текущим остатком мест
type SlotResponse struct {
	ID             int64  `json:"id"`
	ExperienceID   int64  `json:"experienceId"`
	Date           string `json:"date"` // "2025-10-15"
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// ExperienceDetailsResponse experience вместе с будущими слотами, где есть места
type ExperienceDetailsResponse struct {
	ExperienceResponse
	Slots []SlotResponse `json:"slots"`
}

// FromDomainExperience конвертирует domain.Experience в ExperienceResponse
func FromDomainExperience(e *domain.Experience) ExperienceResponse {
	highlights := e.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	included := e.Included
	if included == nil {
		included = []string{}
	}

	return ExperienceResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Price:       e.Price.InexactFloat64(),
		Duration:    e.Duration,
		Category:    e.Category,
		ImageURL:    e.ImageURL,
		Rating:      e.Rating,
		ReviewCount: e.ReviewCount,
		Highlights:  highlights,
		Included:    included,
	}
}

// FromDomainExperienceList конвертирует список experiences
func FromDomainExperienceList(list []*domain.Experience) []ExperienceResponse {
	result := make([]ExperienceResponse, 0, len(list))
	for _, e := range list {
		result = append(result, FromDomainExperience(e))
	}
	return result
}

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:             s.ID,
		ExperienceID:   s.ExperienceID,
		Date:           s.Date.Format(domain.DateFormat),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		AvailableSpots: s.AvailableSpots,
		TotalSpots:     s.TotalSpots,
	}
}
