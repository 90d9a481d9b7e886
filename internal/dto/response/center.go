package response

import (
	"time"

	"inscovia/internal/data/entity"
)

type CourseResponse struct {
	Name     string          `json:"name"`
	Category entity.Category `json:"category"`
	Fee      *int            `json:"fee,omitempty"`
	Duration *string         `json:"duration,omitempty"`
}

type CenterResponse struct {
	ID                  string              `json:"id"`
	Slug                string              `json:"slug"`
	Name                string              `json:"name"`
	Category            entity.Category     `json:"category"`
	SecondaryCategories []entity.Category   `json:"secondaryCategories"`
	TeachingMode        entity.TeachingMode `json:"teachingMode"`
	State               string              `json:"state"`
	City                string              `json:"city"`
	District            string              `json:"district,omitempty"`
	Location            string              `json:"location"`
	Description         string              `json:"description"`
	Rating              float64             `json:"rating"`
	MinFee              *int                `json:"minFee,omitempty"`
	Courses             []CourseResponse    `json:"courses"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

type CenterListResponse struct {
	Centers    []CenterResponse `json:"centers"`
	Count      int              `json:"count"`
	Pagination *PaginationMeta  `json:"pagination,omitempty"`
}

// FilterOptionsResponse lists the values the listing filters accept
type FilterOptionsResponse struct {
	Categories    []entity.Category     `json:"categories"`
	TeachingModes []entity.TeachingMode `json:"teachingModes"`
	PriceRanges   []string              `json:"priceRanges"`
	States        []string              `json:"states"`
}

func CenterToResponse(center *entity.Center) CenterResponse {
	resp := CenterResponse{
		ID:                  center.ID.String(),
		Slug:                center.Slug,
		Name:                center.Name,
		Category:            center.Category,
		SecondaryCategories: center.SecondaryCategories,
		TeachingMode:        center.TeachingMode,
		State:               center.State,
		City:                center.City,
		District:            center.District,
		Location:            center.Location,
		Description:         center.Description,
		Rating:              center.Rating,
		Courses:             make([]CourseResponse, len(center.Courses)),
		CreatedAt:           center.CreatedAt,
		UpdatedAt:           center.UpdatedAt,
	}

	if resp.SecondaryCategories == nil {
		resp.SecondaryCategories = []entity.Category{}
	}
	if fee, ok := center.MinFee(); ok {
		resp.MinFee = &fee
	}
	for i, course := range center.Courses {
		resp.Courses[i] = CourseResponse{
			Name:     course.Name,
			Category: course.Category,
			Fee:      course.Fee,
			Duration: course.Duration,
		}
	}

	return resp
}

func CentersToResponse(centers []*entity.Center) []CenterResponse {
	out := make([]CenterResponse, len(centers))
	for i, c := range centers {
		out[i] = CenterToResponse(c)
	}
	return out
}
