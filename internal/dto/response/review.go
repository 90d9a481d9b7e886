package response

import (
	"time"

	"inscovia/internal/data/entity"
)

// ReviewResponse omits the reviewer email
type ReviewResponse struct {
	ID        string    `json:"id"`
	CenterID  string    `json:"centerId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateReviewResponse struct {
	Review       ReviewResponse `json:"review"`
	CenterRating float64        `json:"centerRating"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		CenterID:  review.CenterID.String(),
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
