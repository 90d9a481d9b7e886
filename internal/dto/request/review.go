package request

type CreateReviewRequest struct {
	UserName  string `json:"userName" validate:"required,min=2,max=100"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=10,max=2000"`
}
