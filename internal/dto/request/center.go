package request

type CourseRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=150"`
	Category string  `json:"category" validate:"required"`
	Fee      *int    `json:"fee,omitempty" validate:"omitempty,gt=0"`
	Duration *string `json:"duration,omitempty" validate:"omitempty,max=60"`
}

type CenterRequest struct {
	Name                string          `json:"name" validate:"required,min=2,max=150"`
	Category            string          `json:"category" validate:"required"`
	SecondaryCategories []string        `json:"secondaryCategories" validate:"max=3,unique"`
	TeachingMode        string          `json:"teachingMode" validate:"required,oneof=ONLINE OFFLINE HYBRID"`
	State               string          `json:"state" validate:"required,max=80"`
	City                string          `json:"city" validate:"required,max=80"`
	District            string          `json:"district" validate:"max=80"`
	Location            string          `json:"location" validate:"max=500"`
	Description         string          `json:"description" validate:"max=5000"`
	Courses             []CourseRequest `json:"courses" validate:"max=50,dive"`
}
