package request

import "strings"

// Normalize trims surrounding whitespace so length rules apply to what is stored
func (r *CreateReviewRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.UserEmail = strings.TrimSpace(r.UserEmail)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *CenterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.TeachingMode = strings.TrimSpace(r.TeachingMode)
	r.State = strings.TrimSpace(r.State)
	r.City = strings.TrimSpace(r.City)
	r.District = strings.TrimSpace(r.District)
	r.Location = strings.TrimSpace(r.Location)
	r.Description = strings.TrimSpace(r.Description)
	for i := range r.SecondaryCategories {
		r.SecondaryCategories[i] = strings.TrimSpace(r.SecondaryCategories[i])
	}
	for i := range r.Courses {
		c := &r.Courses[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Category = strings.TrimSpace(c.Category)
		if c.Duration != nil {
			d := strings.TrimSpace(*c.Duration)
			c.Duration = &d
		}
	}
}

// Passwords are left untouched.
func (r *RegisterSendOTPRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		r.Phone = &p
	}
}

func (r *VerifyOTPRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.OTP = strings.TrimSpace(r.OTP)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r *ForgotPasswordRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r *ResetPasswordRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.OTP = strings.TrimSpace(r.OTP)
}

func (r *SendOTPRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r *ChatRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
	for i := range r.History {
		r.History[i].Content = strings.TrimSpace(r.History[i].Content)
	}
}
