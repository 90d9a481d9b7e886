package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Category is the subject-matter tag of a center or course
type Category string

const (
	CategoryTechnology       Category = "TECHNOLOGY"
	CategoryManagement       Category = "MANAGEMENT"
	CategorySkillDevelopment Category = "SKILL_DEVELOPMENT"
	CategoryExamCoaching     Category = "EXAM_COACHING"
	CategoryStudyAbroad      Category = "STUDY_ABROAD"
	CategoryLanguage         Category = "LANGUAGE"
	CategoryDesign           Category = "DESIGN"
	CategoryHealthcare       Category = "HEALTHCARE"
	CategoryFinance          Category = "FINANCE"
	CategoryOther            Category = "OTHER"
)

// Categories lists every known category in display order
var Categories = []Category{
	CategoryTechnology,
	CategoryManagement,
	CategorySkillDevelopment,
	CategoryExamCoaching,
	CategoryStudyAbroad,
	CategoryLanguage,
	CategoryDesign,
	CategoryHealthcare,
	CategoryFinance,
	CategoryOther,
}

// ParseCategory returns false for anything outside the closed set
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnology, CategoryManagement, CategorySkillDevelopment,
		CategoryExamCoaching, CategoryStudyAbroad, CategoryLanguage,
		CategoryDesign, CategoryHealthcare, CategoryFinance, CategoryOther:
		return true
	}
	return false
}

type TeachingMode string

const (
	TeachingModeOnline  TeachingMode = "ONLINE"
	TeachingModeOffline TeachingMode = "OFFLINE"
	TeachingModeHybrid  TeachingMode = "HYBRID"
)

func ParseTeachingMode(s string) (TeachingMode, bool) {
	m := TeachingMode(s)
	return m, m.Valid()
}

func (m TeachingMode) Valid() bool {
	switch m {
	case TeachingModeOnline, TeachingModeOffline, TeachingModeHybrid:
		return true
	}
	return false
}

const MaxSecondaryCategories = 3

var (
	ErrSecondaryIncludesPrimary = errors.New("secondary categories must not include the primary category")
	ErrTooManySecondary         = fmt.Errorf("at most %d secondary categories are allowed", MaxSecondaryCategories)
)

// FieldError names the json field a center invariant failed on
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

type Center struct {
	Base
	InstituteID         *uuid.UUID   `db:"institute_id"`
	Slug                string       `db:"slug"`
	Name                string       `db:"name"`
	Category            Category     `db:"category"`
	SecondaryCategories []Category   `db:"secondary_categories"`
	TeachingMode        TeachingMode `db:"teaching_mode"`
	State               string       `db:"state"`
	City                string       `db:"city"`
	District            string       `db:"district"`
	Location            string       `db:"location"`
	Description         string       `db:"description"`
	Rating              float64      `db:"rating"`
	Courses             []Course     `db:"-"`
}

type Course struct {
	ID       uuid.UUID `db:"id"`
	CenterID uuid.UUID `db:"center_id"`
	Position int       `db:"position"`
	Name     string    `db:"name"`
	Category Category  `db:"category"`
	Fee      *int      `db:"fee"`
	Duration *string   `db:"duration"`
}

// HasCategory reports whether c is the primary or one of the secondary categories
func (c *Center) HasCategory(cat Category) bool {
	if c.Category == cat {
		return true
	}
	for _, sc := range c.SecondaryCategories {
		if sc == cat {
			return true
		}
	}
	return false
}

// MinFee returns the lowest positive course fee; ok is false when no course has one
func (c *Center) MinFee() (int, bool) {
	minFee, found := 0, false
	for _, course := range c.Courses {
		if course.Fee == nil || *course.Fee <= 0 {
			continue
		}
		if !found || *course.Fee < minFee {
			minFee, found = *course.Fee, true
		}
	}
	return minFee, found
}

// IsOwnedBy reports whether the center belongs to the institute
func (c *Center) IsOwnedBy(instituteID uuid.UUID) bool {
	return c.InstituteID != nil && *c.InstituteID == instituteID
}

// Validate checks the category invariants of a center and its courses
func (c *Center) Validate() error {
	if !c.Category.Valid() {
		return fieldError("category", fmt.Errorf("unknown category %q", c.Category))
	}
	if !c.TeachingMode.Valid() {
		return fieldError("teachingMode", fmt.Errorf("unknown teaching mode %q", c.TeachingMode))
	}
	if len(c.SecondaryCategories) > MaxSecondaryCategories {
		return fieldError("secondaryCategories", ErrTooManySecondary)
	}
	seen := make(map[Category]bool, len(c.SecondaryCategories))
	for _, sc := range c.SecondaryCategories {
		if !sc.Valid() {
			return fieldError("secondaryCategories", fmt.Errorf("unknown secondary category %q", sc))
		}
		if sc == c.Category {
			return fieldError("secondaryCategories", ErrSecondaryIncludesPrimary)
		}
		if seen[sc] {
			return fieldError("secondaryCategories", fmt.Errorf("duplicate secondary category %q", sc))
		}
		seen[sc] = true
	}
	for i, course := range c.Courses {
		if !course.Category.Valid() {
			return fieldError(fmt.Sprintf("courses[%d].category", i), fmt.Errorf("unknown category %q", course.Category))
		}
		if course.Fee != nil && *course.Fee <= 0 {
			return fieldError(fmt.Sprintf("courses[%d].fee", i), errors.New("fee must be positive"))
		}
	}
	return nil
}
