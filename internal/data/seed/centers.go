// Package seed holds the sample directory used for local databases and tests.
package seed

import (
	"time"

	"inscovia/internal/data/entity"
	"inscovia/pkg/utils"

	"github.com/google/uuid"
)

var seedTime = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func fee(v int) *int { return &v }

func duration(v string) *string { return &v }

type courseSeed struct {
	name     string
	category entity.Category
	fee      *int
	duration *string
}

func center(name string, cat entity.Category, secondary []entity.Category, mode entity.TeachingMode,
	state, city, district, location, description string, rating float64, courses ...courseSeed) *entity.Center {
	slug := utils.Slugify(name)
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("inscovia/centers/"+slug))

	c := &entity.Center{
		Base: entity.Base{
			ID:        id,
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		Slug:                slug,
		Name:                name,
		Category:            cat,
		SecondaryCategories: secondary,
		TeachingMode:        mode,
		State:               state,
		City:                city,
		District:            district,
		Location:            location,
		Description:         description,
		Rating:              rating,
	}
	for i, cs := range courses {
		c.Courses = append(c.Courses, entity.Course{
			ID:       uuid.NewSHA1(id, []byte(cs.name)),
			CenterID: id,
			Position: i,
			Name:     cs.name,
			Category: cs.category,
			Fee:      cs.fee,
			Duration: cs.duration,
		})
	}
	return c
}

// Centers returns a fresh copy of the sample directory, in listing order
func Centers() []*entity.Center {
	centers := []*entity.Center{
		center("CodeCraft Institute", entity.CategoryTechnology, nil, entity.TeachingModeOffline,
			"Karnataka", "Bengaluru", "Bengaluru Urban", "Koramangala 5th Block",
			"Hands-on programming bootcamps with placement support.", 4.5,
			courseSeed{"Python Full Stack", entity.CategoryTechnology, fee(35000), duration("6 months")},
			courseSeed{"Data Structures and Algorithms", entity.CategoryTechnology, fee(15000), duration("3 months")},
		),
		center("NEET Success Academy", entity.CategoryExamCoaching, nil, entity.TeachingModeHybrid,
			"Delhi", "New Delhi", "South Delhi", "Kalu Sarai",
			"Medical entrance coaching with daily practice tests.", 4.7,
			courseSeed{"NEET Crash Course", entity.CategoryExamCoaching, fee(45000), duration("4 months")},
			courseSeed{"Biology Foundation", entity.CategoryExamCoaching, fee(20000), duration("2 months")},
		),
		center("Mumbai Management School", entity.CategoryManagement, []entity.Category{entity.CategoryFinance}, entity.TeachingModeOffline,
			"Maharashtra", "Mumbai", "Mumbai Suburban", "Andheri East",
			"MBA entrance preparation and executive programs.", 4.2,
			courseSeed{"CAT Preparation", entity.CategoryManagement, fee(60000), duration("8 months")},
			courseSeed{"Financial Modelling", entity.CategoryFinance, fee(75000), duration("10 weeks")},
		),
		center("UPSC Aspirants Hub", entity.CategoryExamCoaching, nil, entity.TeachingModeOffline,
			"Delhi", "New Delhi", "Central Delhi", "Old Rajinder Nagar",
			"Civil services coaching with mentorship and answer writing.", 4.8,
			courseSeed{"UPSC Prelims and Mains", entity.CategoryExamCoaching, fee(120000), duration("12 months")},
		),
		center("Chennai Skill Hub", entity.CategorySkillDevelopment, []entity.Category{entity.CategoryTechnology}, entity.TeachingModeOffline,
			"Tamil Nadu", "Chennai", "Chennai", "Guindy Industrial Estate",
			"Government-affiliated vocational training.", 4.0,
			courseSeed{"Electrician Training", entity.CategorySkillDevelopment, nil, duration("3 months")},
			courseSeed{"Tally and GST", entity.CategoryFinance, nil, nil},
		),
		center("DataLabs Academy", entity.CategoryTechnology, []entity.Category{entity.CategorySkillDevelopment}, entity.TeachingModeOnline,
			"Delhi", "New Delhi", "North West Delhi", "Pitampura",
			"Live online data science cohorts.", 4.6,
			courseSeed{"Data Science with Python", entity.CategoryTechnology, fee(55000), duration("6 months")},
			courseSeed{"Machine Learning", entity.CategoryTechnology, fee(75000), duration("4 months")},
		),
		center("Hyderabad Overseas Education", entity.CategoryStudyAbroad, []entity.Category{entity.CategoryLanguage}, entity.TeachingModeHybrid,
			"Telangana", "Hyderabad", "Hyderabad", "Ameerpet",
			"Admissions counselling and IELTS/TOEFL preparation.", 4.3,
			courseSeed{"IELTS Preparation", entity.CategoryLanguage, fee(12000), duration("6 weeks")},
			courseSeed{"University Application Support", entity.CategoryStudyAbroad, fee(40000), nil},
		),
		center("Malabar Tech Academy", entity.CategoryTechnology, nil, entity.TeachingModeHybrid,
			"Kerala", "Kozhikode", "Kozhikode", "Mavoor Road",
			"Affordable coding classes for students in North Kerala.", 4.4,
			courseSeed{"Python Programming", entity.CategoryTechnology, fee(9000), duration("2 months")},
			courseSeed{"Web Development", entity.CategoryTechnology, fee(18000), duration("4 months")},
		),
	}

	for i, c := range centers {
		c.CreatedAt = seedTime.Add(time.Duration(i) * time.Minute)
		c.UpdatedAt = c.CreatedAt
	}
	return centers
}
