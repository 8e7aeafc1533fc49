package catalog

import "course-catalog/internal/domain"

// FallbackRecords is the built-in catalog shown when the sheet cannot be read.
func FallbackRecords() []domain.RawRecord {
	return []domain.RawRecord{
		{
			"id":        "c01",
			"title":     "Foundations of Biology",
			"short":     "Introductory course covering cell structure, taxonomy, and basics.",
			"fulldesc":  "Deep dive into the cell, tissues, and plant anatomy with hands-on examples and quizzes.",
			"category":  "Biology",
			"level":     "Beginner",
			"duration":  "4h 20m",
			"price":     "Free",
			"video_url": "",
			"resources": "Syllabus (PDF)|#;Images (ZIP)|#",
		},
		{
			"id":        "c02",
			"title":     "Frontend Web Development",
			"short":     "HTML, CSS, JavaScript fundamentals and accessible UI patterns.",
			"fulldesc":  "Hands-on projects building responsive websites and modern front-ends.",
			"category":  "Computer Science",
			"level":     "Intermediate",
			"duration":  "8h",
			"price":     "$25",
			"video_url": "",
			"resources": "Starter kit (ZIP)|#",
		},
	}
}
