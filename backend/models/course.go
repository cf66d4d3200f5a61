package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"

	StatusDraft     = "Draft"
	StatusPublished = "Published"

	ChapterTypeText  = "Text"
	ChapterTypeQuiz  = "Quiz"
	ChapterTypeVideo = "Video"
)

// Course keeps its full content tree (sections/chapters) and enrollment list
// as JSON documents. Content updates replace the whole document, which is why
// the merge in merge.go has to preserve identifiers explicitly.
type Course struct {
	CourseID    string         `gorm:"primaryKey" json:"courseId"`
	TeacherID   string         `gorm:"index;not null" json:"teacherId"`
	TeacherName string         `json:"teacherName"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `gorm:"index" json:"category"`
	Image       string         `json:"image"`
	Price       int            `json:"price"` // minor currency units
	Level       string         `json:"level"`
	Status      string         `json:"status"`
	Sections    datatypes.JSON `json:"sections"`
	Enrollments datatypes.JSON `json:"enrollments"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type Section struct {
	SectionID          string    `json:"sectionId"`
	SectionTitle       string    `json:"sectionTitle"`
	SectionDescription string    `json:"sectionDescription,omitempty"`
	Chapters           []Chapter `json:"chapters"`
}

type Chapter struct {
	ChapterID string         `json:"chapterId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Video     string         `json:"video,omitempty"`
	Resources []ResourceLink `json:"resources,omitempty"`
	Quiz      []QuizQuestion `json:"quiz,omitempty"`
}

type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Enrollment struct {
	UserID string `json:"userId"`
}

func (c *Course) ContentSections() ([]Section, error) {
	if len(c.Sections) == 0 {
		return nil, nil
	}
	var sections []Section
	if err := json.Unmarshal(c.Sections, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *Course) SetContentSections(sections []Section) error {
	if sections == nil {
		sections = []Section{}
	}
	raw, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	c.Sections = datatypes.JSON(raw)
	return nil
}

func (c *Course) EnrollmentList() ([]Enrollment, error) {
	if len(c.Enrollments) == 0 {
		return nil, nil
	}
	var enrollments []Enrollment
	if err := json.Unmarshal(c.Enrollments, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (c *Course) SetEnrollmentList(enrollments []Enrollment) error {
	if enrollments == nil {
		enrollments = []Enrollment{}
	}
	raw, err := json.Marshal(enrollments)
	if err != nil {
		return err
	}
	c.Enrollments = datatypes.JSON(raw)
	return nil
}

// TotalChapters counts chapters across all sections of a course content tree.
func TotalChapters(sections []Section) int {
	total := 0
	for _, section := range sections {
		total += len(section.Chapters)
	}
	return total
}
