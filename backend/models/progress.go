package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// UserCourseProgress is the per-(user, course) record of which chapters the
// learner has marked complete. OverallProgress is derived from the course's
// current content on every update and is never authoritative on its own.
type UserCourseProgress struct {
	UserID                string         `gorm:"primaryKey" json:"userId"`
	CourseID              string         `gorm:"primaryKey" json:"courseId"`
	EnrollmentDate        time.Time      `json:"enrollmentDate"`
	OverallProgress       float64        `json:"overallProgress"`
	Sections              datatypes.JSON `json:"sections"`
	LastAccessedTimestamp time.Time      `json:"lastAccessedTimestamp"`
}

type SectionProgress struct {
	SectionID string            `json:"sectionId"`
	Chapters  []ChapterProgress `json:"chapters"`
}

type ChapterProgress struct {
	ChapterID string `json:"chapterId"`
	Completed bool   `json:"completed"`
}

// ProgressUpdate is one element of the partial update batch a client submits.
type ProgressUpdate struct {
	SectionID string
	ChapterID string
	Completed bool
}

func (p *UserCourseProgress) SectionRecords() ([]SectionProgress, error) {
	if len(p.Sections) == 0 {
		return nil, nil
	}
	var records []SectionProgress
	if err := json.Unmarshal(p.Sections, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (p *UserCourseProgress) SetSectionRecords(records []SectionProgress) error {
	if records == nil {
		records = []SectionProgress{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	p.Sections = datatypes.JSON(raw)
	return nil
}

// ApplyUpdates merges a batch of chapter completion updates into the progress
// document and recomputes OverallProgress against the course's current
// content. Updates are applied in order, so a duplicate (section, chapter)
// pair within one batch resolves to the last value. Section or chapter
// records missing from the document are created on first touch; identifiers
// unknown to the course are stored as-is and simply never counted.
func (p *UserCourseProgress) ApplyUpdates(courseSections []Section, updates []ProgressUpdate, now time.Time) error {
	records, err := p.SectionRecords()
	if err != nil {
		return err
	}

	for _, update := range updates {
		records = applyUpdate(records, update)
	}

	p.OverallProgress = OverallProgress(records, courseSections)
	p.LastAccessedTimestamp = now
	return p.SetSectionRecords(records)
}

func applyUpdate(records []SectionProgress, update ProgressUpdate) []SectionProgress {
	si := -1
	for i := range records {
		if records[i].SectionID == update.SectionID {
			si = i
			break
		}
	}
	if si == -1 {
		records = append(records, SectionProgress{SectionID: update.SectionID})
		si = len(records) - 1
	}

	ci := -1
	for i := range records[si].Chapters {
		if records[si].Chapters[i].ChapterID == update.ChapterID {
			ci = i
			break
		}
	}
	if ci == -1 {
		records[si].Chapters = append(records[si].Chapters, ChapterProgress{ChapterID: update.ChapterID})
		ci = len(records[si].Chapters) - 1
	}

	records[si].Chapters[ci].Completed = update.Completed
	return records
}

// OverallProgress returns the completed fraction in [0, 1]. The denominator
// is always the course's current chapter count; progress entries referring to
// chapters no longer in the course are excluded from the numerator. Completed
// chapters are counted as distinct ids, so the same chapter recorded under
// more than one section record counts once. A course with no chapters yields 0.
func OverallProgress(records []SectionProgress, courseSections []Section) float64 {
	total := TotalChapters(courseSections)
	if total == 0 {
		return 0
	}

	current := make(map[string]struct{}, total)
	for _, section := range courseSections {
		for _, chapter := range section.Chapters {
			current[chapter.ChapterID] = struct{}{}
		}
	}

	completed := make(map[string]struct{})
	for _, record := range records {
		for _, chapter := range record.Chapters {
			if !chapter.Completed {
				continue
			}
			if _, ok := current[chapter.ChapterID]; ok {
				completed[chapter.ChapterID] = struct{}{}
			}
		}
	}

	return float64(len(completed)) / float64(total)
}

// IsChapterCompleted reports whether the given chapter is marked complete,
// false when any level of the path is absent.
func IsChapterCompleted(records []SectionProgress, sectionID, chapterID string) bool {
	for _, record := range records {
		if record.SectionID != sectionID {
			continue
		}
		for _, chapter := range record.Chapters {
			if chapter.ChapterID == chapterID {
				return chapter.Completed
			}
		}
	}
	return false
}

// InitialSectionRecords builds the progress document created at enrollment:
// every chapter of the course present, none completed.
func InitialSectionRecords(courseSections []Section) []SectionProgress {
	records := make([]SectionProgress, 0, len(courseSections))
	for _, section := range courseSections {
		chapters := make([]ChapterProgress, 0, len(section.Chapters))
		for _, chapter := range section.Chapters {
			chapters = append(chapters, ChapterProgress{ChapterID: chapter.ChapterID})
		}
		records = append(records, SectionProgress{SectionID: section.SectionID, Chapters: chapters})
	}
	return records
}
