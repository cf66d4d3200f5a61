package controllers

import (
	"errors"
	"time"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetEnrolledCourses godoc
// @Summary List enrolled courses
// @Description Returns the courses a user is enrolled in, with completion
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /users/course-progress/{userId}/enrolled-courses [get]
func (pc *ProgressController) GetEnrolledCourses(c *fiber.Ctx) error {
	callerID, _, err := utils.ExtractIdentityFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	userID := c.Params("userId")
	if userID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to view this user's courses",
		})
	}

	var progresses []models.UserCourseProgress
	if err := pc.DB.Where("user_id = ?", userID).Find(&progresses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var result []fiber.Map
	for _, progress := range progresses {
		var course models.Course
		if err := pc.DB.First(&course, "course_id = ?", progress.CourseID).Error; err != nil {
			continue
		}

		result = append(result, fiber.Map{
			"courseId":        course.CourseID,
			"title":           course.Title,
			"category":        course.Category,
			"image":           course.Image,
			"teacherName":     course.TeacherName,
			"overallProgress": progress.OverallProgress,
			"enrollmentDate":  progress.EnrollmentDate,
			"lastAccessed":    progress.LastAccessedTimestamp,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Enrolled courses retrieved successfully",
		"data":    result,
	})
}

// GetProgress godoc
// @Summary Get course progress
// @Description Returns the user's progress document for a course
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /users/course-progress/{userId}/courses/{courseId} [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	callerID, _, err := utils.ExtractIdentityFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	userID := c.Params("userId")
	courseID := c.Params("courseId")

	if userID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to view this user's progress",
		})
	}

	var progress models.UserCourseProgress
	if err := pc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course progress not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Course progress retrieved successfully",
		"data":    progress,
	})
}

// UpdateProgress godoc
// @Summary Update course progress
// @Description Applies a partial batch of chapter completion updates
// @Tags progress
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /users/course-progress/{userId}/courses/{courseId} [put]
func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	callerID, _, err := utils.ExtractIdentityFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	userID := c.Params("userId")
	courseID := c.Params("courseId")

	if userID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this user's progress",
		})
	}

	// The wire shape mirrors the progress document: a partial nested list of
	// sections/chapters. Flattened here into an ordered update batch before
	// it reaches the merge.
	var input struct {
		Sections []struct {
			SectionID string `json:"sectionId"`
			Chapters  []struct {
				ChapterID string `json:"chapterId"`
				Completed bool   `json:"completed"`
			} `json:"chapters"`
		} `json:"sections"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var updates []models.ProgressUpdate
	for _, section := range input.Sections {
		for _, chapter := range section.Chapters {
			updates = append(updates, models.ProgressUpdate{
				SectionID: section.SectionID,
				ChapterID: chapter.ChapterID,
				Completed: chapter.Completed,
			})
		}
	}

	var course models.Course
	if err := pc.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	courseSections, err := course.ContentSections()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not decode course content",
		})
	}

	now := time.Now()

	var progress models.UserCourseProgress
	if err := pc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.UserCourseProgress{
				UserID:         userID,
				CourseID:       courseID,
				EnrollmentDate: now,
			}
			if err := progress.SetSectionRecords(nil); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Could not encode course progress",
				})
			}
		} else {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not query database",
			})
		}
	}

	if err := progress.ApplyUpdates(courseSections, updates, now); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not apply progress updates",
		})
	}

	if err := pc.DB.Save(&progress).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save progress",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Course progress updated successfully",
		"data":    progress,
	})
}
