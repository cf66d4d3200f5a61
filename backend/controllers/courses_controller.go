package controllers

import (
	"encoding/json"
	"errors"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/services/cache"
	"lms/backend/services/storage"
	"lms/backend/utils"
	"lms/backend/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Cache *cache.CourseCache
	Files storage.Service
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, courseCache *cache.CourseCache, files storage.Service) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Cache: courseCache, Files: files}
}

// ListCourses godoc
// @Summary List courses
// @Description Returns all courses, optionally filtered by category
// @Tags courses
// @Produce json
// @Param category query string false "Category filter, 'all' disables it"
// @Success 200 {object} map[string]interface{}
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	category := c.Query("category")

	if courses, ok := cc.Cache.GetList(c.Context(), category); ok {
		return c.JSON(fiber.Map{
			"message": "Courses retrieved successfully",
			"data":    courses,
		})
	}

	query := cc.DB.Model(&models.Course{})
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	cc.Cache.SetList(c.Context(), category, courses)

	return c.JSON(fiber.Map{
		"message": "Courses retrieved successfully",
		"data":    courses,
	})
}

// GetCourse godoc
// @Summary Get course
// @Description Returns a single course with its nested sections and chapters
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /courses/{courseId} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := cc.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Course retrieved successfully",
		"data":    course,
	})
}

// CreateCourse scaffolds an empty draft course owned by the caller. All
// content fields start at their defaults; editing happens through UpdateCourse.
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID, _, err := utils.ExtractIdentityFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var teacher models.User
	if err := cc.DB.First(&teacher, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	course := models.Course{
		CourseID:    uuid.NewString(),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Username,
		Title:       "Untitled Course",
		Description: "",
		Category:    "Uncategorized",
		Image:       "",
		Price:       0,
		Level:       models.LevelBeginner,
		Status:      models.StatusDraft,
	}
	if err := course.SetContentSections(nil); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode sections",
		})
	}
	if err := course.SetEnrollmentList(nil); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode enrollments",
		})
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course",
		})
	}

	cc.Cache.InvalidateLists(c.Context())

	return c.JSON(fiber.Map{
		"message": "Course created successfully",
		"data":    course,
	})
}

// UpdateCourseInput is the full-update payload. Sections arrive either as a
// JSON array or as a JSON-encoded string and are normalized before the merge.
type UpdateCourseInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Price       *int            `json:"price" validate:"omitempty,gte=0"`
	Level       string          `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Status      string          `json:"status" validate:"omitempty,oneof=Draft Published"`
	Sections    json.RawMessage `json:"sections"`
}

// UpdateCourse godoc
// @Summary Update course
// @Description Full course update, owner only; sections go through the upsert merge
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	userID, _, err := utils.ExtractIdentityFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID := c.Params("courseId")

	var course models.Course
	if err := cc.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if course.TeacherID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this course",
		})
	}

	var input UpdateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if fields := validators.Struct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	// Validation happens before any write; a malformed sections payload must
	// not leave a half-updated course behind.
	sections, err := models.DecodeSectionsPayload(input.Sections)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Image != "" {
		course.Image = input.Image
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Level != "" {
		course.Level = input.Level
	}
	if input.Status != "" {
		course.Status = input.Status
	}
	if sections != nil {
		if err := course.SetContentSections(models.MergeSections(sections)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not encode sections",
			})
		}
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update course",
		})
	}

	cc.Cache.InvalidateLists(c.Context())

	return c.JSON(fiber.Map{
		"message": "Course updated successfully",
		"data":    course,
	})
}

// DeleteCourse godoc
// @Summary Delete course
// @Description Deletes a course, owner only
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /courses/{courseId} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	userID, _, err := utils.ExtractIdentityFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID := c.Params("courseId")

	var course models.Course
	if err := cc.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if course.TeacherID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this course",
		})
	}

	if err := cc.DB.Delete(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete course",
		})
	}

	cc.Cache.InvalidateLists(c.Context())

	return c.JSON(fiber.Map{
		"message": "Course deleted successfully",
		"data":    course,
	})
}

// GetUploadURL issues a signed upload URL pair for course media. The upload
// itself goes straight to the object store from the client.
func (cc *CoursesController) GetUploadURL(c *fiber.Ctx) error {
	var input struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.FileName == "" || input.FileType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File name and type are required",
		})
	}

	uploadURL, fileURL, err := cc.Files.SignedUploadURL(c.Context(), input.FileName, input.FileType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error generating upload URL",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Upload URL generated successfully",
		"data": fiber.Map{
			"uploadUrl": uploadURL,
			"fileUrl":   fileURL,
		},
	})
}
