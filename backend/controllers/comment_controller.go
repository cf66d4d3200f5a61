package controllers

import (
	"errors"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommentsController(db *gorm.DB, cfg *config.Config) *CommentsController {
	return &CommentsController{DB: db, Cfg: cfg}
}

// GetChapterComments godoc
// @Summary Get chapter comments
// @Description Returns all comments on a chapter
// @Tags comments
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapterId path string true "Chapter ID"
// @Success 200 {array} models.ChapterComment
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /courses/{courseId}/chapters/{chapterId}/comments [get]
func (cc *CommentsController) GetChapterComments(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	chapterID := c.Params("chapterId")

	var comments []models.ChapterComment
	if err := cc.DB.Where("course_id = ? AND chapter_id = ?", courseID, chapterID).Find(&comments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch comments",
		})
	}

	return c.JSON(comments)
}

// AddChapterComment adds a comment to a chapter. The chapter must exist in
// the course's current content.
func (cc *CommentsController) AddChapterComment(c *fiber.Ctx) error {
	userID, _, err := utils.ExtractIdentityFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID := c.Params("courseId")
	chapterID := c.Params("chapterId")

	var input struct {
		Text string `json:"text"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment text is required",
		})
	}

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

	sections, err := course.ContentSections()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not decode course content",
		})
	}

	found := false
	for _, section := range sections {
		for _, chapter := range section.Chapters {
			if chapter.ChapterID == chapterID {
				found = true
				break
			}
		}
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Chapter not found",
		})
	}

	// Get user info
	var user models.User
	if err := cc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	comment := models.ChapterComment{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		ChapterID: chapterID,
		UserID:    userID,
		UserName:  user.Username,
		Text:      input.Text,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create comment",
		})
	}

	return c.JSON(comment)
}
