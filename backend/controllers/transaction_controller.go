package controllers

import (
	"errors"
	"time"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/services/payment"
	"lms/backend/utils"
	"lms/backend/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Amount charged when a client submits a non-positive amount; the payment
// provider rejects zero-value intents outright.
const minimumChargeAmount = 50

type TransactionsController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Payments payment.Provider
}

func NewTransactionsController(db *gorm.DB, cfg *config.Config, payments payment.Provider) *TransactionsController {
	return &TransactionsController{DB: db, Cfg: cfg, Payments: payments}
}

// ListTransactions godoc
// @Summary List transactions
// @Description Returns transactions, optionally filtered by user
// @Tags transactions
// @Produce json
// @Param userId query string false "User filter"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /transactions [get]
func (tc *TransactionsController) ListTransactions(c *fiber.Ctx) error {
	callerID, role, err := utils.ExtractIdentityFromToken(c, tc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	// Students only ever see their own transactions; teachers may filter
	// across users.
	userID := c.Query("userId")
	if role != models.RoleTeacher {
		if userID != "" && userID != callerID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Not authorized to view these transactions",
			})
		}
		userID = callerID
	}

	query := tc.DB.Model(&models.Transaction{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Transactions retrieved successfully",
		"data":    transactions,
	})
}

// CreateStripePaymentIntent asks the payment provider for a client secret the
// front end feeds into its payment elements.
func (tc *TransactionsController) CreateStripePaymentIntent(c *fiber.Ctx) error {
	var input struct {
		Amount int64 `json:"amount"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Amount <= 0 {
		input.Amount = minimumChargeAmount
	}

	clientSecret, err := tc.Payments.CreatePaymentIntent(c.Context(), input.Amount)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error creating payment intent",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"clientSecret": clientSecret,
	})
}

// CreateTransactionInput reports a confirmed payment back to the API.
type CreateTransactionInput struct {
	CourseID        string `json:"courseId" validate:"required"`
	TransactionID   string `json:"transactionId"`
	Amount          int    `json:"amount" validate:"gte=0"`
	PaymentProvider string `json:"paymentProvider" validate:"required"`
}

// CreateTransaction runs the purchase sequence: transaction record, then
// initial progress document, then enrollment append. The three writes are
// sequential with no rollback; a failure part-way leaves the earlier writes
// in place and surfaces which step failed.
func (tc *TransactionsController) CreateTransaction(c *fiber.Ctx) error {
	userID, _, err := utils.ExtractIdentityFromToken(c, tc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if fields := validators.Struct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := tc.DB.First(&course, "course_id = ?", input.CourseID).Error; err != nil {
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

	if input.TransactionID == "" {
		input.TransactionID = uuid.NewString()
	}

	// 1. transaction record
	transaction := models.Transaction{
		TransactionID:   input.TransactionID,
		UserID:          userID,
		CourseID:        input.CourseID,
		PaymentProvider: input.PaymentProvider,
		Amount:          input.Amount,
		DateTime:        now,
	}
	if err := tc.DB.Create(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create transaction record",
		})
	}

	// 2. initial course progress: every chapter present, none completed
	progress := models.UserCourseProgress{
		UserID:                userID,
		CourseID:              input.CourseID,
		EnrollmentDate:        now,
		OverallProgress:       0,
		LastAccessedTimestamp: now,
	}
	if err := progress.SetSectionRecords(models.InitialSectionRecords(courseSections)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode course progress",
		})
	}
	if err := tc.DB.Save(&progress).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course progress",
		})
	}

	// 3. enrollment append
	enrollments, err := course.EnrollmentList()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not decode enrollments",
		})
	}

	enrolled := false
	for _, enrollment := range enrollments {
		if enrollment.UserID == userID {
			enrolled = true
			break
		}
	}
	if !enrolled {
		enrollments = append(enrollments, models.Enrollment{UserID: userID})
		if err := course.SetEnrollmentList(enrollments); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not encode enrollments",
			})
		}
		if err := tc.DB.Save(&course).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update course enrollments",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Purchased course successfully",
		"data": fiber.Map{
			"transaction":    transaction,
			"courseProgress": progress,
		},
	})
}
