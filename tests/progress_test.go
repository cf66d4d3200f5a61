package tests

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publishCourse creates a course with one section of two chapters so progress
// tests can reference known identifiers.
func publishCourse(t *testing.T, teacherToken string) string {
	t.Helper()

	course := createCourse(t, teacherToken)
	courseID := course["courseId"].(string)

	status, result := doJSON(t, http.MethodPut, "/api/courses/"+courseID, map[string]interface{}{
		"title":  "Progress Fixture",
		"status": "Published",
		"price":  4999,
		"sections": []map[string]interface{}{
			{
				"sectionId":    "s1",
				"sectionTitle": "Basics",
				"chapters": []map[string]interface{}{
					{"chapterId": "ch1", "type": "Text", "title": "One", "content": "..."},
					{"chapterId": "ch2", "type": "Video", "title": "Two", "content": ""},
				},
			},
		},
	}, teacherToken)
	require.Equal(t, fiber.StatusOK, status, "%v", result)
	return courseID
}

func buyCourse(t *testing.T, token, courseID string) map[string]interface{} {
	t.Helper()

	status, result := doJSON(t, http.MethodPost, "/api/transactions", map[string]interface{}{
		"courseId":        courseID,
		"amount":          4999,
		"paymentProvider": "stripe",
	}, token)
	require.Equal(t, fiber.StatusOK, status, "%v", result)
	return result["data"].(map[string]interface{})
}

func TestPurchaseInitializesProgress(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	studentID, studentToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)

	data := buyCourse(t, studentToken, courseID)

	transaction := data["transaction"].(map[string]interface{})
	assert.Equal(t, courseID, transaction["courseId"])
	assert.Equal(t, float64(4999), transaction["amount"])
	assert.NotEmpty(t, transaction["transactionId"])

	// Initial document covers every chapter, none completed
	progress := data["courseProgress"].(map[string]interface{})
	assert.Equal(t, float64(0), progress["overallProgress"])

	status, result := doJSON(t, http.MethodGet, "/api/users/course-progress/"+studentID+"/courses/"+courseID, nil, studentToken)
	require.Equal(t, fiber.StatusOK, status)

	sections := result["data"].(map[string]interface{})["sections"].([]interface{})
	require.Len(t, sections, 1)
	chapters := sections[0].(map[string]interface{})["chapters"].([]interface{})
	require.Len(t, chapters, 2)
	for _, chapter := range chapters {
		assert.False(t, chapter.(map[string]interface{})["completed"].(bool))
	}

	status, result = doJSON(t, http.MethodGet, "/api/users/course-progress/"+studentID+"/enrolled-courses", nil, studentToken)
	require.Equal(t, fiber.StatusOK, status)
	enrolled := result["data"].([]interface{})
	require.Len(t, enrolled, 1)
	assert.Equal(t, courseID, enrolled[0].(map[string]interface{})["courseId"])
}

func TestUpdateProgressHalfway(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	studentID, studentToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)
	buyCourse(t, studentToken, courseID)

	body := map[string]interface{}{
		"sections": []map[string]interface{}{
			{
				"sectionId": "s1",
				"chapters": []map[string]interface{}{
					{"chapterId": "ch1", "completed": true},
				},
			},
		},
	}

	status, result := doJSON(t, http.MethodPut, "/api/users/course-progress/"+studentID+"/courses/"+courseID, body, studentToken)
	require.Equal(t, fiber.StatusOK, status, "%v", result)

	progress := result["data"].(map[string]interface{})
	assert.Equal(t, 0.5, progress["overallProgress"])

	// Re-applying the same batch changes nothing
	status, result = doJSON(t, http.MethodPut, "/api/users/course-progress/"+studentID+"/courses/"+courseID, body, studentToken)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0.5, result["data"].(map[string]interface{})["overallProgress"])
}

func TestUpdateProgressLastWriteWins(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	studentID, studentToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)
	buyCourse(t, studentToken, courseID)

	status, result := doJSON(t, http.MethodPut, "/api/users/course-progress/"+studentID+"/courses/"+courseID, map[string]interface{}{
		"sections": []map[string]interface{}{
			{
				"sectionId": "s1",
				"chapters": []map[string]interface{}{
					{"chapterId": "ch1", "completed": true},
					{"chapterId": "ch1", "completed": false},
				},
			},
		},
	}, studentToken)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), result["data"].(map[string]interface{})["overallProgress"])
}

func TestUpdateProgressCreatesDocumentOnFirstTouch(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	studentID, studentToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)

	// No purchase: the first update still creates the progress document
	status, result := doJSON(t, http.MethodPut, "/api/users/course-progress/"+studentID+"/courses/"+courseID, map[string]interface{}{
		"sections": []map[string]interface{}{
			{
				"sectionId": "s1",
				"chapters": []map[string]interface{}{
					{"chapterId": "ch2", "completed": true},
				},
			},
		},
	}, studentToken)
	require.Equal(t, fiber.StatusOK, status, "%v", result)
	assert.Equal(t, 0.5, result["data"].(map[string]interface{})["overallProgress"])

	status, _ = doJSON(t, http.MethodGet, "/api/users/course-progress/"+studentID+"/courses/"+courseID, nil, studentToken)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestProgressIsSelfOnly(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	studentID, studentToken := registerUser(t, "student")
	_, otherToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)
	buyCourse(t, studentToken, courseID)

	status, _ := doJSON(t, http.MethodGet, "/api/users/course-progress/"+studentID+"/courses/"+courseID, nil, otherToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodPut, "/api/users/course-progress/"+studentID+"/courses/"+courseID, map[string]interface{}{}, otherToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodGet, "/api/users/course-progress/"+studentID+"/enrolled-courses", nil, otherToken)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestGetProgressNotFound(t *testing.T) {
	studentID, studentToken := registerUser(t, "student")

	status, _ := doJSON(t, http.MethodGet, "/api/users/course-progress/"+studentID+"/courses/never-bought", nil, studentToken)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUpdateProgressUnknownCourse(t *testing.T) {
	studentID, studentToken := registerUser(t, "student")

	status, _ := doJSON(t, http.MethodPut, "/api/users/course-progress/"+studentID+"/courses/no-such-course", map[string]interface{}{
		"sections": []map[string]interface{}{},
	}, studentToken)
	assert.Equal(t, fiber.StatusNotFound, status)
}
