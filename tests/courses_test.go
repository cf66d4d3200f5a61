package tests

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCourse(t *testing.T, token string) map[string]interface{} {
	t.Helper()

	status, result := doJSON(t, http.MethodPost, "/api/courses", nil, token)
	require.Equal(t, fiber.StatusOK, status, "%v", result)
	return result["data"].(map[string]interface{})
}

func TestCreateCourseScaffold(t *testing.T) {
	_, token := registerUser(t, "teacher")

	course := createCourse(t, token)
	assert.Equal(t, "Untitled Course", course["title"])
	assert.Equal(t, "Draft", course["status"])
	assert.Equal(t, "Uncategorized", course["category"])
	assert.NotEmpty(t, course["courseId"])
	assert.Empty(t, course["sections"])
}

func TestCreateCourseRequiresTeacherRole(t *testing.T) {
	_, token := registerUser(t, "student")

	status, _ := doJSON(t, http.MethodPost, "/api/courses", nil, token)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestUpdateCoursePreservesSectionIDs(t *testing.T) {
	_, token := registerUser(t, "teacher")
	course := createCourse(t, token)
	courseID := course["courseId"].(string)

	update := map[string]interface{}{
		"title":  "Intro to Go",
		"status": "Published",
		"sections": []map[string]interface{}{
			{
				"sectionId":    "sec-1",
				"sectionTitle": "Basics",
				"chapters": []map[string]interface{}{
					{"chapterId": "ch-1", "type": "Text", "title": "Hello", "content": "..."},
					{"type": "Video", "title": "Setup", "content": ""},
				},
			},
			{
				"sectionTitle": "Beyond",
				"chapters":     []map[string]interface{}{},
			},
		},
	}

	status, result := doJSON(t, http.MethodPut, "/api/courses/"+courseID, update, token)
	require.Equal(t, fiber.StatusOK, status, "%v", result)

	data := result["data"].(map[string]interface{})
	assert.Equal(t, "Intro to Go", data["title"])
	assert.Equal(t, "Published", data["status"])

	sections := data["sections"].([]interface{})
	require.Len(t, sections, 2)

	first := sections[0].(map[string]interface{})
	assert.Equal(t, "sec-1", first["sectionId"])
	chapters := first["chapters"].([]interface{})
	require.Len(t, chapters, 2)
	assert.Equal(t, "ch-1", chapters[0].(map[string]interface{})["chapterId"])
	assert.NotEmpty(t, chapters[1].(map[string]interface{})["chapterId"])

	second := sections[1].(map[string]interface{})
	assert.NotEmpty(t, second["sectionId"])
	assert.NotEqual(t, "sec-1", second["sectionId"])
}

func TestUpdateCourseDestructiveReplace(t *testing.T) {
	_, token := registerUser(t, "teacher")
	course := createCourse(t, token)
	courseID := course["courseId"].(string)

	status, _ := doJSON(t, http.MethodPut, "/api/courses/"+courseID, map[string]interface{}{
		"sections": []map[string]interface{}{
			{"sectionId": "sec-a", "sectionTitle": "A", "chapters": []map[string]interface{}{}},
			{"sectionId": "sec-b", "sectionTitle": "B", "chapters": []map[string]interface{}{}},
		},
	}, token)
	require.Equal(t, fiber.StatusOK, status)

	// Second save omits sec-a entirely
	status, result := doJSON(t, http.MethodPut, "/api/courses/"+courseID, map[string]interface{}{
		"sections": []map[string]interface{}{
			{"sectionId": "sec-b", "sectionTitle": "B", "chapters": []map[string]interface{}{}},
		},
	}, token)
	require.Equal(t, fiber.StatusOK, status)

	sections := result["data"].(map[string]interface{})["sections"].([]interface{})
	require.Len(t, sections, 1)
	assert.Equal(t, "sec-b", sections[0].(map[string]interface{})["sectionId"])
}

func TestUpdateCourseOwnershipEnforced(t *testing.T) {
	_, ownerToken := registerUser(t, "teacher")
	_, otherToken := registerUser(t, "teacher")

	course := createCourse(t, ownerToken)
	courseID := course["courseId"].(string)

	status, _ := doJSON(t, http.MethodPut, "/api/courses/"+courseID, map[string]interface{}{
		"title": "Hijacked",
	}, otherToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Course is left unmodified
	status, result := doJSON(t, http.MethodGet, "/api/courses/"+courseID, nil, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Untitled Course", result["data"].(map[string]interface{})["title"])

	status, _ = doJSON(t, http.MethodDelete, "/api/courses/"+courseID, nil, otherToken)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestUpdateCourseRejectsNegativePrice(t *testing.T) {
	_, token := registerUser(t, "teacher")
	course := createCourse(t, token)
	courseID := course["courseId"].(string)

	status, _ := doJSON(t, http.MethodPut, "/api/courses/"+courseID, map[string]interface{}{
		"price": -500,
	}, token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestUpdateCourseRejectsMalformedSections(t *testing.T) {
	_, token := registerUser(t, "teacher")
	course := createCourse(t, token)
	courseID := course["courseId"].(string)

	status, _ := doJSON(t, http.MethodPut, "/api/courses/"+courseID, map[string]interface{}{
		"sections": map[string]interface{}{"not": "a list"},
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListCoursesCategoryFilter(t *testing.T) {
	_, token := registerUser(t, "teacher")

	course := createCourse(t, token)
	courseID := course["courseId"].(string)
	status, _ := doJSON(t, http.MethodPut, "/api/courses/"+courseID, map[string]interface{}{
		"category": "golang-testing",
	}, token)
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, http.MethodGet, "/api/courses?category=golang-testing", nil, "")
	require.Equal(t, fiber.StatusOK, status)

	courses := result["data"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, courseID, courses[0].(map[string]interface{})["courseId"])
}

func TestGetCourseNotFound(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/courses/does-not-exist", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteCourse(t *testing.T) {
	_, token := registerUser(t, "teacher")
	course := createCourse(t, token)
	courseID := course["courseId"].(string)

	status, _ := doJSON(t, http.MethodDelete, "/api/courses/"+courseID, nil, token)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, http.MethodGet, "/api/courses/"+courseID, nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGetUploadURL(t *testing.T) {
	_, token := registerUser(t, "teacher")

	status, result := doJSON(t, http.MethodPost, "/api/courses/upload-url", map[string]string{
		"fileName": "lecture.mp4",
		"fileType": "video/mp4",
	}, token)
	require.Equal(t, fiber.StatusOK, status, "%v", result)

	data := result["data"].(map[string]interface{})
	assert.NotEmpty(t, data["uploadUrl"])
	assert.NotEmpty(t, data["fileUrl"])

	status, _ = doJSON(t, http.MethodPost, "/api/courses/upload-url", map[string]string{
		"fileName": "lecture.mp4",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
