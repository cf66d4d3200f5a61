package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getJSONList is for endpoints that respond with a bare JSON array.
func getJSONList(t *testing.T, target, token string) (int, []interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, bytes.NewBuffer(nil))
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer resp.Body.Close()

	var result []interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestChapterComments(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	_, studentToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)

	status, result := doJSON(t, http.MethodPost, "/api/courses/"+courseID+"/chapters/ch1/comments", map[string]string{
		"text": "Really helpful chapter",
	}, studentToken)
	require.Equal(t, fiber.StatusOK, status, "%v", result)
	assert.Equal(t, "Really helpful chapter", result["text"])
	assert.NotEmpty(t, result["userName"])

	status, comments := getJSONList(t, "/api/courses/"+courseID+"/chapters/ch1/comments", studentToken)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, comments, 1)
	assert.Equal(t, "Really helpful chapter", comments[0].(map[string]interface{})["text"])

	// Other chapters stay empty
	status, comments = getJSONList(t, "/api/courses/"+courseID+"/chapters/ch2/comments", studentToken)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, comments, 0)
}

func TestAddCommentUnknownChapter(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	_, studentToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)

	status, _ := doJSON(t, http.MethodPost, "/api/courses/"+courseID+"/chapters/no-such-chapter/comments", map[string]string{
		"text": "lost",
	}, studentToken)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAddCommentRequiresText(t *testing.T) {
	_, teacherToken := registerUser(t, "teacher")
	_, studentToken := registerUser(t, "student")
	courseID := publishCourse(t, teacherToken)

	status, _ := doJSON(t, http.MethodPost, "/api/courses/"+courseID+"/chapters/ch1/comments", map[string]string{}, studentToken)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
