package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/router"
	"github.com/andrewpaige1/preptrack/testutil"
)

type apiTest struct {
	t  *testing.T
	db *gorm.DB
	h  http.Handler
}

func newAPI(t *testing.T) *apiTest {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return &apiTest{
		t:  t,
		db: db,
		h:  router.New(db, testutil.NewValidator(t), testutil.TestConfig()),
	}
}

func (a *apiTest) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	return testutil.Serve(a.h, testutil.MakeRequest(method, path, body, token))
}

func (a *apiTest) createExam(token, title string, groupID *string) models.Exam {
	a.t.Helper()
	body := map[string]interface{}{"title": title}
	if groupID != nil {
		body["groupId"] = *groupID
	}
	w := a.do("POST", "/api/exams", body, token)
	testutil.AssertStatus(a.t, w, http.StatusCreated)

	var exam models.Exam
	testutil.DecodeJSON(a.t, w, &exam)
	require.NotEmpty(a.t, exam.ID)
	return exam
}

func (a *apiTest) createTopic(token, examID, title string) models.ExamTopic {
	a.t.Helper()
	w := a.do("POST", "/api/topics", map[string]interface{}{"title": title, "examId": examID}, token)
	testutil.AssertStatus(a.t, w, http.StatusCreated)

	var topic models.ExamTopic
	testutil.DecodeJSON(a.t, w, &topic)
	require.NotEmpty(a.t, topic.ID)
	return topic
}

func (a *apiTest) setConfidence(token, topicID string, confidence int) models.ExamProgress {
	a.t.Helper()
	w := a.do("PUT", "/api/progress", map[string]interface{}{"topicId": topicID, "confidence": confidence}, token)
	testutil.AssertStatus(a.t, w, http.StatusOK)

	var progress models.ExamProgress
	testutil.DecodeJSON(a.t, w, &progress)
	return progress
}

func (a *apiTest) createGroup(token, name string) models.Group {
	a.t.Helper()
	w := a.do("POST", "/api/groups", map[string]interface{}{"name": name}, token)
	testutil.AssertStatus(a.t, w, http.StatusOK)

	var group models.Group
	testutil.DecodeJSON(a.t, w, &group)
	require.NotEmpty(a.t, group.JoinID)
	return group
}

func (a *apiTest) joinGroup(token, joinID string) {
	a.t.Helper()
	w := a.do("POST", "/api/groups/join", map[string]interface{}{"joinId": joinID}, token)
	testutil.AssertStatus(a.t, w, http.StatusOK)
}

func (a *apiTest) listExams(token, query string) []models.Exam {
	a.t.Helper()
	w := a.do("GET", "/api/exams"+query, nil, token)
	testutil.AssertStatus(a.t, w, http.StatusOK)

	var exams []models.Exam
	testutil.DecodeJSON(a.t, w, &exams)
	return exams
}

func (a *apiTest) progressRows(userID, topicID string) []models.ExamProgress {
	a.t.Helper()
	var rows []models.ExamProgress
	require.NoError(a.t, a.db.Where("user_id = ? AND topic_id = ?", userID, topicID).Find(&rows).Error)
	return rows
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	testutil.DecodeJSON(t, w, &body)
	return body.Error
}
