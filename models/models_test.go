package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/testutil"
)

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{ID: id, Nickname: id}).Error)
}

func seedExam(t *testing.T, db *gorm.DB, owner, title string, groupID *string) models.Exam {
	t.Helper()
	exam := models.Exam{Title: title, UserID: owner, GroupID: groupID}
	require.NoError(t, db.Create(&exam).Error)
	return exam
}

func seedGroup(t *testing.T, db *gorm.DB, name string, members ...string) models.Group {
	t.Helper()
	code, err := models.NewJoinCode()
	require.NoError(t, err)
	group := models.Group{Name: name, JoinID: code}
	require.NoError(t, db.Create(&group).Error)
	for _, m := range members {
		require.NoError(t, db.Create(&models.GroupMembership{UserID: m, GroupID: group.ID}).Error)
	}
	return group
}

func examIDs(exams []models.Exam) []string {
	ids := make([]string, 0, len(exams))
	for _, e := range exams {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestNewJoinCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := models.NewJoinCode()
		require.NoError(t, err)
		assert.Len(t, code, models.JoinCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(models.JoinCodeAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	assert.Len(t, seen, 50)
}

func TestUpsertProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "alice")
	exam := seedExam(t, db, "alice", "Calculus", nil)
	topic := models.ExamTopic{Title: "Limits", ExamID: exam.ID}
	require.NoError(t, db.Create(&topic).Error)

	first := models.ExamProgress{UserID: "alice", TopicID: topic.ID, Confidence: 10}
	require.NoError(t, models.UpsertProgress(db, &first))
	require.NotEmpty(t, first.ID)
	assert.False(t, first.LastUpdated.IsZero())

	later := first.LastUpdated.Add(time.Minute)
	second := models.ExamProgress{UserID: "alice", TopicID: topic.ID, Confidence: 95, Anonymous: true, LastUpdated: later}
	require.NoError(t, models.UpsertProgress(db, &second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 95, second.Confidence)
	assert.True(t, second.Anonymous)
	assert.True(t, second.LastUpdated.Equal(later))

	var count int64
	require.NoError(t, db.Model(&models.ExamProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMembershipUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "alice")
	group := seedGroup(t, db, "Study", "alice")

	err := db.Create(&models.GroupMembership{UserID: "alice", GroupID: group.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestExamFilterScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	group := seedGroup(t, db, "Study", "alice")
	other := seedGroup(t, db, "Other", "bob")

	personal := seedExam(t, db, "alice", "Personal", nil)
	shared := seedExam(t, db, "alice", "Shared", &group.ID)
	elsewhere := seedExam(t, db, "bob", "Elsewhere", &other.ID)

	tests := []struct {
		name   string
		filter models.ExamFilter
		want   []string
	}{
		{"owner", models.ExamFilter{OwnerID: "alice"}, []string{personal.ID, shared.ID}},
		{"owner and group", models.ExamFilter{OwnerID: "alice", GroupID: group.ID}, []string{shared.ID}},
		{"group with personal", models.ExamFilter{OwnerID: "alice", GroupID: group.ID, IncludePersonal: true}, []string{personal.ID, shared.ID}},
		{"exam id", models.ExamFilter{ExamID: elsewhere.ID}, []string{elsewhere.ID}},
		{"member of group", models.ExamFilter{GroupID: group.ID, MemberID: "alice"}, []string{shared.ID}},
		{"not a member", models.ExamFilter{GroupID: other.ID, MemberID: "alice"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exams []models.Exam
			require.NoError(t, db.Scopes(tt.filter.Scope).Find(&exams).Error)
			assert.ElementsMatch(t, tt.want, examIDs(exams))
		})
	}
}

func TestTopicsAndProgressIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	mine := seedExam(t, db, "alice", "Mine", nil)
	theirs := seedExam(t, db, "bob", "Theirs", nil)
	myTopic := models.ExamTopic{Title: "A", ExamID: mine.ID}
	theirTopic := models.ExamTopic{Title: "B", ExamID: theirs.ID}
	require.NoError(t, db.Create(&myTopic).Error)
	require.NoError(t, db.Create(&theirTopic).Error)
	require.NoError(t, models.UpsertProgress(db, &models.ExamProgress{UserID: "alice", TopicID: myTopic.ID, Confidence: 5}))
	require.NoError(t, models.UpsertProgress(db, &models.ExamProgress{UserID: "bob", TopicID: theirTopic.ID, Confidence: 7}))

	var topics []models.ExamTopic
	require.NoError(t, db.Scopes(models.TopicsIn(models.ExamFilter{OwnerID: "alice"})).Find(&topics).Error)
	require.Len(t, topics, 1)
	assert.Equal(t, myTopic.ID, topics[0].ID)

	var progress []models.ExamProgress
	require.NoError(t, db.Scopes(models.ProgressIn(models.ExamFilter{OwnerID: "bob"})).Find(&progress).Error)
	require.Len(t, progress, 1)
	assert.Equal(t, 7, progress[0].Confidence)
}

func TestWithTopicsFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "alice")
	exam := seedExam(t, db, "alice", "Mine", nil)
	topic := models.ExamTopic{Title: "A", ExamID: exam.ID}
	require.NoError(t, db.Create(&topic).Error)
	require.NoError(t, models.UpsertProgress(db, &models.ExamProgress{UserID: "alice", TopicID: topic.ID, Confidence: 5}))
	require.NoError(t, models.UpsertProgress(db, &models.ExamProgress{UserID: "bob", TopicID: topic.ID, Confidence: 9}))

	var loaded models.Exam
	require.NoError(t, db.Scopes(models.WithTopicsFor("alice")).First(&loaded, "id = ?", exam.ID).Error)
	require.Len(t, loaded.Topics, 1)
	require.Len(t, loaded.Topics[0].Progress, 1)
	assert.Equal(t, 5, loaded.Topics[0].Progress[0].Confidence)
}

func TestDeletingExamCascadesInSchema(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "alice")
	exam := seedExam(t, db, "alice", "Mine", nil)
	topic := models.ExamTopic{Title: "A", ExamID: exam.ID}
	require.NoError(t, db.Create(&topic).Error)
	require.NoError(t, models.UpsertProgress(db, &models.ExamProgress{UserID: "alice", TopicID: topic.ID}))

	require.NoError(t, db.Delete(&exam).Error)

	var topics, progress int64
	require.NoError(t, db.Model(&models.ExamTopic{}).Count(&topics).Error)
	require.NoError(t, db.Model(&models.ExamProgress{}).Count(&progress).Error)
	assert.Zero(t, topics)
	assert.Zero(t, progress)
}
