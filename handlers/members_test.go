package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/preptrack/stats"
	"github.com/andrewpaige1/preptrack/testutil"
)

func findMember(t *testing.T, members []stats.MemberSummary, userID string) stats.MemberSummary {
	t.Helper()
	for _, m := range members {
		if m.UserID == userID {
			return m
		}
	}
	t.Fatalf("member %s not in summary", userID)
	return stats.MemberSummary{}
}

func findExam(t *testing.T, exams []stats.ExamSummary, examID string) stats.ExamSummary {
	t.Helper()
	for _, e := range exams {
		if e.ID == examID {
			return e
		}
	}
	t.Fatalf("exam %s not in summary", examID)
	return stats.ExamSummary{}
}

func TestGetGroupMembers(t *testing.T) {
	a := newAPI(t)
	alice := testutil.Token(t, "auth0|alice", "alice")
	bob := testutil.Token(t, "auth0|bob", "bobby")

	group := a.createGroup(alice, "Study Buddies")
	a.joinGroup(bob, group.JoinID)

	// Alice: three strong topics in a group exam, one untouched personal topic.
	shared := a.createExam(alice, "Shared", &group.ID)
	for _, title := range []string{"One", "Two", "Three"} {
		topic := a.createTopic(alice, shared.ID, title)
		a.setConfidence(alice, topic.ID, 90)
	}
	personal := a.createExam(alice, "Personal", nil)
	a.createTopic(alice, personal.ID, "Untouched")

	// An exam in another group is left out.
	other := a.createGroup(alice, "Elsewhere")
	a.createExam(alice, "Other group", &other.ID)

	w := a.do("GET", "/api/groups/"+group.ID+"/members", nil, bob)
	testutil.AssertStatus(t, w, http.StatusOK)
	var members []stats.MemberSummary
	testutil.DecodeJSON(t, w, &members)
	require.Len(t, members, 2)
	// Ordered by join time.
	assert.Equal(t, "auth0|alice", members[0].UserID)

	am := findMember(t, members, "auth0|alice")
	assert.Equal(t, "alice", am.Nickname)
	assert.Equal(t, 2, am.TotalExams)
	// 270 over 4 topics, not the mean of 90 and 0.
	assert.Equal(t, 68, am.AverageConfidence)

	se := findExam(t, am.Exams, shared.ID)
	assert.True(t, se.IsGroupExam)
	assert.Equal(t, 3, se.TopicCount)
	assert.Equal(t, 90, se.AverageConfidence)

	pe := findExam(t, am.Exams, personal.ID)
	assert.False(t, pe.IsGroupExam)
	assert.Equal(t, 1, pe.TopicCount)
	assert.Equal(t, 0, pe.AverageConfidence)
	require.Len(t, pe.Topics, 1)
	assert.Equal(t, 0, pe.Topics[0].Confidence)

	bm := findMember(t, members, "auth0|bob")
	assert.Equal(t, "bobby", bm.Nickname)
	assert.Equal(t, 0, bm.TotalExams)
	assert.Equal(t, 0, bm.AverageConfidence)
	assert.NotNil(t, bm.Exams)
}

func TestGetGroupMembersUsesOwnProgress(t *testing.T) {
	a := newAPI(t)
	alice := testutil.Token(t, "auth0|alice", "alice")
	bob := testutil.Token(t, "auth0|bob", "bob")

	group := a.createGroup(alice, "Study Buddies")
	a.joinGroup(bob, group.JoinID)

	aliceExam := a.createExam(alice, "Alice", &group.ID)
	aliceTopic := a.createTopic(alice, aliceExam.ID, "Limits")
	a.setConfidence(alice, aliceTopic.ID, 40)

	bobExam := a.createExam(bob, "Bob", &group.ID)
	bobTopic := a.createTopic(bob, bobExam.ID, "Series")
	a.setConfidence(bob, bobTopic.ID, 100)

	w := a.do("GET", "/api/groups/"+group.ID+"/members", nil, alice)
	testutil.AssertStatus(t, w, http.StatusOK)
	var members []stats.MemberSummary
	testutil.DecodeJSON(t, w, &members)

	am := findMember(t, members, "auth0|alice")
	require.Len(t, am.Exams, 1)
	assert.Equal(t, aliceExam.ID, am.Exams[0].ID)
	assert.Equal(t, 40, am.AverageConfidence)

	bm := findMember(t, members, "auth0|bob")
	require.Len(t, bm.Exams, 1)
	assert.Equal(t, bobExam.ID, bm.Exams[0].ID)
	assert.Equal(t, 100, bm.AverageConfidence)
}

func TestGetGroupMembersForbidden(t *testing.T) {
	a := newAPI(t)
	alice := testutil.Token(t, "auth0|alice", "alice")
	carol := testutil.Token(t, "auth0|carol", "carol")
	group := a.createGroup(alice, "Study Buddies")

	w := a.do("GET", "/api/groups/"+group.ID+"/members", nil, carol)
	testutil.AssertStatus(t, w, http.StatusForbidden)
	assert.Equal(t, "Not a member of this group", errorMessage(t, w))
}
