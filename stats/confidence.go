// Package stats aggregates self-rated topic confidence into exam and member averages.
package stats

import (
	"math"
	"time"

	"github.com/andrewpaige1/preptrack/models"
)

// TopicConfidence is a topic as seen in a member summary.
type TopicConfidence struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Confidence  int     `json:"confidence"`
}

// ExamSummary is one exam with its average confidence.
type ExamSummary struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	IsGroupExam       bool              `json:"isGroupExam"`
	TopicCount        int               `json:"topicCount"`
	AverageConfidence int               `json:"averageConfidence"`
	Topics            []TopicConfidence `json:"topics"`
}

// MemberSummary is one group member's exams and overall average confidence.
type MemberSummary struct {
	UserID            string        `json:"userId"`
	Nickname          string        `json:"nickname"`
	JoinedAt          time.Time     `json:"joinedAt"`
	Exams             []ExamSummary `json:"exams"`
	TotalExams        int           `json:"totalExams"`
	AverageConfidence int           `json:"averageConfidence"`
}

// TopicScore returns the confidence of the topic's first loaded progress row,
// or 0 when the topic has no progress. Callers preload only the progress of
// the user being summarized.
func TopicScore(topic models.ExamTopic) int {
	if len(topic.Progress) == 0 {
		return 0
	}
	return topic.Progress[0].Confidence
}

// RoundedMean returns round(total/count) with halves rounded up, or 0 when count is 0.
func RoundedMean(total, count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Floor(float64(total)/float64(count) + 0.5))
}

func topicsTotal(topics []models.ExamTopic) int {
	total := 0
	for _, t := range topics {
		total += TopicScore(t)
	}
	return total
}

// ExamAverage is the mean topic confidence of one exam.
func ExamAverage(exam models.Exam) int {
	return RoundedMean(topicsTotal(exam.Topics), len(exam.Topics))
}

// OverallAverage averages over every topic of every exam, so exams with more
// topics weigh more. It is not the mean of the per-exam averages.
func OverallAverage(exams []models.Exam) int {
	total, count := 0, 0
	for _, e := range exams {
		total += topicsTotal(e.Topics)
		count += len(e.Topics)
	}
	return RoundedMean(total, count)
}

// SummarizeExam builds the summary of one exam relative to groupID.
func SummarizeExam(exam models.Exam, groupID string) ExamSummary {
	topics := make([]TopicConfidence, 0, len(exam.Topics))
	for _, t := range exam.Topics {
		topics = append(topics, TopicConfidence{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Confidence:  TopicScore(t),
		})
	}
	return ExamSummary{
		ID:                exam.ID,
		Title:             exam.Title,
		IsGroupExam:       exam.GroupID != nil && *exam.GroupID == groupID,
		TopicCount:        len(exam.Topics),
		AverageConfidence: ExamAverage(exam),
		Topics:            topics,
	}
}

// SummarizeMember builds a member summary. exams must carry their topics and
// only this member's progress.
func SummarizeMember(member models.GroupMembership, exams []models.Exam, groupID string) MemberSummary {
	summaries := make([]ExamSummary, 0, len(exams))
	for _, e := range exams {
		summaries = append(summaries, SummarizeExam(e, groupID))
	}
	return MemberSummary{
		UserID:            member.UserID,
		Nickname:          member.User.Nickname,
		JoinedAt:          member.JoinedAt,
		Exams:             summaries,
		TotalExams:        len(exams),
		AverageConfidence: OverallAverage(exams),
	}
}
