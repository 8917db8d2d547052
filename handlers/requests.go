package handlers

import "strings"

type createExamRequest struct {
	Title   string  `json:"title" validate:"required"`
	GroupID *string `json:"groupId"`
}

func (r *createExamRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.GroupID = trimmedOrNil(r.GroupID)
}

type updateExamRequest struct {
	Title string `json:"title" validate:"required"`
}

func (r *updateExamRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

type createTopicRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	ExamID      string  `json:"examId" validate:"required"`
}

func (r *createTopicRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimmedOrNil(r.Description)
	r.ExamID = strings.TrimSpace(r.ExamID)
}

type upsertProgressRequest struct {
	TopicID    string `json:"topicId" validate:"required"`
	Confidence *int   `json:"confidence" validate:"required,min=0,max=100"`
	Anonymous  *bool  `json:"anonymous"`
}

func (r *upsertProgressRequest) normalize() {
	r.TopicID = strings.TrimSpace(r.TopicID)
}

type createGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *createGroupRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type joinGroupRequest struct {
	JoinID string `json:"joinId" validate:"required"`
}

func (r *joinGroupRequest) normalize() {
	r.JoinID = strings.ToUpper(strings.TrimSpace(r.JoinID))
}

type postMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

func (r *postMessageRequest) normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
