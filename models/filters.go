package models

import "gorm.io/gorm"

// ExamFilter maps the optional listing parameters to query predicates.
// Zero-valued fields add nothing.
type ExamFilter struct {
	ExamID  string
	OwnerID string
	GroupID string
	// IncludePersonal widens GroupID to also match exams with no group.
	IncludePersonal bool
	// MemberID restricts GroupID to groups the given user belongs to.
	MemberID string
}

// Scope applies the filter to a query on the exams table.
func (f ExamFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.ExamID != "" {
		db = db.Where("exams.id = ?", f.ExamID)
	}
	if f.OwnerID != "" {
		db = db.Where("exams.user_id = ?", f.OwnerID)
	}
	if f.GroupID != "" {
		if f.IncludePersonal {
			db = db.Where("(exams.group_id = ? OR exams.group_id IS NULL)", f.GroupID)
		} else {
			db = db.Where("exams.group_id = ?", f.GroupID)
		}
	}
	if f.MemberID != "" {
		memberships := db.Session(&gorm.Session{NewDB: true}).
			Model(&GroupMembership{}).
			Select("group_id").
			Where("user_id = ?", f.MemberID)
		db = db.Where("exams.group_id IN (?)", memberships)
	}
	return db
}

// TopicsIn restricts an exam_topics query to topics of exams matching f.
func TopicsIn(f ExamFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		exams := db.Session(&gorm.Session{NewDB: true}).
			Model(&Exam{}).
			Select("exams.id").
			Scopes(f.Scope)
		return db.Where("exam_topics.exam_id IN (?)", exams)
	}
}

// ProgressIn restricts an exam_progress query to topics of exams matching f.
func ProgressIn(f ExamFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		topics := db.Session(&gorm.Session{NewDB: true}).
			Model(&ExamTopic{}).
			Select("exam_topics.id").
			Scopes(TopicsIn(f))
		return db.Where("exam_progress.topic_id IN (?)", topics)
	}
}

// WithTopicsFor preloads each exam's topics along with userID's own progress only.
func WithTopicsFor(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Preload("Topics", func(db *gorm.DB) *gorm.DB {
				return db.Order("exam_topics.created_at asc")
			}).
			Preload("Topics.Progress", "user_id = ?", userID)
	}
}
