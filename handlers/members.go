package handlers

import (
	"net/http"

	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/stats"
	"github.com/andrewpaige1/preptrack/utils"
)

// GET /api/groups/{groupID}/members
func (db *DBHandler) GetGroupMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	groupID := r.PathValue("groupID")

	member, err := isMember(db.DB, userID, groupID)
	if err != nil {
		internalError(w, "GetGroupMembers", "failed to check membership", "group_id", groupID, "error", err)
		return
	}
	if !member {
		utils.ErrorResponse(w, http.StatusForbidden, "Not a member of this group")
		return
	}

	var memberships []models.GroupMembership
	err = db.Preload("User").
		Where("group_id = ?", groupID).
		Order("joined_at asc").
		Find(&memberships).Error
	if err != nil {
		internalError(w, "GetGroupMembers", "failed to fetch members", "group_id", groupID, "error", err)
		return
	}

	summaries := make([]stats.MemberSummary, 0, len(memberships))
	for _, m := range memberships {
		// Group exams plus the member's personal ones, each with only the member's progress.
		filter := models.ExamFilter{OwnerID: m.UserID, GroupID: groupID, IncludePersonal: true}

		var exams []models.Exam
		err := db.Scopes(filter.Scope, models.WithTopicsFor(m.UserID)).
			Order("exams.created_at desc").
			Find(&exams).Error
		if err != nil {
			internalError(w, "GetGroupMembers", "failed to fetch member exams", "group_id", groupID, "member_id", m.UserID, "error", err)
			return
		}

		summaries = append(summaries, stats.SummarizeMember(m, exams, groupID))
	}

	utils.JSONResponse(w, http.StatusOK, summaries)
}
