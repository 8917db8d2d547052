package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/andrewpaige1/preptrack/models"
	"github.com/andrewpaige1/preptrack/utils"
)

// joinCodeAttempts bounds retries when a generated join code collides.
const joinCodeAttempts = 3

// GET /api/groups
func (db *DBHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var memberships []models.GroupMembership
	err := db.Preload("Group").
		Where("user_id = ?", userID).
		Order("joined_at asc").
		Find(&memberships).Error
	if err != nil {
		internalError(w, "GetGroups", "failed to fetch memberships", "user_id", userID, "error", err)
		return
	}

	groups := make([]models.Group, 0, len(memberships))
	for _, m := range memberships {
		if m.Group != nil {
			groups = append(groups, *m.Group)
		}
	}

	utils.JSONResponse(w, http.StatusOK, groups)
}

// POST /api/groups
func (db *DBHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createGroupRequest
	if !db.decodeAndValidate(w, r, "CreateGroup", &req, "Group name is required") {
		return
	}

	group := models.Group{Name: req.Name}
	var err error
	for attempt := 1; attempt <= joinCodeAttempts; attempt++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			return createGroupWithOwner(tx, &group, userID)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		slog.Warn("CreateGroup: join code collision, retrying", "attempt", attempt)
	}
	if err != nil {
		internalError(w, "CreateGroup", "failed to create group", "user_id", userID, "error", err)
		return
	}

	slog.Info("CreateGroup: created group", "group_id", group.ID, "user_id", userID)
	utils.JSONResponse(w, http.StatusOK, group)
}

// POST /api/groups/join
func (db *DBHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req joinGroupRequest
	if !db.decodeAndValidate(w, r, "JoinGroup", &req, "Join ID is required") {
		return
	}

	var group models.Group
	err := db.Where("join_id = ?", req.JoinID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorResponse(w, http.StatusNotFound, "Invalid join ID")
		return
	}
	if err != nil {
		internalError(w, "JoinGroup", "failed to look up group", "error", err)
		return
	}

	member, err := isMember(db.DB, userID, group.ID)
	if err != nil {
		internalError(w, "JoinGroup", "failed to check membership", "group_id", group.ID, "error", err)
		return
	}
	if member {
		utils.ErrorResponse(w, http.StatusBadRequest, "You are already a member of this group")
		return
	}

	membership := models.GroupMembership{UserID: userID, GroupID: group.ID}
	if err := db.Create(&membership).Error; err != nil {
		// Lost a race with a concurrent join by the same user.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.ErrorResponse(w, http.StatusBadRequest, "You are already a member of this group")
			return
		}
		internalError(w, "JoinGroup", "failed to create membership", "group_id", group.ID, "error", err)
		return
	}

	slog.Info("JoinGroup: joined group", "group_id", group.ID, "user_id", userID)
	utils.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully joined group",
		"group":   group,
	})
}

// GET /api/groups/{groupID}
func (db *DBHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	groupID := r.PathValue("groupID")

	membership, err := findMembership(db.DB, userID, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorResponse(w, http.StatusForbidden, "Not a member of this group")
		return
	}
	if err != nil {
		internalError(w, "GetGroup", "failed to check membership", "group_id", groupID, "error", err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, membership.Group)
}
