package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/entities"
)

const (
	memberErrorStatus = http.StatusBadRequest
	memberNotFound    = "Member not found"
)

type MembersController struct {
	store  MemberStore
	deps   ControllerDeps
	logger *zap.Logger
}

func NewMembersController(store MemberStore, deps ControllerDeps) *MembersController {
	useJSONFieldNames()
	return &MembersController{
		store:  store,
		deps:   deps,
		logger: deps.logger(),
	}
}

// POST /api/members
func (mc *MembersController) CreateMember(c *gin.Context) {
	var req createMemberRequest
	if reqErr := decodeBody(c, memberRecord, &req); reqErr != nil {
		respondRequestError(c, reqErr, memberErrorStatus)
		return
	}

	member, err := req.toEntity()
	if err != nil {
		respondRequestError(c, invalidRequest(memberRecord, err), memberErrorStatus)
		return
	}

	ctx, cancel := storeContext(c, mc.deps.QueryTimeout)
	defer cancel()

	err = mc.store.CreateMember(ctx, &member)
	mc.deps.recordMutation(requestMeta(c), entities.AuditEventCreate, entities.MemberEntity, member.ID, err)
	if err != nil {
		respondStoreError(c, mc.logger, err, memberErrorStatus, memberNotFound)
		return
	}

	respondCreated(c, member)
}

// GET /api/members
func (mc *MembersController) ListMembers(c *gin.Context) {
	ctx, cancel := storeContext(c, mc.deps.QueryTimeout)
	defer cancel()

	members, err := mc.store.ListMembers(ctx)
	if err != nil {
		respondStoreError(c, mc.logger, err, memberErrorStatus, memberNotFound)
		return
	}
	if members == nil {
		members = []entities.Member{}
	}

	respondOK(c, members)
}

// GET /api/members/:id
func (mc *MembersController) GetMember(c *gin.Context) {
	ctx, cancel := storeContext(c, mc.deps.QueryTimeout)
	defer cancel()

	member, err := mc.store.GetMemberByID(ctx, c.Param("id"))
	if err != nil {
		respondStoreError(c, mc.logger, err, memberErrorStatus, memberNotFound)
		return
	}

	respondOK(c, member)
}

// PUT /api/members/:id
func (mc *MembersController) UpdateMember(c *gin.Context) {
	var req updateMemberRequest
	if reqErr := decodeBody(c, memberRecord, &req); reqErr != nil {
		respondRequestError(c, reqErr, memberErrorStatus)
		return
	}

	update, err := req.toUpdate()
	if err != nil {
		respondRequestError(c, invalidRequest(memberRecord, err), memberErrorStatus)
		return
	}

	id := c.Param("id")

	ctx, cancel := storeContext(c, mc.deps.QueryTimeout)
	defer cancel()

	member, err := mc.store.UpdateMember(ctx, id, update)
	mc.deps.recordMutation(requestMeta(c), entities.AuditEventUpdate, entities.MemberEntity, id, err)
	if err != nil {
		respondStoreError(c, mc.logger, err, memberErrorStatus, memberNotFound)
		return
	}

	respondOK(c, member)
}

// DELETE /api/members/:id
func (mc *MembersController) DeleteMember(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := storeContext(c, mc.deps.QueryTimeout)
	defer cancel()

	err := mc.store.DeleteMember(ctx, id)
	mc.deps.recordMutation(requestMeta(c), entities.AuditEventDelete, entities.MemberEntity, id, err)
	if err != nil {
		respondStoreError(c, mc.logger, err, memberErrorStatus, memberNotFound)
		return
	}

	respondMessage(c, "Member deleted")
}
