package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/entities"
)

const (
	staffErrorStatus = http.StatusBadRequest
	staffNotFound    = "Staff member not found"
)

type StaffController struct {
	store  StaffStore
	deps   ControllerDeps
	logger *zap.Logger
}

func NewStaffController(store StaffStore, deps ControllerDeps) *StaffController {
	useJSONFieldNames()
	return &StaffController{
		store:  store,
		deps:   deps,
		logger: deps.logger(),
	}
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var req createStaffRequest
	if reqErr := decodeBody(c, staffRecord, &req); reqErr != nil {
		respondRequestError(c, reqErr, staffErrorStatus)
		return
	}

	staff, err := req.toEntity()
	if err != nil {
		respondRequestError(c, invalidRequest(staffRecord, err), staffErrorStatus)
		return
	}

	ctx, cancel := storeContext(c, sc.deps.QueryTimeout)
	defer cancel()

	err = sc.store.CreateStaff(ctx, &staff)
	sc.deps.recordMutation(requestMeta(c), entities.AuditEventCreate, entities.StaffEntity, staff.ID, err)
	if err != nil {
		respondStoreError(c, sc.logger, err, staffErrorStatus, staffNotFound)
		return
	}

	respondCreated(c, staff)
}

func (sc *StaffController) ListStaff(c *gin.Context) {
	ctx, cancel := storeContext(c, sc.deps.QueryTimeout)
	defer cancel()

	staff, err := sc.store.ListStaff(ctx)
	if err != nil {
		respondStoreError(c, sc.logger, err, staffErrorStatus, staffNotFound)
		return
	}
	if staff == nil {
		staff = []entities.Staff{}
	}

	respondOK(c, staff)
}

func (sc *StaffController) GetStaff(c *gin.Context) {
	ctx, cancel := storeContext(c, sc.deps.QueryTimeout)
	defer cancel()

	staff, err := sc.store.GetStaffByID(ctx, c.Param("id"))
	if err != nil {
		respondStoreError(c, sc.logger, err, staffErrorStatus, staffNotFound)
		return
	}

	respondOK(c, staff)
}

func (sc *StaffController) UpdateStaff(c *gin.Context) {
	var req updateStaffRequest
	if reqErr := decodeBody(c, staffRecord, &req); reqErr != nil {
		respondRequestError(c, reqErr, staffErrorStatus)
		return
	}

	update, err := req.toUpdate()
	if err != nil {
		respondRequestError(c, invalidRequest(staffRecord, err), staffErrorStatus)
		return
	}

	id := c.Param("id")

	ctx, cancel := storeContext(c, sc.deps.QueryTimeout)
	defer cancel()

	staff, err := sc.store.UpdateStaff(ctx, id, update)
	sc.deps.recordMutation(requestMeta(c), entities.AuditEventUpdate, entities.StaffEntity, id, err)
	if err != nil {
		respondStoreError(c, sc.logger, err, staffErrorStatus, staffNotFound)
		return
	}

	respondOK(c, staff)
}

func (sc *StaffController) DeleteStaff(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := storeContext(c, sc.deps.QueryTimeout)
	defer cancel()

	err := sc.store.DeleteStaff(ctx, id)
	sc.deps.recordMutation(requestMeta(c), entities.AuditEventDelete, entities.StaffEntity, id, err)
	if err != nil {
		respondStoreError(c, sc.logger, err, staffErrorStatus, staffNotFound)
		return
	}

	respondMessage(c, "Staff member deleted")
}
