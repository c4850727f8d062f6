package leaverequest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hris-leave/internal/domain"
	"go-hris-leave/internal/leaverequest"
	leaverequestMock "go-hris-leave/internal/leaverequest/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// stubRBAC grants exactly the listed resource:action pairs.
type stubRBAC map[string]bool

func (s stubRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return s[req.Resource+":"+req.Action], nil
}

type pageMeta struct {
	Total int64 `json:"total"`
}

type apiEnvelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta *pageMeta       `json:"meta"`
}

func TestLeaveRequestHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.NewString()
	id := uuid.NewString()

	call := func(svc leaverequest.Service, rbac stubRBAC, kind string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		raw, _ := json.Marshal(leaverequest.UpdateStatusRequest{Status: "APPROVED"})
		c.Request = httptest.NewRequest(http.MethodPatch, "/requests/"+kind+"/"+id+"/status", bytes.NewBuffer(raw))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "kind", Value: kind}, {Key: "id", Value: id}}
		c.Set("employee_id", actorID)
		leaverequest.NewHandler(svc, rbac).UpdateStatus(c)
		return w
	}

	t.Run("authorized approver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaverequestMock.NewMockService(ctrl)
		svc.EXPECT().UpdateRequestStatus(gomock.Any(), actorID, leaverequest.KindSickLeave, id, gomock.Any()).
			Return(leaverequest.RequestSummary{ID: id, Status: "APPROVED"}, nil)

		w := call(svc, stubRBAC{"sick_leave:approve": true}, "sick-leave")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("approver of another kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaverequestMock.NewMockService(ctrl)

		w := call(svc, stubRBAC{"sick_leave:approve": true}, "vacation")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaverequestMock.NewMockService(ctrl)

		w := call(svc, stubRBAC{}, "overtime")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveRequestHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.NewString()

	call := func(svc leaverequest.Service, rbac stubRBAC, target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		c.Set("employee_id", actorID)
		leaverequest.NewHandler(svc, rbac).List(c)
		return w
	}

	t.Run("restricted to readable kinds and paginated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaverequestMock.NewMockService(ctrl)
		svc.EXPECT().
			ListRequests(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter leaverequest.ListFilter) ([]leaverequest.RequestSummary, error) {
				assert.Equal(t, []leaverequest.Kind{leaverequest.KindVacation}, filter.Kinds)
				return []leaverequest.RequestSummary{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
			})

		w := call(svc, stubRBAC{"vacation:read_all": true}, "/requests?page=2&page_size=2")

		assert.Equal(t, http.StatusOK, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var rows []leaverequest.RequestSummary
		assert.NoError(t, json.Unmarshal(env.Data, &rows))
		assert.Len(t, rows, 1)
		assert.EqualValues(t, 3, env.Meta.Total)
	})

	t.Run("no read permission at all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leaverequestMock.NewMockService(ctrl)

		w := call(svc, stubRBAC{}, "/requests")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
