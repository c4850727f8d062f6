package vacationcancellation_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	vacationerrors "go-hris-leave/internal/vacation/errors"
	"go-hris-leave/internal/vacationcancellation"
	cancellationMock "go-hris-leave/internal/vacationcancellation/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestCancellationHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()
	vacationID := uuid.NewString()

	newRequest := func(lang string) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		raw, _ := json.Marshal(vacationcancellation.CreateCancellationRequest{Description: "plans changed"})
		c.Request = httptest.NewRequest(http.MethodPost, "/vacations/"+vacationID+"/cancellations", bytes.NewBuffer(raw))
		c.Request.Header.Set("Content-Type", "application/json")
		if lang != "" {
			c.Request.Header.Set("Accept-Language", lang)
		}
		c.Params = gin.Params{{Key: "id", Value: vacationID}}
		c.Set("employee_id", employeeID)
		return c, w
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := cancellationMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), employeeID, vacationID, gomock.Any()).
			Return(vacationcancellation.CancellationResponse{VacationID: vacationID, Status: "PENDING"}, nil)

		c, w := newRequest("")
		vacationcancellation.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative cannot cancel is translated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := cancellationMock.NewMockService(ctrl)
		svc.EXPECT().Create(gomock.Any(), employeeID, vacationID, gomock.Any()).
			Return(vacationcancellation.CancellationResponse{}, vacationerrors.ErrCannotCancel)

		c, w := newRequest("id-ID")
		vacationcancellation.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "CANNOT_CANCEL", env.Error.Code)
		assert.Equal(t, "Cuti ini tidak dapat dibatalkan", env.Error.Message)
	})
}
