package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gridSheet/mocks"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	expectedApiRoutes := [][3]string{
		{http.MethodPost, "/:sheet_id/:cell_id/subscribe", "SubscribeAction"},
		{http.MethodPost, "/:sheet_id/:cell_id", "SetCellAction"},
		{http.MethodGet, "/:sheet_id/:cell_id", "GetCellAction"},
		{http.MethodDelete, "/:sheet_id/:cell_id", "ClearCellAction"},
		{http.MethodGet, "/:sheet_id", "GetSheetAction"},
		{http.MethodGet, "/:sheet_id/print/values", "PrintValuesAction"},
		{http.MethodGet, "/:sheet_id/print/texts", "PrintTextsAction"},
	}

	for _, expectedRoute := range expectedApiRoutes {
		t.Run("Route "+expectedRoute[2], func(t *testing.T) {
			apiController := mocks.NewApiController(t)
			router := SetupRouter(apiController)

			apiController.On(expectedRoute[2], mock.Anything).Return()

			path := strings.ReplaceAll(expectedRoute[1], ":sheet_id", "sheet1")
			path = strings.ReplaceAll(path, ":cell_id", "A1")

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(expectedRoute[0], "/api/"+ApiVersion+path, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			apiController.AssertNumberOfCalls(t, expectedRoute[2], 1)
		})
	}

	t.Run("healthcheck", func(t *testing.T) {
		apiController := mocks.NewApiController(t)
		router := SetupRouter(apiController)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/healthcheck", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "health", w.Body.String())
	})
}
