package tests

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/DiosOne/library-api/internal/config"
	"github.com/DiosOne/library-api/internal/server"
	"github.com/DiosOne/library-api/internal/server/mocks"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func newTestServer(t *testing.T) (*server.Server, *mocks.MockStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockStorage := mocks.NewMockStorage(ctrl)
	s := server.New(config.Config{Addr: ":8080"}, mockStorage)
	return s, mockStorage
}

// doJSON runs one request through the full router so routing, binding and
// middleware are all in play.
func doJSON(s *server.Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

var gomockAny = gomock.Any()
