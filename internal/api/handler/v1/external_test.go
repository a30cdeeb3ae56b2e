package v1

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

type fakeExternalService struct {
	created bool
}

func (f *fakeExternalService) ListExternals(_ context.Context) ([]domain.External, error) {
	return []domain.External{}, nil
}

func (f *fakeExternalService) GetExternal(_ context.Context, id uint) (domain.External, error) {
	return domain.External{ID: id}, nil
}

func (f *fakeExternalService) CreateExternal(_ context.Context, external domain.External) (domain.External, bool, error) {
	external.ID = 1

	return external, f.created, nil
}

func (f *fakeExternalService) UpdateExternal(_ context.Context, external domain.External) (domain.External, error) {
	return external, nil
}

func (f *fakeExternalService) DeleteExternal(_ context.Context, _ uint) error {
	return nil
}

func newExternalRouter(svc *fakeExternalService, callerID uint) *gin.Engine {
	handler := NewExternalHandler(svc, newFakeUserService(domain.User{ID: 1, IsActive: true}), nil)

	router := gin.New()
	router.POST("/external-members", asUser(callerID), handler.HandleCreateExternal)

	return router
}

func TestHandleCreateExternalStatusByUpsert(t *testing.T) {
	body := `{"name":"Pierre Martin","email":"pierre@example.org"}`

	t.Run("new email answers 201", func(t *testing.T) {
		router := newExternalRouter(&fakeExternalService{created: true}, 1)

		rec := doRequest(router, http.MethodPost, "/external-members", strings.NewReader(body))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("existing email answers 200", func(t *testing.T) {
		router := newExternalRouter(&fakeExternalService{created: false}, 1)

		rec := doRequest(router, http.MethodPost, "/external-members", strings.NewReader(body))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anonymous answers 401", func(t *testing.T) {
		router := newExternalRouter(&fakeExternalService{}, 0)

		rec := doRequest(router, http.MethodPost, "/external-members", strings.NewReader(body))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid email answers 400", func(t *testing.T) {
		router := newExternalRouter(&fakeExternalService{}, 1)

		rec := doRequest(router, http.MethodPost, "/external-members", strings.NewReader(`{"name":"Pierre"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
