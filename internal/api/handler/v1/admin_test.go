package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/service"
)

type fakeAdminService struct{}

func (f *fakeAdminService) UpdateUserRole(_ context.Context, targetID uint, role string) (domain.User, error) {
	return domain.User{ID: targetID, Profile: &domain.Profile{Role: role}}, nil
}

func (f *fakeAdminService) BanUser(_ context.Context, caller domain.User, targetID uint) (domain.User, error) {
	if caller.ID == targetID {
		return domain.User{}, service.ErrSelfBan
	}

	return domain.User{ID: targetID}, nil
}

func (f *fakeAdminService) UnbanUser(_ context.Context, targetID uint) (domain.User, error) {
	return domain.User{ID: targetID, IsActive: true}, nil
}

func (f *fakeAdminService) DeleteUser(_ context.Context, caller domain.User, targetID uint) (domain.User, error) {
	if caller.ID == targetID {
		return domain.User{}, service.ErrSelfDelete
	}

	return domain.User{ID: targetID, Username: "cible"}, nil
}

func newAdminRouter(callerID uint) *gin.Engine {
	admin := domain.User{
		ID:      1,
		IsStaff: true,
		Profile: &domain.Profile{Role: domain.RoleAdmin},
	}
	member := domain.User{ID: 2}

	handler := NewAdminHandler(&fakeAdminService{}, newFakeUserService(admin, member))

	router := gin.New()
	group := router.Group("/admin", asUser(callerID))
	group.POST("/update-user-role/:userID", handler.HandleUpdateUserRole)
	group.POST("/ban-user/:userID", handler.HandleBanUser)
	group.POST("/unban-user/:userID", handler.HandleUnbanUser)
	group.DELETE("/delete-user/:userID", handler.HandleDeleteUser)

	return router
}

func TestAdminHandlerRequiresManager(t *testing.T) {
	t.Run("anonymous answers 401", func(t *testing.T) {
		rec := doRequest(newAdminRouter(0), http.MethodPost, "/admin/ban-user/2", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("plain member answers 403", func(t *testing.T) {
		rec := doRequest(newAdminRouter(2), http.MethodPost, "/admin/ban-user/1", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandleUpdateUserRole(t *testing.T) {
	t.Run("valid role answers 200", func(t *testing.T) {
		body := strings.NewReader(`{"role":"chef_d_equipe"}`)
		rec := doRequest(newAdminRouter(1), http.MethodPost, "/admin/update-user-role/2", body)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown role answers 400", func(t *testing.T) {
		body := strings.NewReader(`{"role":"owner"}`)
		rec := doRequest(newAdminRouter(1), http.MethodPost, "/admin/update-user-role/2", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad user id answers 400", func(t *testing.T) {
		body := strings.NewReader(`{"role":"member"}`)
		rec := doRequest(newAdminRouter(1), http.MethodPost, "/admin/update-user-role/abc", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleBanUserSelf(t *testing.T) {
	rec := doRequest(newAdminRouter(1), http.MethodPost, "/admin/ban-user/1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "vous ne pouvez pas vous bannir vous-même", resp["error"])
}

func TestHandleDeleteUser(t *testing.T) {
	t.Run("self delete answers 400", func(t *testing.T) {
		rec := doRequest(newAdminRouter(1), http.MethodDelete, "/admin/delete-user/1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete answers 200 with message", func(t *testing.T) {
		rec := doRequest(newAdminRouter(1), http.MethodDelete, "/admin/delete-user/2", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "l'utilisateur cible a été supprimé", resp["message"])
	})
}
