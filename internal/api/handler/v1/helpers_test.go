package v1

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"github.com/chahin-fh/laboissimlocal/internal/api/middleware"
	"github.com/chahin-fh/laboissimlocal/internal/domain"
	"github.com/chahin-fh/laboissimlocal/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserService resolves authenticated callers from a fixed user set.
type fakeUserService struct {
	users map[uint]domain.User
}

func newFakeUserService(users ...domain.User) *fakeUserService {
	svc := &fakeUserService{users: make(map[uint]domain.User)}
	for _, u := range users {
		svc.users[u.ID] = u
	}

	return svc
}

func (f *fakeUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserService) TeamMembers(_ context.Context) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserService) ListUsers(_ context.Context) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserService) SearchMembers(_ context.Context, _ string) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserService) UpdateNames(_ context.Context, _ uint, _, _ string) error {
	return nil
}

func (f *fakeUserService) UpdateProfile(_ context.Context, _ uint, profile domain.Profile) (domain.Profile, error) {
	return profile, nil
}

// asUser mimics the JWT middleware by stamping the caller id.
func asUser(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if userID != 0 {
			ctx.Set(middleware.CtxKeyUserID, userID)
		}
		ctx.Next()
	}
}

func doRequest(router *gin.Engine, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}
