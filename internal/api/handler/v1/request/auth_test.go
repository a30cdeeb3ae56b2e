package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Username:        "mcurie",
		Email:           "marie@lab.fr",
		Password:        "motdepasse1",
		ConfirmPassword: "motdepasse1",
	}

	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(_ *SignupRequest) {},
		},
		{
			name:    "password without digit",
			mutate:  func(r *SignupRequest) { r.Password = "motdepasse"; r.ConfirmPassword = "motdepasse" },
			wantErr: errInvalidPassword,
		},
		{
			name:    "password without letter",
			mutate:  func(r *SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" },
			wantErr: errInvalidPassword,
		},
		{
			name:    "password too short",
			mutate:  func(r *SignupRequest) { r.Password = "mdp1"; r.ConfirmPassword = "mdp1" },
			wantErr: errInvalidPassword,
		},
		{
			name:    "confirmation mismatch",
			mutate:  func(r *SignupRequest) { r.ConfirmPassword = "motdepasse2" },
			wantErr: errConfirmPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "pas-un-email"
		assert.Error(t, req.Validate())
	})

	t.Run("short username", func(t *testing.T) {
		req := valid
		req.Username = "mc"
		assert.Error(t, req.Validate())
	})
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "marie@lab.fr", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "marie@lab.fr"}).Validate())
}
