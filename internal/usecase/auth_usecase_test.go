package usecase

import (
	"context"
	"strings"
	"testing"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"
	"hospital-scheduling/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) tokenKeys(prefix string) []string {
	var out []string
	for _, k := range f.miniRedis.Keys() {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, f.db, entity.RolePatient, "jane@clinic.test")

	resp, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "Jane@Clinic.test", Password: testutil.DefaultPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, "patient", resp.User.Role)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RolePatient, claims.Role)
	assert.True(t, f.miniRedis.Exists(jwt.AccessTokenKey(user.ID, claims.TokenID)))
	assert.Len(t, f.tokenKeys("refresh_token:"), 1)
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionUserLogin))
}

func TestLogin_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedUser(t, f.db, entity.RolePatient, "jane@clinic.test")
	inactive := testutil.SeedUser(t, f.db, entity.RoleDoctor, "off@clinic.test")
	require.NoError(t, f.db.Model(&entity.User{}).Where("id = ?", inactive.ID).Update("is_active", false).Error)

	_, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "jane@clinic.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@clinic.test", Password: testutil.DefaultPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "off@clinic.test", Password: testutil.DefaultPassword})
	assert.ErrorIs(t, err, ErrUserInactive)

	assert.Empty(t, f.tokenKeys("access_token:"))
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, f.db, entity.RoleAdmin, "admin@clinic.test")

	resp, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "admin@clinic.test", Password: testutil.DefaultPassword})
	require.NoError(t, err)
	access, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateToken(resp.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, actorOf(user), access.TokenID, refresh.TokenID))
	assert.Empty(t, f.tokenKeys("access_token:"))
	assert.Empty(t, f.tokenKeys("refresh_token:"))
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionUserLogout))
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedUser(t, f.db, entity.RoleReceptionist, "desk@clinic.test")

	login, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "desk@clinic.test", Password: testutil.DefaultPassword})
	require.NoError(t, err)

	_, err = f.auth.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	rotated, err := f.auth.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleReceptionist, claims.Role)

	_, err = f.auth.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.auth.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctor := testutil.SeedDoctor(t, f.db, "175000")
	patient := testutil.SeedPatient(t, f.db)
	admin := testutil.SeedUser(t, f.db, entity.RoleAdmin, "admin@clinic.test")

	t.Run("doctor", func(t *testing.T) {
		me, err := f.auth.GetCurrentUser(ctx, actorOf(doctor))
		require.NoError(t, err)
		assert.Equal(t, "doctor", me.Role)
		require.NotNil(t, me.DoctorProfile)
		assert.Equal(t, "175000", me.DoctorProfile.ConsultationFee.String())
		assert.Nil(t, me.PatientProfile)
	})

	t.Run("patient", func(t *testing.T) {
		me, err := f.auth.GetCurrentUser(ctx, actorOf(patient))
		require.NoError(t, err)
		require.NotNil(t, me.PatientProfile)
		assert.Nil(t, me.DoctorProfile)
	})

	t.Run("admin", func(t *testing.T) {
		me, err := f.auth.GetCurrentUser(ctx, actorOf(admin))
		require.NoError(t, err)
		assert.Equal(t, "admin", me.Role)
		assert.Nil(t, me.DoctorProfile)
		assert.Nil(t, me.PatientProfile)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.auth.GetCurrentUser(ctx, entity.Actor{Role: entity.RoleAdmin})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
