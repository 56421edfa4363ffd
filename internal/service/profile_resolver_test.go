package service

import (
	"testing"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/repository"
	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileResolverPicksRepositoryByRole(t *testing.T) {
	db := testutil.NewDB(t)
	resolver := NewProfileResolver(repository.NewDoctorProfileRepository(), repository.NewPatientProfileRepository())

	doctor := testutil.SeedDoctor(t, db, "250000")
	patient := testutil.SeedPatient(t, db)
	admin := testutil.SeedUser(t, db, entity.RoleAdmin, "admin@hospital.test")

	p, err := resolver.Resolve(db, doctor)
	require.NoError(t, err)
	require.NotNil(t, p.Doctor)
	assert.Nil(t, p.Patient)
	assert.Equal(t, "250000", p.Doctor.ConsultationFee.String())

	p, err = resolver.Resolve(db, patient)
	require.NoError(t, err)
	require.NotNil(t, p.Patient)
	assert.Nil(t, p.Doctor)

	p, err = resolver.Resolve(db, admin)
	require.NoError(t, err)
	assert.Nil(t, p.Doctor)
	assert.Nil(t, p.Patient)

	_, err = resolver.Resolve(db, &entity.User{RoleID: entity.RoleKind(99)})
	assert.Error(t, err)
}
