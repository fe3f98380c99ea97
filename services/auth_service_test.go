package services

import (
	"testing"
	"time"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/repository"
	"github.com/Deji-py/eco-rider/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// captureMailer records the last code instead of sending it.
type captureMailer struct {
	email string
	code  string
	sent  int
}

func (m *captureMailer) SendOTP(email, code string) error {
	m.email, m.code = email, code
	m.sent++
	return nil
}

func newAuthService(db *gorm.DB, mailer Mailer) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRiderRepository(db),
		mailer, "test-secret", time.Hour,
	)
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	db := testDB(t)
	mailer := &captureMailer{}
	svc := newAuthService(db, mailer)

	user, err := svc.Register("New.Rider@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "new.rider@example.com", user.Email, "email normalized")
	assert.False(t, user.EmailVerified)
	require.Equal(t, 1, mailer.sent)
	require.Len(t, mailer.code, 6)

	// login before verification is refused
	_, _, err = svc.Login("new.rider@example.com", "password123")
	require.ErrorIs(t, err, ErrEmailNotVerified)

	// wrong code does not verify
	_, _, err = svc.VerifyOTP("new.rider@example.com", "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)

	token, verified, err := svc.VerifyOTP("new.rider@example.com", mailer.code)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)

	claims, err := utils.ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// a used code is gone
	_, _, err = svc.VerifyOTP("new.rider@example.com", mailer.code)
	require.ErrorIs(t, err, ErrInvalidOTP)

	_, loggedIn, err := svc.Login("new.rider@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db, &captureMailer{})

	_, err := svc.Register("taken@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register("TAKEN@example.com", "different456")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testDB(t)
	mailer := &captureMailer{}
	svc := newAuthService(db, mailer)

	_, err := svc.Register("rider@example.com", "password123")
	require.NoError(t, err)
	_, _, err = svc.VerifyOTP("rider@example.com", mailer.code)
	require.NoError(t, err)

	_, _, err = svc.Login("rider@example.com", "wrongpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	db := testDB(t)
	mailer := &captureMailer{}
	svc := newAuthService(db, mailer)

	_, err := svc.Register("rider@example.com", "oldpass123")
	require.NoError(t, err)
	_, _, err = svc.VerifyOTP("rider@example.com", mailer.code)
	require.NoError(t, err)

	// unknown email must not be distinguishable
	require.NoError(t, svc.RequestPasswordReset("ghost@example.com"))
	sentBefore := mailer.sent

	require.NoError(t, svc.RequestPasswordReset("rider@example.com"))
	require.Equal(t, sentBefore+1, mailer.sent)

	require.ErrorIs(t, svc.ResetPassword("rider@example.com", "000000", "newpass456"), ErrInvalidOTP)
	require.NoError(t, svc.ResetPassword("rider@example.com", mailer.code, "newpass456"))

	_, _, err = svc.Login("rider@example.com", "oldpass123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("rider@example.com", "newpass456")
	require.NoError(t, err)
}

func TestCurrentSessionDerivesProfileState(t *testing.T) {
	db := testDB(t)
	mailer := &captureMailer{}
	svc := newAuthService(db, mailer)

	user, err := svc.Register("rider@example.com", "password123")
	require.NoError(t, err)
	_, _, err = svc.VerifyOTP("rider@example.com", mailer.code)
	require.NoError(t, err)

	sess, err := svc.CurrentSession(user.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionIncompleteProfile, sess.State)
	assert.Nil(t, sess.Rider)

	vt := &entity.VehicleType{Name: "Motorcycle"}
	require.NoError(t, db.Create(vt).Error)
	require.NoError(t, db.Create(&entity.Rider{
		UserID: user.ID, FirstName: "Ade", LastName: "Okafor",
		VehicleTypeID: vt.ID, Status: entity.RiderAvailable,
	}).Error)

	sess, err = svc.CurrentSession(user.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionCompleteProfile, sess.State)
	require.NotNil(t, sess.Rider)
	assert.Equal(t, "Ade", sess.Rider.FirstName)
}
