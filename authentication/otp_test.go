package authentication

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSMS struct {
	lastCode string
	fail     bool
}

func (f *fakeSMS) SendOTP(phone, code string) error {
	if f.fail {
		return errors.New("provider unreachable")
	}
	f.lastCode = code
	return nil
}

type fakeEmail struct {
	lastCode string
	lastTo   string
}

func (f *fakeEmail) SendOTP(email, name, userType, code string) error {
	f.lastTo = email
	f.lastCode = code
	return nil
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateOTP(6)
		assert.Len(t, code, 6)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9')
		}
	}
}

func TestOtpServiceIssueAndVerify(t *testing.T) {
	sms := &fakeSMS{}
	email := &fakeEmail{}
	svc := NewOtpService(NewMemoryStore(), sms, email)

	assert.NoError(t, svc.IssuePhone("9812345678"))
	assert.Len(t, sms.lastCode, 6)

	valid, _ := svc.Verify("9812345678", sms.lastCode)
	assert.True(t, valid)

	assert.NoError(t, svc.IssueEmail("a@x.com", "Asha", "Doctor"))
	assert.Equal(t, "a@x.com", email.lastTo)
	valid, _ = svc.Verify("a@x.com", email.lastCode)
	assert.True(t, valid)
}

func TestOtpServiceDispatchFailure(t *testing.T) {
	sms := &fakeSMS{fail: true}
	store := NewMemoryStore()
	svc := NewOtpService(store, sms, &fakeEmail{})

	err := svc.IssuePhone("9812345678")
	assert.ErrorIs(t, err, ErrDispatch)

	// The stored code survives a dispatch failure; a reissue with a working
	// provider replaces it.
	sms.fail = false
	assert.NoError(t, svc.IssuePhone("9812345678"))
	valid, _ := svc.Verify("9812345678", sms.lastCode)
	assert.True(t, valid)
}
