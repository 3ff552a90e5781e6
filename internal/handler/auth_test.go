package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantlens/tenantlens/internal/model"
	"github.com/tenantlens/tenantlens/internal/repository"
	"github.com/tenantlens/tenantlens/internal/service"
)

type memUsers struct {
	users map[string]*model.User
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u := *user
	m.users[user.Email] = &u
	return nil
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, email, hash string) error {
	if user, ok := m.users[email]; ok {
		user.PasswordHashed = hash
	}
	return nil
}

type memSender struct {
	codes map[string]string
}

func (m *memSender) SendVerificationCode(_ context.Context, to, code string) error {
	m.codes[to] = code
	return nil
}

type authFixture struct {
	handler *AuthHandler
	users   *memUsers
	sender  *memSender
}

func newAuthFixture() *authFixture {
	users := &memUsers{users: map[string]*model.User{}}
	sender := &memSender{codes: map[string]string{}}
	verifications := service.NewVerificationService(sender, 10*time.Minute)
	auth := service.NewAuthService(users, service.NewPasswordHasher(), verifications)

	return &authFixture{
		handler: NewAuthHandler(auth),
		users:   users,
		sender:  sender,
	}
}

func (f *authFixture) post(t *testing.T, handlerFunc http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func (f *authFixture) verify(t *testing.T, email string) {
	t.Helper()
	rec := f.post(t, f.handler.RequestVerification, `{"email":"`+email+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	code := f.sender.codes[email]
	require.NotEmpty(t, code)

	rec = f.post(t, f.handler.VerifyCode, `{"email":"`+email+`","code":"`+code+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSignupEndToEnd(t *testing.T) {
	f := newAuthFixture()
	f.verify(t, "ada@example.com")

	rec := f.post(t, f.handler.Signup, `{"email":"ada@example.com","name":"Ada","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "demo::ada@example.com", resp["token"])
	assert.Equal(t, "Ada", resp["name"])

	// Login works with the same credentials
	rec = f.post(t, f.handler.Login, `{"email":"ada@example.com","password":"pw123456"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSignupWithoutVerificationIs400(t *testing.T) {
	f := newAuthFixture()

	rec := f.post(t, f.handler.Signup, `{"email":"ada@example.com","name":"Ada","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestVerificationConflict(t *testing.T) {
	f := newAuthFixture()
	f.users.users["ada@example.com"] = &model.User{Email: "ada@example.com"}

	rec := f.post(t, f.handler.RequestVerification, `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVerifyCodeMismatchIs400(t *testing.T) {
	f := newAuthFixture()

	rec := f.post(t, f.handler.RequestVerification, `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.post(t, f.handler.VerifyCode, `{"email":"ada@example.com","code":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyCodeUnknownEmailIs404(t *testing.T) {
	f := newAuthFixture()

	rec := f.post(t, f.handler.VerifyCode, `{"email":"nobody@example.com","code":"123456"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupExistingAccountIs409(t *testing.T) {
	f := newAuthFixture()
	f.verify(t, "ada@example.com")

	// Account appears between verification and signup
	f.users.users["ada@example.com"] = &model.User{Email: "ada@example.com"}

	rec := f.post(t, f.handler.Signup, `{"email":"ada@example.com","name":"Ada","password":"pw123456"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBadCredentialsIs401(t *testing.T) {
	f := newAuthFixture()

	rec := f.post(t, f.handler.Login, `{"email":"ghost@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid credentials", resp["error"])
}

func TestMalformedBodyIs400(t *testing.T) {
	f := newAuthFixture()

	for _, fn := range []http.HandlerFunc{
		f.handler.RequestVerification,
		f.handler.VerifyCode,
		f.handler.Signup,
		f.handler.Login,
	} {
		rec := f.post(t, fn, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}
