package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	mAccount "github.com/motorline/goapi/domain/account/mocks"
	"github.com/motorline/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}

	mockAccountUC.On("Get", mock.Anything, domain.BidderId("bidder-1")).Return(nil, nil)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", mockAccountUC)
	tkn, err := u.SignToken(ctx, "bidder-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	bidderId, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "bidder-1", bidderId)
}

func TestSignTokenCreatesAccount(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}

	mockAccountUC.On("Get", mock.Anything, domain.BidderId("new-bidder")).Return(nil, domain.ErrNotFound)
	mockAccountUC.On("Create", mock.Anything, domain.BidderId("new-bidder")).Return(nil, nil)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", mockAccountUC)
	tkn, err := u.SignToken(ctx, "new-bidder")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	mockAccountUC.AssertCalled(t, "Create", mock.Anything, domain.BidderId("new-bidder"))
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", mockAccountUC)
	_, err := u.ParseToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}
	mockAccountUC.On("Get", mock.Anything, domain.BidderId("bidder-1")).Return(nil, nil)

	ctx := ctx.Background()
	signer := usecase.New("secret-a", mockAccountUC)
	verifier := usecase.New("secret-b", mockAccountUC)

	tkn, err := signer.SignToken(ctx, "bidder-1")
	assert.NoError(t, err)

	_, err = verifier.ParseToken(ctx, tkn)
	assert.Error(t, err)
}
