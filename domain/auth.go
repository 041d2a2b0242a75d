package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/motorline/goapi/base/ctx"
)

type JwtCustomClaims struct {
	BidderId string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, bidderId BidderId) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (bidderId string, err error)
}
