package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/service/cache/provider/primitive"
)

type payload struct {
	AuctionId string `json:"auctionId"`
	Floor     string `json:"floor"`
}

type cacheSuite struct {
	suite.Suite

	c   ctx.Ctx
	svc Service
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(cacheSuite))
}

func (s *cacheSuite) SetupTest() {
	s.c = ctx.Background()
	s.svc = New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "test",
		Cache: primitive.NewPrimitive("test", 1),
	})
}

func (s *cacheSuite) TestGetMiss() {
	out := payload{}
	s.Equal(ErrNotFound, s.svc.Get(s.c, "missing", &out))
}

func (s *cacheSuite) TestSetThenGet() {
	in := payload{AuctionId: "a1", Floor: "10500"}
	s.NoError(s.svc.Set(s.c, "a1", &in))

	out := payload{}
	s.NoError(s.svc.Get(s.c, "a1", &out))
	s.Equal(in, out)
}

func (s *cacheSuite) TestGetByFuncFillsOnMiss() {
	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &payload{AuctionId: "a2", Floor: "9000"}, nil
	}

	out := payload{}
	s.NoError(s.svc.GetByFunc(s.c, "a2", &out, getter))
	s.Equal("9000", out.Floor)
	s.Equal(1, calls)

	// second read served from cache
	out = payload{}
	s.NoError(s.svc.GetByFunc(s.c, "a2", &out, getter))
	s.Equal("9000", out.Floor)
	s.Equal(1, calls)
}

func (s *cacheSuite) TestGetByFuncGetterError() {
	wantErr := errors.New("upstream down")
	out := payload{}
	err := s.svc.GetByFunc(s.c, "a3", &out, func() (interface{}, error) {
		return nil, wantErr
	})
	s.Equal(wantErr, err)
}

func (s *cacheSuite) TestDel() {
	in := payload{AuctionId: "a4"}
	s.NoError(s.svc.Set(s.c, "a4", &in))
	s.NoError(s.svc.Del(s.c, "a4"))

	out := payload{}
	s.Equal(ErrNotFound, s.svc.Get(s.c, "a4", &out))
}
