package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAmount() {
	tests := []struct {
		desc       string
		amount     string
		expIsValid bool
	}{
		{
			desc:       "not a number",
			amount:     "abc",
			expIsValid: false,
		},
		{
			desc:       "zero",
			amount:     "0",
			expIsValid: false,
		},
		{
			desc:       "negative",
			amount:     "-10",
			expIsValid: false,
		},
		{
			desc:       "integer amount",
			amount:     "10500",
			expIsValid: true,
		},
		{
			desc:       "decimal amount",
			amount:     "10500.50",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAmount(t.amount), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
