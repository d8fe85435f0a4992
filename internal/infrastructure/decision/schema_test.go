package decision_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/internal/infrastructure/decision"
	"craft_market/pkg/errcodes"
)

func TestParseActionValid(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()

	raw := []byte(`{
		"buys": [{"resource": "H01", "qty": 3}],
		"crafts": [{"product": "P01", "qty": 2}],
		"offers": [{"product": "P01", "price": 9, "qty": 2}]
	}`)

	action, err := decision.ParseAction(catalog, raw)
	rq.NoError(err)

	rq.Equal([]entity.BuyOrder{{Resource: "H01", Qty: 3}}, action.Buys)
	rq.Equal([]entity.CraftOrder{{Product: "P01", Qty: 2}}, action.Crafts)
	rq.Equal([]entity.SellOffer{{Product: "P01", Price: 9, Qty: 2}}, action.Offers)
}

func TestParseActionEmpty(t *testing.T) {
	rq := require.New(t)

	action, err := decision.ParseAction(entity.DefaultCatalog(), []byte(`{}`))
	rq.NoError(err)
	rq.True(action.IsEmpty())
}

func TestParseActionRejections(t *testing.T) {
	rq := require.New(t)

	catalog := entity.DefaultCatalog()

	testCases := []struct {
		name string
		raw  string
		code string
	}{
		{
			name: "not json",
			raw:  `buy everything`,
			code: errcodes.InvalidDecision.String(),
		},
		{
			name: "negative qty",
			raw:  `{"buys": [{"resource": "H01", "qty": -1}]}`,
			code: errcodes.InvalidDecision.String(),
		},
		{
			name: "zero offer price",
			raw:  `{"offers": [{"product": "P01", "price": 0, "qty": 1}]}`,
			code: errcodes.InvalidDecision.String(),
		},
		{
			name: "fractional qty",
			raw:  `{"buys": [{"resource": "H01", "qty": 1.5}]}`,
			code: errcodes.InvalidDecision.String(),
		},
		{
			name: "malformed resource id",
			raw:  `{"buys": [{"resource": "gold", "qty": 1}]}`,
			code: errcodes.InvalidDecision.String(),
		},
		{
			name: "unexpected field",
			raw:  `{"steals": [{"victim": 0}]}`,
			code: errcodes.InvalidDecision.String(),
		},
		{
			name: "unknown resource outside catalog",
			raw:  `{"buys": [{"resource": "H99", "qty": 1}]}`,
			code: errcodes.UnknownResource.String(),
		},
		{
			name: "unknown product outside catalog",
			raw:  `{"offers": [{"product": "P99", "price": 3, "qty": 1}]}`,
			code: errcodes.UnknownProduct.String(),
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(*testing.T) {
			_, err := decision.ParseAction(catalog, []byte(tc.raw))
			rq.Error(err)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, code.String())
		})
	}
}
