package decision

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"craft_market/internal/domain"
	"craft_market/internal/domain/entity"
	"craft_market/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// decisionSchema is the fixed response contract: identifier shapes,
// non-negative quantities, strictly positive offer prices. Catalog
// membership is checked separately because the catalog is configuration,
// not schema.
const decisionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "buys": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["resource", "qty"],
        "properties": {
          "resource": {"type": "string", "pattern": "^H[0-9]{2}$"},
          "qty": {"type": "integer", "minimum": 0}
        }
      }
    },
    "crafts": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["product", "qty"],
        "properties": {
          "product": {"type": "string", "pattern": "^P[0-9]{2}$"},
          "qty": {"type": "integer", "minimum": 0}
        }
      }
    },
    "offers": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["product", "price", "qty"],
        "properties": {
          "product": {"type": "string", "pattern": "^P[0-9]{2}$"},
          "price": {"type": "integer", "minimum": 1},
          "qty": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("decision.schema.json", decisionSchema) //nolint:gochecknoglobals

// ParseAction validates raw decision JSON against the contract and the
// closed catalog enums, returning a typed action. Any failure here means
// the response never reaches the sanitizer.
func ParseAction(catalog entity.Catalog, raw []byte) (entity.RequestedAction, error) {
	var generic any
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&generic); err != nil {
		return entity.RequestedAction{}, domain.WrapError(err, errcodes.InvalidDecision, "decision is not valid JSON")
	}

	if err := compiledSchema.Validate(generic); err != nil {
		return entity.RequestedAction{}, domain.WrapError(err, errcodes.InvalidDecision, "decision violates response schema")
	}

	var action entity.RequestedAction
	if err := json.Unmarshal(raw, &action); err != nil {
		return entity.RequestedAction{}, domain.WrapError(err, errcodes.InvalidDecision, "decision does not decode")
	}

	for _, buy := range action.Buys {
		if _, ok := catalog.Resource(buy.Resource); !ok {
			return entity.RequestedAction{}, domain.NewError(errcodes.UnknownResource,
				fmt.Sprintf("unknown resource %q", buy.Resource))
		}
	}
	for _, craft := range action.Crafts {
		if _, ok := catalog.Product(craft.Product); !ok {
			return entity.RequestedAction{}, domain.NewError(errcodes.UnknownProduct,
				fmt.Sprintf("unknown product %q", craft.Product))
		}
	}
	for _, offer := range action.Offers {
		if _, ok := catalog.Product(offer.Product); !ok {
			return entity.RequestedAction{}, domain.NewError(errcodes.UnknownProduct,
				fmt.Sprintf("unknown product %q", offer.Product))
		}
	}

	return action, nil
}
