package storefront

import (
	"io"
	"reflect"
	"strings"

	"github.com/greenbean/storefront/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var decimalType = reflect.TypeOf(decimal.Decimal{})

// readPayload returns the request body as a loose map, from JSON or form encoding
func readPayload(c echo.Context) (map[string]interface{}, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		m := make(map[string]interface{})
		err := json.NewDecoder(req.Body).Decode(&m)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "decode json body")
		}
		return m, nil
	}
	form, err := c.FormParams()
	if err != nil {
		return nil, errors.Wrap(err, "parse form")
	}
	m := make(map[string]interface{}, len(form))
	for k, v := range form {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	return m, nil
}

// decimalHook turns JSON numbers and numeric strings into decimal.Decimal
func decimalHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int, int32, int64:
		return decimal.NewFromInt(cast.ToInt64(v)), nil
	}
	return data, nil
}

func weakDecode(input interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(decimalHook),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// cartItemPayload loosely typed cart line as posted by the shop scripts
type cartItemPayload struct {
	ID       int64           `mapstructure:"id"`
	Name     string          `mapstructure:"name"`
	Price    decimal.Decimal `mapstructure:"price"`
	Quantity *int            `mapstructure:"quantity"`
}

func (p cartItemPayload) lineItem() domain.CartLineItem {
	qty := 1
	if p.Quantity != nil {
		qty = *p.Quantity
	}
	return domain.CartLineItem{
		ProductID: p.ID,
		Name:      strings.TrimSpace(p.Name),
		Price:     p.Price,
		Quantity:  qty,
	}
}

func decodeCartItem(raw interface{}) (cartItemPayload, error) {
	var p cartItemPayload
	if err := weakDecode(raw, &p); err != nil {
		return p, errors.Wrap(err, "decode cart item")
	}
	if p.Price.IsNegative() {
		return p, errors.New("negative price")
	}
	return p, nil
}

// cartItemsList accepts a JSON array, or a JSON encoded array posted as a form field
func cartItemsList(raw interface{}) ([]interface{}, error) {
	switch v := raw.(type) {
	case nil:
		return []interface{}{}, nil
	case []interface{}:
		return v, nil
	case string:
		var items []interface{}
		if err := json.Unmarshal([]byte(v), &items); err != nil {
			return nil, errors.Wrap(err, "decode cart_items")
		}
		return items, nil
	}
	return nil, errors.Errorf("cart_items must be a list, got %T", raw)
}

type checkoutPayload struct {
	FirstName             string      `mapstructure:"first_name"`
	LastName              string      `mapstructure:"last_name"`
	Email                 string      `mapstructure:"email"`
	Phone                 string      `mapstructure:"phone"`
	StreetAddress         string      `mapstructure:"street_address"`
	City                  string      `mapstructure:"city"`
	State                 string      `mapstructure:"state"`
	ZipCode               string      `mapstructure:"zip_code"`
	Country               string      `mapstructure:"country"`
	BillingSameAsShipping interface{} `mapstructure:"billing_same_as_shipping"`
	PaymentMethod         string      `mapstructure:"payment_method"`
}

// billingFlag an absent field counts as checked, as does the "on" value of an html checkbox.
// Other values are read as booleans, so JSON true or "1" also count.
func billingFlag(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "on") {
		return true
	}
	return cast.ToBool(v)
}

func (p checkoutPayload) customer() domain.CustomerInfo {
	return domain.CustomerInfo{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Phone:     strings.TrimSpace(p.Phone),
		ShippingAddress: domain.Address{
			Street:  strings.TrimSpace(p.StreetAddress),
			City:    strings.TrimSpace(p.City),
			State:   strings.TrimSpace(p.State),
			ZipCode: strings.TrimSpace(p.ZipCode),
			Country: strings.TrimSpace(p.Country),
		},
		BillingSameAsShipping: billingFlag(p.BillingSameAsShipping),
	}
}
