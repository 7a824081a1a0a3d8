package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Finure/app-gateway/internal/apperrors"
	"github.com/Finure/app-gateway/internal/model"
)

const (
	msgMissing    = "field required"
	msgNone       = "none is not an allowed value"
	msgInteger    = "value is not a valid integer"
	msgBool       = "value could not be parsed to a boolean"
	msgUUID       = "value is not a valid uuid"
	msgDict       = "value is not a valid dict"
	msgJSONDecode = "JSON decode error"

	typeMissing    = "value_error.missing"
	typeNone       = "type_error.none.not_allowed"
	typeInteger    = "type_error.integer"
	typeBool       = "type_error.bool"
	typeUUID       = "type_error.uuid"
	typeDict       = "type_error.dict"
	typeJSONDecode = "value_error.jsondecode"
)

var (
	trueStrings  = map[string]struct{}{"1": {}, "on": {}, "t": {}, "true": {}, "y": {}, "yes": {}}
	falseStrings = map[string]struct{}{"0": {}, "off": {}, "f": {}, "false": {}, "n": {}, "no": {}}
)

// DecodeApplication parses a JSON request body into an ApplicationRecord.
// On failure it returns a *apperrors.ValidationError naming every rejected
// field in declaration order. Unknown fields are ignored.
func DecodeApplication(body []byte) (model.ApplicationRecord, error) {
	var record model.ApplicationRecord

	fields, err := decodeObject(body)
	if err != nil {
		return record, err
	}

	v := &collector{fields: fields}

	record.ID = v.uuidValue("id")
	record.Age = v.intValue("age")
	record.Income = v.intValue("income")
	record.Employed = v.boolValue("employed")
	record.CreditScore = v.intValue("credit_score")
	record.LoanAmount = v.intValue("loan_amount")

	if len(v.errs) > 0 {
		return model.ApplicationRecord{}, &apperrors.ValidationError{Fields: v.errs}
	}

	return record, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, bodyError(msgJSONDecode, typeJSONDecode)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, bodyError(msgJSONDecode, typeJSONDecode)
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, bodyError(msgDict, typeDict)
	}

	return fields, nil
}

func bodyError(msg, typ string) error {
	return &apperrors.ValidationError{Fields: []apperrors.FieldError{
		{Loc: []string{"body"}, Msg: msg, Type: typ},
	}}
}

type collector struct {
	fields map[string]any
	errs   []apperrors.FieldError
}

func (c *collector) fail(field, msg, typ string) {
	c.errs = append(c.errs, apperrors.FieldError{
		Loc:  []string{"body", field},
		Msg:  msg,
		Type: typ,
	})
}

// lookup reports a present, non-null value or records why there is none.
func (c *collector) lookup(field string) (any, bool) {
	value, ok := c.fields[field]
	if !ok {
		c.fail(field, msgMissing, typeMissing)
		return nil, false
	}

	if value == nil {
		c.fail(field, msgNone, typeNone)
		return nil, false
	}

	return value, true
}

func (c *collector) uuidValue(field string) uuid.UUID {
	value, ok := c.lookup(field)
	if !ok {
		return uuid.Nil
	}

	s, ok := value.(string)
	if !ok {
		c.fail(field, msgUUID, typeUUID)
		return uuid.Nil
	}

	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		c.fail(field, msgUUID, typeUUID)
		return uuid.Nil
	}

	return id
}

func (c *collector) intValue(field string) int {
	value, ok := c.lookup(field)
	if !ok {
		return 0
	}

	n, ok := toInt(value)
	if !ok {
		c.fail(field, msgInteger, typeInteger)
		return 0
	}

	return n
}

func (c *collector) boolValue(field string) bool {
	value, ok := c.lookup(field)
	if !ok {
		return false
	}

	b, ok := toBool(value)
	if !ok {
		c.fail(field, msgBool, typeBool)
		return false
	}

	return b
}

// toInt accepts JSON integers, floats without a fractional part and decimal
// integer strings.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}

		f, err := v.Float64()
		if err != nil {
			return 0, false
		}

		return floatToInt(f)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}

		return int(n), true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int(f), true
}

// toBool accepts JSON booleans, the numbers 0 and 1 and the usual yes/no
// spellings.
func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case json.Number:
		switch v.String() {
		case "0":
			return false, true
		case "1":
			return true, true
		}

		return false, false
	case string:
		s := strings.ToLower(strings.TrimSpace(v))

		if _, ok := trueStrings[s]; ok {
			return true, true
		}

		if _, ok := falseStrings[s]; ok {
			return false, true
		}

		return false, false
	default:
		return false, false
	}
}
