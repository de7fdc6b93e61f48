package polyrat

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v4"
)

// ============================================================
// Serialization — JSON and msgpack
// ============================================================

type wireTerm struct {
	Degree int    `json:"degree" msgpack:"d"`
	Coeff  string `json:"coeff" msgpack:"c"`
}

type wireValue struct {
	Symbol string     `json:"symbol" msgpack:"s"`
	Poly   []wireTerm `json:"poly" msgpack:"p"`
	Num    []wireTerm `json:"num,omitempty" msgpack:"n,omitempty"`
	Den    []wireTerm `json:"den,omitempty" msgpack:"q,omitempty"`
}

func wireTerms(p Poly) []wireTerm {
	terms := p.Terms()
	out := make([]wireTerm, len(terms))
	for i, t := range terms {
		out[i] = wireTerm{Degree: t.Degree, Coeff: t.Coeff.String()}
	}
	return out
}

func (v Value) wire() wireValue {
	w := wireValue{Symbol: v.Symbol(), Poly: wireTerms(v.poly)}
	if !v.rem.IsZero() {
		w.Num = wireTerms(v.rem.num)
		w.Den = wireTerms(v.rem.Denominator())
	}
	return w
}

func polyFromWire(terms []wireTerm, symbol string) (Poly, error) {
	coeffs := make(map[int]Rat, len(terms))
	for _, t := range terms {
		if t.Degree < 0 {
			return Poly{}, errors.Wrapf(ErrTypeMismatch, "negative degree %d", t.Degree)
		}
		c, err := ParseRat(t.Coeff)
		if err != nil {
			return Poly{}, err
		}
		coeffs[t.Degree] = coeffs[t.Degree].Add(c)
	}
	return newPoly(coeffs, symbol), nil
}

// value re-normalizes on decode, so an encoded non-canonical pair still
// yields the normal form.
func (w wireValue) value() (Value, error) {
	p, err := polyFromWire(w.Poly, w.Symbol)
	if err != nil {
		return Value{}, err
	}
	if len(w.Num) == 0 && len(w.Den) == 0 {
		return Value{poly: p}, nil
	}
	num, err := polyFromWire(w.Num, w.Symbol)
	if err != nil {
		return Value{}, err
	}
	den := Constant(RatInt(1), w.Symbol)
	if len(w.Den) > 0 {
		if den, err = polyFromWire(w.Den, w.Symbol); err != nil {
			return Value{}, err
		}
	}
	f, err := NewFraction(num, den)
	if err != nil {
		return Value{}, err
	}
	return std.Add(p, f)
}

func (v Value) toJSON() map[string]interface{} {
	w := v.wire()
	terms := func(ts []wireTerm) []interface{} {
		out := make([]interface{}, len(ts))
		for i, t := range ts {
			out[i] = map[string]interface{}{"degree": t.Degree, "coeff": t.Coeff}
		}
		return out
	}
	m := map[string]interface{}{
		"type":   "value",
		"kind":   v.Kind().String(),
		"symbol": w.Symbol,
		"poly":   terms(w.Poly),
		"string": v.String(),
	}
	if w.Num != nil {
		m["num"] = terms(w.Num)
		m["den"] = terms(w.Den)
	}
	return m
}

func ToJSON(v Value) (string, error) {
	b, err := json.Marshal(v.toJSON())
	return string(b), err
}

// FromJSON decodes the object produced by ToJSON. Only "symbol", "poly",
// "num" and "den" are read; coefficients may be strings or numbers.
func FromJSON(data map[string]interface{}) (Value, error) {
	if data == nil {
		return Value{}, errors.Wrap(ErrConversion, "value must be an object")
	}
	if typ, ok := data["type"]; ok && typ != "value" {
		return Value{}, errors.Wrapf(ErrConversion, "unexpected type %v", typ)
	}
	var w wireValue
	if s, ok := data["symbol"]; ok {
		sym, ok := s.(string)
		if !ok {
			return Value{}, errors.Wrap(ErrConversion, "field 'symbol' must be a string")
		}
		w.Symbol = sym
	}
	var err error
	for field, dst := range map[string]*[]wireTerm{"poly": &w.Poly, "num": &w.Num, "den": &w.Den} {
		if *dst, err = termsFromJSON(data, field); err != nil {
			return Value{}, err
		}
	}
	return w.value()
}

func termsFromJSON(data map[string]interface{}, field string) ([]wireTerm, error) {
	raw, ok := data[field]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.Wrapf(ErrConversion, "%q must be an array", field)
	}
	out := make([]wireTerm, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.Wrapf(ErrConversion, "%s[%d] must be an object", field, i)
		}
		deg, ok := m["degree"].(float64)
		if !ok || deg != float64(int(deg)) {
			return nil, errors.Wrapf(ErrConversion, "%s[%d].degree must be an integer", field, i)
		}
		var coeff string
		switch c := m["coeff"].(type) {
		case string:
			coeff = c
		case float64:
			r, err := Approximate(c, DefaultApproxBound)
			if err != nil {
				return nil, err
			}
			coeff = r.String()
		default:
			return nil, errors.Wrapf(ErrConversion, "%s[%d].coeff must be a string or number", field, i)
		}
		out[i] = wireTerm{Degree: int(deg), Coeff: coeff}
	}
	return out, nil
}

func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.toJSON()) }

func (v *Value) UnmarshalJSON(b []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return errors.Wrap(ErrConversion, err.Error())
	}
	out, err := FromJSON(m)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func (v Value) MarshalMsgpack() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).UseCompactEncoding(true).SortMapKeys(true)
	if err := enc.Encode(v.wire()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) UnmarshalMsgpack(b []byte) error {
	var w wireValue
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return errors.Wrap(ErrConversion, err.Error())
	}
	out, err := w.value()
	if err != nil {
		return err
	}
	*v = out
	return nil
}
