package management

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"

	"github.com/kbukum/mgmtkit/httpclient"
)

// FieldList is a set of field names sent as one comma-separated parameter.
type FieldList []string

var queryEncoder = newQueryEncoder()

func newQueryEncoder() *schema.Encoder {
	enc := schema.NewEncoder()
	enc.SetAliasTag("schema")
	enc.RegisterEncoder(Sort{}, func(v reflect.Value) string {
		return v.Interface().(Sort).String()
	})
	enc.RegisterEncoder(FieldList(nil), func(v reflect.Value) string {
		return strings.Join(v.Interface().(FieldList), ",")
	})
	return enc
}

// EncodeQuery flattens the schema-tagged fields of v into query parameters.
// Fields tagged omitempty are left out while unset.
func EncodeQuery(v any) (url.Values, error) {
	q := url.Values{}
	if err := queryEncoder.Encode(v, q); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return q, nil
}

// WithQuery merges the encoded fields of v into r. Encoding failures are
// recorded on r and reported when it is sent.
func WithQuery(r *httpclient.Request, v any) *httpclient.Request {
	q, err := EncodeQuery(v)
	if err != nil {
		return r.Fail(err)
	}
	return r.SetQuery(q)
}
