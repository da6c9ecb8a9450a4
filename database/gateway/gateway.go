package gateway

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Table names used by the managers. The gateway itself is table-agnostic.
const (
	TableUsers         = "users"
	TableBusinesses    = "businesses"
	TableServices      = "services"
	TableBookings      = "bookings"
	TableSubscriptions = "subscriptions"
	TableOrders        = "orders"
)

// Row is an untyped record as the remote store returns it. Managers
// decode rows into their models via DecodeRow.
type Row map[string]any

// Filter matches rows by field equality. An empty filter matches all.
type Filter map[string]any

// Order sorts a select by a single field.
type Order struct {
	Field string
	Desc  bool
}

// Join embeds the document referenced by LocalField (an id into Table)
// under the As key of each selected row.
type Join struct {
	Table      string
	LocalField string
	As         string
}

// Gateway is the opaque remote persistence capability: table-scoped CRUD
// with filtering, ordering and relational joins. Implementations return
// either results or an error from the taxonomy in errors.go; they never
// partially apply a mutation.
type Gateway interface {
	Select(ctx context.Context, table string, filter Filter, order *Order, joins ...Join) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id string, partial Row) (Row, error)
	Delete(ctx context.Context, table string, id string) error
}

// DecodeRow converts an untyped row into a typed model via a bson
// round-trip, honouring the model's bson tags.
func DecodeRow(row Row, out any) error {
	raw, err := bson.Marshal(bson.M(row))
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// DecodeRows converts a slice of rows into a slice of typed models.
func DecodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := DecodeRow(row, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// EncodeRow converts a typed model into an untyped row, again via bson.
func EncodeRow(in any) (Row, error) {
	raw, err := bson.Marshal(in)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return Row(m), nil
}
