package gateway

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// FakeGateway is an in-memory Gateway used by service tests. Error
// fields, when set, make the corresponding operation fail without
// touching the stored tables.
type FakeGateway struct {
	mu     sync.Mutex
	Tables map[string][]Row

	SelectErr error
	// SelectErrTable limits SelectErr to one table; empty fails all.
	SelectErrTable string
	InsertErr      error
	UpdateErr      error
	DeleteErr      error

	idSeq int
}

// NewFakeGateway returns an empty in-memory gateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{Tables: make(map[string][]Row)}
}

// Seed stores typed models in a table, encoding them as rows.
func (g *FakeGateway) Seed(table string, records ...any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, rec := range records {
		row, err := EncodeRow(rec)
		if err != nil {
			return err
		}
		g.Tables[table] = append(g.Tables[table], row)
	}
	return nil
}

func (g *FakeGateway) Select(ctx context.Context, table string, filter Filter, order *Order, joins ...Join) ([]Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.SelectErr != nil && (g.SelectErrTable == "" || g.SelectErrTable == table) {
		return nil, &GatewayError{Op: "select", Table: table, Err: g.SelectErr}
	}

	var out []Row
	for _, row := range g.Tables[table] {
		if !matches(row, filter) {
			continue
		}
		copied := copyRow(row)
		for _, join := range joins {
			if ref, ok := copied[join.LocalField].(string); ok && ref != "" {
				if doc := g.findByID(join.Table, ref); doc != nil {
					copied[join.As] = copyRow(doc)
				}
			}
		}
		out = append(out, copied)
	}

	if order != nil {
		sort.SliceStable(out, func(i, j int) bool {
			a := fmt.Sprint(out[i][order.Field])
			b := fmt.Sprint(out[j][order.Field])
			if order.Desc {
				return a > b
			}
			return a < b
		})
	}
	return out, nil
}

func (g *FakeGateway) Insert(ctx context.Context, table string, row Row) (Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.InsertErr != nil {
		return nil, &GatewayError{Op: "insert", Table: table, Err: g.InsertErr}
	}

	stored := copyRow(row)
	if id, _ := stored["id"].(string); id == "" {
		g.idSeq++
		stored["id"] = fmt.Sprintf("%s-%d", table, g.idSeq)
	}
	now := time.Now()
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = now
	}
	stored["updated_at"] = now
	g.Tables[table] = append(g.Tables[table], stored)
	return copyRow(stored), nil
}

func (g *FakeGateway) Update(ctx context.Context, table string, id string, partial Row) (Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.UpdateErr != nil {
		return nil, &GatewayError{Op: "update", Table: table, Err: g.UpdateErr}
	}

	for i, row := range g.Tables[table] {
		if rowID, _ := row["id"].(string); rowID == id {
			updated := copyRow(row)
			for k, v := range partial {
				updated[k] = v
			}
			updated["updated_at"] = time.Now()
			g.Tables[table][i] = updated
			return copyRow(updated), nil
		}
	}
	return nil, &NotFoundError{Table: table, ID: id}
}

func (g *FakeGateway) Delete(ctx context.Context, table string, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.DeleteErr != nil {
		return &GatewayError{Op: "delete", Table: table, Err: g.DeleteErr}
	}

	rows := g.Tables[table]
	for i, row := range rows {
		if rowID, _ := row["id"].(string); rowID == id {
			g.Tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Table: table, ID: id}
}

func (g *FakeGateway) findByID(table, id string) Row {
	for _, row := range g.Tables[table] {
		if rowID, _ := row["id"].(string); rowID == id {
			return row
		}
	}
	return nil
}

func matches(row Row, filter Filter) bool {
	for k, want := range filter {
		if fmt.Sprint(row[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// StaticSessionProvider returns a fixed session from GetSession. A nil
// Session models the signed-out state; Err simulates a lookup failure.
type StaticSessionProvider struct {
	Session *Session
	Err     error
}

func (p *StaticSessionProvider) GetSession(ctx context.Context) (*Session, error) {
	return p.Session, p.Err
}
