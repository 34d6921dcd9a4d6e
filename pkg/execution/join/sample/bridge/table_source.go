package bridge

import (
	"fmt"

	"storemy/pkg/execution/join/sample"
	"storemy/pkg/tuple"
	"storemy/pkg/types"
)

// TableSource is a sample.RecordSource over tables whose rows have already
// been loaded into memory as tuples. Each table's rows are assigned
// RecordIDs by load position: the first row Load sees for a table is
// RecordID 0, the second is 1, and so on. Row identity is therefore stable
// only for the lifetime of one TableSource — it is not a durable key into
// the underlying table.
type TableSource struct {
	rows map[sample.TableID][]*tuple.Tuple
}

// NewTableSource returns an empty TableSource.
func NewTableSource() *TableSource {
	return &TableSource{rows: make(map[sample.TableID][]*tuple.Tuple)}
}

// Load assigns RecordIDs to rows, in order, for tableID, replacing any
// rows previously loaded for that table.
func (s *TableSource) Load(tableID sample.TableID, rows []*tuple.Tuple) []sample.RecordID {
	s.rows[tableID] = rows
	ids := make([]sample.RecordID, len(rows))
	for i := range rows {
		ids[i] = sample.RecordID(i)
	}
	return ids
}

// Tuple returns the row backing id within tableID, as loaded.
func (s *TableSource) Tuple(tableID sample.TableID, id sample.RecordID) (*tuple.Tuple, error) {
	rows, ok := s.rows[tableID]
	if !ok {
		return nil, fmt.Errorf("bridge: no rows loaded for table %d", tableID)
	}
	if int(id) < 0 || int(id) >= len(rows) {
		return nil, fmt.Errorf("bridge: record %d out of range for table %d", id, tableID)
	}
	return rows[id], nil
}

// JoinValue implements sample.RecordSource by reading column from the row
// id of tableID and converting it to a JoinKey.
func (s *TableSource) JoinValue(tableID sample.TableID, column int, id sample.RecordID) (sample.JoinKey, error) {
	row, err := s.Tuple(tableID, id)
	if err != nil {
		return 0, err
	}
	field, err := row.GetField(column)
	if err != nil {
		return 0, err
	}
	return fieldToJoinKey(field)
}

// fieldToJoinKey narrows a field's value into the index's 64-bit join-key
// domain. Only the integer field kinds the schema can use as join columns
// are supported; anything else is a caller error.
func fieldToJoinKey(field types.Field) (sample.JoinKey, error) {
	switch f := field.(type) {
	case *types.Int32Field:
		return sample.JoinKey(f.Value), nil
	case *types.Int64Field:
		return sample.JoinKey(f.Value), nil
	case *types.Uint32Field:
		return sample.JoinKey(f.Value), nil
	case *types.Uint64Field:
		return sample.JoinKey(f.Value), nil
	case *types.IntField:
		return sample.JoinKey(f.Value), nil
	default:
		return 0, fmt.Errorf("bridge: field type %v is not a supported join column", field.Type())
	}
}
