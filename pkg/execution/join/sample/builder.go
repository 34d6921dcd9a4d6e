package sample

// LevelSpec describes one table-pair bridge to add to an index under
// construction: leftTableID.leftJoinColumn equi-joins rightTableID on
// rightJoinColumn.
type LevelSpec struct {
	LeftTableID     TableID
	RightTableID    TableID
	LeftJoinColumn  int
	RightJoinColumn int
}

// Builder drives the single-writer construction phase of a LinearIndex: it
// creates the levels from the caller's specs, loads every participating
// table's rows via Insert, and hands back an immutable, read-ready index. Deciding which
// levels to add and in what order is the caller's job; Builder only
// sequences the Insert/SetPostponeRebuild/Finalize protocol the index
// itself exposes.
type Builder struct {
	levels []*Level
	source RecordSource
	cfg    Config
}

// NewBuilder returns a Builder that will bridge the given level specs, in
// order, resolving join-column values through source. Uses DefaultConfig;
// set WithConfig to override it before calling Build.
func NewBuilder(source RecordSource, specs ...LevelSpec) *Builder {
	levels := make([]*Level, len(specs))
	for i, s := range specs {
		levels[i] = NewLevel(s.LeftTableID, s.RightTableID, s.LeftJoinColumn, s.RightJoinColumn)
	}
	return &Builder{levels: levels, source: source, cfg: DefaultConfig()}
}

// WithConfig sets the Config the built LinearIndex will use, returning b
// for chaining.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// Load bulk-inserts every id in ids as a row of tableID, across whichever
// levels that table participates in. Intended to be called once per
// participating table before Build.
func (b *Builder) Load(idx *LinearIndex, tableID TableID, ids []RecordID) error {
	for _, id := range ids {
		if err := idx.Insert(tableID, id); err != nil {
			return err
		}
	}
	return nil
}

// Build assembles a LinearIndex over the builder's levels, postponing
// rebuilds until every table has been loaded, then returns the finalized,
// read-ready index. load is called once with the fresh index so callers
// can drive Insert calls against it before the deferred rebuild runs.
func (b *Builder) Build(load func(idx *LinearIndex) error) (*LinearIndex, error) {
	idx := NewLinearIndexWithConfig(b.levels, b.source, b.cfg)
	idx.SetPostponeRebuild(true)
	if err := load(idx); err != nil {
		return nil, err
	}
	idx.SetPostponeRebuild(false)
	idx.Finalize()
	return idx, nil
}

// ForkBuilder is Builder's counterpart for tree-shaped joins.
type ForkBuilder struct {
	levels       []*Level
	parentTables []int
	isLastChild  []bool
	source       RecordSource
	cfg          Config
}

// NewForkBuilder returns a ForkBuilder with no levels yet, using
// DefaultConfig; set WithConfig to override it before calling Build.
func NewForkBuilder(source RecordSource) *ForkBuilder {
	return &ForkBuilder{source: source, cfg: DefaultConfig()}
}

// WithConfig sets the Config the built ForkIndex will use, returning b for
// chaining.
func (b *ForkBuilder) WithConfig(cfg Config) *ForkBuilder {
	b.cfg = cfg
	return b
}

// AddLevel appends one edge of the join tree: spec bridges parentSlot's
// table to a new table, and lastChild marks whether this closes out the
// run of siblings sharing parentSlot.
func (b *ForkBuilder) AddLevel(spec LevelSpec, parentSlot int, lastChild bool) {
	b.levels = append(b.levels, NewLevel(spec.LeftTableID, spec.RightTableID, spec.LeftJoinColumn, spec.RightJoinColumn))
	b.parentTables = append(b.parentTables, parentSlot)
	b.isLastChild = append(b.isLastChild, lastChild)
}

// Build assembles a ForkIndex over the builder's levels, postponing
// rebuilds until load returns, then finalizes and returns the index.
func (b *ForkBuilder) Build(load func(idx *ForkIndex) error) (*ForkIndex, error) {
	idx := NewForkIndexWithConfig(b.levels, b.parentTables, b.isLastChild, b.source, b.cfg)
	idx.SetPostponeRebuild(true)
	if err := load(idx); err != nil {
		return nil, err
	}
	idx.SetPostponeRebuild(false)
	idx.Finalize()
	return idx, nil
}
