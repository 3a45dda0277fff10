package mesh

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// UndoMode selects how a Record is reverted
type UndoMode int

const (
	// ToOriginalPositions restores the exact pre-operation facet array.
	// Valid only while the array is unchanged since the operation.
	ToOriginalPositions UndoMode = iota
	// ToEnd appends the deleted facets at the end of the current array
	ToEnd
)

func (m UndoMode) String() string {
	switch m {
	case ToOriginalPositions:
		return "original-positions"
	case ToEnd:
		return "end"
	}
	return fmt.Sprintf("UndoMode(%d)", int(m))
}

// DeletedFacet is a facet removed by an operation together with the
// array position it was removed from
type DeletedFacet struct {
	Facet            *Facet
	OriginalPosition int
	// ReplaceOriginal is set when derived facets superseded the facet,
	// clear when it was consumed without a successor
	ReplaceOriginal bool
}

// Record is the undo information of one committed transaction
type Record struct {
	Deleted []DeletedFacet
	Created int

	created []*Facet
}

// IsEmpty reports whether the transaction changed nothing
func (r Record) IsEmpty() bool {
	return len(r.Deleted) == 0 && r.Created == 0
}

// UndoPoint remembers where a moved vertex was
type UndoPoint struct {
	OriginalPosition geometry.Vector3
	OriginalVertexID int
}

// Transaction is an open facet-array edit
type Transaction struct {
	g      *Geometry
	record Record
}

// Begin opens a transaction. Only one may be open at a time; a nested
// Begin is a programming error and panics.
func (g *Geometry) Begin() *Transaction {
	if g.tx != nil {
		panic("mesh: Begin called while a transaction is open")
	}
	g.tx = &Transaction{g: g}
	return g.tx
}

// InTransaction reports whether a transaction is open
func (g *Geometry) InTransaction() bool {
	return g.tx != nil
}

func (tx *Transaction) mustBeOpen() {
	if tx.g == nil || tx.g.tx != tx {
		panic("mesh: transaction already committed")
	}
}

// RemoveOriginal takes a facet out of the array and records it with its
// current position. Vertices are left untouched.
func (tx *Transaction) RemoveOriginal(id int, superseded bool) error {
	tx.mustBeOpen()
	f, err := tx.g.Facet(id)
	if err != nil {
		return err
	}
	tx.record.Deleted = append(tx.record.Deleted, DeletedFacet{
		Facet:            f,
		OriginalPosition: id,
		ReplaceOriginal:  superseded,
	})
	tx.g.Facets = append(tx.g.Facets[:id], tx.g.Facets[id+1:]...)
	return nil
}

// InsertNew appends a facet and returns its id
func (tx *Transaction) InsertNew(f *Facet) int {
	tx.mustBeOpen()
	tx.g.Facets = append(tx.g.Facets, f)
	tx.record.Created++
	tx.record.created = append(tx.record.created, f)
	return len(tx.g.Facets) - 1
}

// Commit closes the transaction and returns its undo record
func (tx *Transaction) Commit() Record {
	tx.mustBeOpen()
	tx.g.tx = nil
	tx.g = nil
	return tx.record
}

// Undo reverts a committed record
func (g *Geometry) Undo(r Record, mode UndoMode) error {
	if g.tx != nil {
		panic("mesh: Undo called while a transaction is open")
	}
	switch mode {
	case ToOriginalPositions:
		return g.undoInPlace(r)
	case ToEnd:
		g.undoToEnd(r)
		return nil
	}
	return fmt.Errorf("unknown undo mode %v", mode)
}

func (g *Geometry) undoInPlace(r Record) error {
	if r.Created > len(g.Facets) {
		return fmt.Errorf("%w: %d created facets, array holds %d", ErrStaleRecord, r.Created, len(g.Facets))
	}
	tail := g.Facets[len(g.Facets)-r.Created:]
	for i, f := range r.created {
		if tail[i] != f {
			return fmt.Errorf("%w: created facet %d moved", ErrStaleRecord, i)
		}
	}

	// Validate positions before touching the array
	size := len(g.Facets) - r.Created
	for i := len(r.Deleted) - 1; i >= 0; i-- {
		if pos := r.Deleted[i].OriginalPosition; pos < 0 || pos > size {
			return fmt.Errorf("%w: position %d beyond %d facets", ErrStaleRecord, pos, size)
		}
		size++
	}

	g.Facets = g.Facets[:len(g.Facets)-r.Created]
	for i := len(r.Deleted) - 1; i >= 0; i-- {
		d := r.Deleted[i]
		g.Facets = append(g.Facets, nil)
		copy(g.Facets[d.OriginalPosition+1:], g.Facets[d.OriginalPosition:])
		g.Facets[d.OriginalPosition] = d.Facet
	}
	return nil
}

func (g *Geometry) undoToEnd(r Record) {
	created := make(map[*Facet]bool, len(r.created))
	for _, f := range r.created {
		created[f] = true
	}
	kept := g.Facets[:0]
	for _, f := range g.Facets {
		if !created[f] {
			kept = append(kept, f)
		}
	}
	g.Facets = kept

	deleted := append([]DeletedFacet(nil), r.Deleted...)
	sort.SliceStable(deleted, func(i, j int) bool {
		return deleted[i].OriginalPosition < deleted[j].OriginalPosition
	})
	for _, d := range deleted {
		g.Facets = append(g.Facets, d.Facet)
	}
}

// RestoreVertices moves vertices back to the positions recorded by a
// vertex operation and refreshes the facets using them
func (g *Geometry) RestoreVertices(points []UndoPoint) error {
	ids := make([]int, 0, len(points))
	for _, p := range points {
		if p.OriginalVertexID < 0 || p.OriginalVertexID >= len(g.Vertices) {
			return fmt.Errorf("%w: %d", ErrVertexNotFound, p.OriginalVertexID)
		}
	}
	for _, p := range points {
		g.Vertices[p.OriginalVertexID].Position = p.OriginalPosition
		ids = append(ids, p.OriginalVertexID)
	}
	g.RefreshFacets(ids)
	return nil
}
