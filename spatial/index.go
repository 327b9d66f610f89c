package spatial

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/planstruct/planstruct/model"
)

// Schema for the element store: a metadata table plus an R-tree virtual
// table keyed by the same rowid. Applied by New.
const schema = `
CREATE TABLE IF NOT EXISTS elements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guid TEXT UNIQUE NOT NULL,
	element_type TEXT NOT NULL,
	confidence REAL NOT NULL,
	source_layer TEXT,
	metadata TEXT
);
CREATE VIRTUAL TABLE IF NOT EXISTS element_geometry USING rtree(
	id,
	min_x, max_x,
	min_y, max_y
);
`

// Record is one indexed element as returned by queries.
type Record struct {
	GUID        string
	ElementType string
	Confidence  float64
	SourceLayer string
	BBox        model.BBox
}

// Index stores detected elements in SQLite with an R-tree for fast
// spatial range queries and proximity lookups.
type Index struct {
	db *sql.DB
}

// New opens a spatial index at the given path and applies the schema.
// Use InMemory for a throwaway index.
func New(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open spatial index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init spatial index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// InMemory opens a fresh in-memory spatial index.
func InMemory() (*Index, error) {
	return New(":memory:")
}

// Close releases the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Insert indexes one element by its bounding box.
func (ix *Index) Insert(el model.Element) error {
	meta := "{}"
	if m, ok := el.(interface{ Meta() map[string]any }); ok && m.Meta() != nil {
		encoded, err := json.Marshal(m.Meta())
		if err != nil {
			return fmt.Errorf("encode element metadata: %w", err)
		}
		meta = string(encoded)
	}

	res, err := ix.db.Exec(
		`INSERT INTO elements (guid, element_type, confidence, source_layer, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		el.GUID(), el.Type().String(), el.Confidence(), el.SourceLayer(), meta,
	)
	if err != nil {
		return fmt.Errorf("insert element %s: %w", el.GUID(), err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("element rowid: %w", err)
	}

	box := el.BoundingBox()
	if _, err := ix.db.Exec(
		`INSERT INTO element_geometry (id, min_x, max_x, min_y, max_y)
		 VALUES (?, ?, ?, ?, ?)`,
		id, box.MinX, box.MaxX, box.MinY, box.MaxY,
	); err != nil {
		return fmt.Errorf("insert element geometry %s: %w", el.GUID(), err)
	}

	return nil
}

// InsertAll indexes a batch of elements, stopping at the first failure.
func (ix *Index) InsertAll(els []model.Element) error {
	for _, el := range els {
		if err := ix.Insert(el); err != nil {
			return err
		}
	}
	return nil
}

// QueryRegion returns every element whose bounding box intersects the
// given region.
func (ix *Index) QueryRegion(region model.BBox) ([]Record, error) {
	rows, err := ix.db.Query(
		`SELECT e.guid, e.element_type, e.confidence, e.source_layer,
		        g.min_x, g.max_x, g.min_y, g.max_y
		 FROM elements e
		 JOIN element_geometry g ON g.id = e.id
		 WHERE g.min_x <= ? AND g.max_x >= ?
		   AND g.min_y <= ? AND g.max_y >= ?
		 ORDER BY e.id`,
		region.MaxX, region.MinX, region.MaxY, region.MinY,
	)
	if err != nil {
		return nil, fmt.Errorf("query region: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// QueryPoint returns every element whose bounding box lies within radius
// of the given point.
func (ix *Index) QueryPoint(p model.Point, radius float64) ([]Record, error) {
	region := model.BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}.Expand(radius)
	return ix.QueryRegion(region)
}

// CountByType returns element counts grouped by element type.
func (ix *Index) CountByType() (map[string]int, error) {
	rows, err := ix.db.Query(
		`SELECT element_type, COUNT(*) FROM elements GROUP BY element_type`)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var layer sql.NullString
		if err := rows.Scan(&r.GUID, &r.ElementType, &r.Confidence, &layer,
			&r.BBox.MinX, &r.BBox.MaxX, &r.BBox.MinY, &r.BBox.MaxY); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		r.SourceLayer = layer.String
		records = append(records, r)
	}
	return records, rows.Err()
}
