package table

import (
	"encoding/json"
	"os"

	"github.com/tablon/tablon/internal/column"
	"github.com/tablon/tablon/internal/options"
)

// cachedSchema is the sidecar JSON format, the same "write a small JSON
// file next to the data file" idiom the teacher's schema.Schema uses for
// virtual-column metadata, here recording the resolved column names and
// their settled element types instead.
type cachedSchema struct {
	Names   []string `json:"names"`
	ElTypes []string `json:"el_types"`
	Size    int64    `json:"size"`
	Mtime   int64    `json:"mtime"`
}

func schemaCachePath(csvPath string) string {
	return csvPath + ".tablon-schema.json"
}

// loadSchemaCache returns the cached schema for csvPath if a sidecar
// exists and still matches the file's current size and modification time.
func loadSchemaCache(csvPath string, size, mtime int64) (names []string, elTypes []options.ElType, ok bool) {
	data, err := os.ReadFile(schemaCachePath(csvPath))
	if err != nil {
		return nil, nil, false
	}
	var cs cachedSchema
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, nil, false
	}
	if cs.Size != size || cs.Mtime != mtime || len(cs.Names) != len(cs.ElTypes) {
		return nil, nil, false
	}
	elTypes = make([]options.ElType, len(cs.ElTypes))
	for i, s := range cs.ElTypes {
		t, err := options.ParseElType(s)
		if err != nil {
			return nil, nil, false
		}
		elTypes[i] = t
	}
	return cs.Names, elTypes, true
}

// saveSchemaCache writes the resolved names and the element type each
// column actually settled on, keyed to the file's size and mtime so a
// later read can detect the file changed underneath it.
func saveSchemaCache(csvPath string, names []string, columns []*column.Column, size, mtime int64) error {
	elTypes := make([]string, len(columns))
	for i, c := range columns {
		elTypes[i] = kindToElType(c.Kind).String()
	}
	cs := cachedSchema{Names: names, ElTypes: elTypes, Size: size, Mtime: mtime}
	data, err := json.MarshalIndent(&cs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(schemaCachePath(csvPath), data, 0o644)
}

func kindToElType(k column.Kind) options.ElType {
	switch k {
	case column.KindInt64:
		return options.Int64
	case column.KindFloat64:
		return options.Float64
	case column.KindBool:
		return options.Bool
	default: // KindString, KindFactor
		return options.String
	}
}
