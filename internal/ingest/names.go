package ingest

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"redstring/internal/infra"
	"redstring/internal/sqlinline"
)

var upper = cases.Upper(language.Und)

// NormalizeName folds a CFB or Airtable name to a comparison key: accents
// removed, upper case, single spaces and ", " after commas.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.ReplaceAll(folded, ",", ", ")
	return upper.String(strings.Join(strings.Fields(folded), " "))
}

// NameIndex resolves CFB recipient names to individual ids.
type NameIndex struct {
	ids map[string]string
}

func NewNameIndex() *NameIndex {
	return &NameIndex{ids: make(map[string]string)}
}

// LoadNameIndex reads every individual with a cfb_name.
func LoadNameIndex(ctx context.Context, sql infra.SQLExecutor) (*NameIndex, error) {
	rows, err := sql.Query(ctx, sqlinline.QListCFBNames)
	if err != nil {
		return nil, fmt.Errorf("query cfb names: %w", err)
	}
	defer rows.Close()

	idx := NewNameIndex()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan cfb name: %w", err)
		}
		idx.Add(name, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cfb names: %w", err)
	}
	return idx, nil
}

func (n *NameIndex) Add(cfbName, id string) {
	if key := NormalizeName(cfbName); key != "" {
		n.ids[key] = id
	}
}

func (n *NameIndex) Len() int { return len(n.ids) }

// Match looks name up as is and, failing that, with its last word dropped
// ("SMITH, JANE M" matches "SMITH, JANE").
func (n *NameIndex) Match(name string) (string, bool) {
	key := NormalizeName(name)
	if id, ok := n.ids[key]; ok {
		return id, true
	}
	if i := strings.LastIndexByte(key, ' '); i > 0 {
		if id, ok := n.ids[strings.TrimSuffix(key[:i], ",")]; ok {
			return id, true
		}
	}
	return "", false
}

// CFBName is the "Last, First" form CFB exports use for recipients.
func CFBName(first, last string) string {
	return fmt.Sprintf("%s, %s", last, first)
}
