// Package ingest loads campaign-finance data into the redstring database:
// NYC Campaign Finance Board contribution exports and the Airtable sheet of
// individual annotations.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ErrMissingRefNo marks a CFB row without a reference number. Refno is the
// dedupe key, so such rows cannot be loaded.
var ErrMissingRefNo = errors.New("record is missing a reference number")

const cfbDateLayout = "1/2/2006"

// cfbColumns names the CFB export columns by position. Empty names are
// columns we do not keep.
var cfbColumns = []string{
	"election",
	"office_cd",
	"recip_id",
	"can_class",
	"recipient_name",
	"committee",
	"filing",
	"schedule",
	"", // pageno
	"", // sequenceno
	"ref_no",
	"date",
	"", // refunddate
	"contributor_name",
	"c_code",
	"", // strno
	"", // strname
	"", // apartment
	"borough",
	"city",
	"state",
	"zip",
	"occupation",
	"employer_name",
	"", // empstrno
	"", // empstrname
	"", // empcity
	"", // empstate
	"amount",
}

// Record is one contribution row of a CFB export.
type Record struct {
	RefNo           string
	Amount          int64 // cents
	Date            time.Time
	ContributorName string
	RecipientName   string
	RecipientID     string // resolved individuals.id, empty when unmatched
	CFBRecipientID  string
	Election        string
	OfficeCD        string
	CanClass        string
	Committee       string
	Filing          string
	Schedule        string
	CCode           string
	Borough         string
	City            string
	State           string
	ZIP             string
	Occupation      string
	EmployerName    string
}

// ParseRecord maps one CSV row onto a Record.
func ParseRecord(row []string) (Record, error) {
	var rec Record
	for i, val := range row {
		if i >= len(cfbColumns) {
			break
		}
		val = strings.TrimSpace(val)
		if val == "" || cfbColumns[i] == "" {
			continue
		}
		switch cfbColumns[i] {
		case "election":
			rec.Election = val
		case "office_cd":
			rec.OfficeCD = val
		case "recip_id":
			rec.CFBRecipientID = val
		case "can_class":
			rec.CanClass = val
		case "recipient_name":
			rec.RecipientName = val
		case "committee":
			rec.Committee = val
		case "filing":
			rec.Filing = val
		case "schedule":
			rec.Schedule = val
		case "ref_no":
			rec.RefNo = val
		case "date":
			d, err := time.Parse(cfbDateLayout, val)
			if err != nil {
				return Record{}, fmt.Errorf("parse date %q: %w", val, err)
			}
			rec.Date = d
		case "contributor_name":
			rec.ContributorName = val
		case "c_code":
			rec.CCode = val
		case "borough":
			rec.Borough = val
		case "city":
			rec.City = val
		case "state":
			rec.State = val
		case "zip":
			rec.ZIP = val
		case "occupation":
			rec.Occupation = val
		case "employer_name":
			rec.EmployerName = val
		case "amount":
			cents, err := ParseCents(val)
			if err != nil {
				return Record{}, err
			}
			rec.Amount = cents
		}
	}
	if rec.RefNo == "" {
		return Record{}, ErrMissingRefNo
	}
	return rec, nil
}

// ParseCents converts a dollar string such as "250", "12.5" or "-1,000.25"
// to integer cents without going through floating point.
func ParseCents(s string) (int64, error) {
	raw := s
	s = strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", "")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("parse amount %q: more than two decimal places", raw)
	}
	frac += strings.Repeat("0", 2-len(frac))

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("parse amount %q: invalid cents", raw)
	}
	total := dollars*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}

// CFBReader iterates the rows of a CFB export, skipping its header line.
type CFBReader struct {
	r    *csv.Reader
	line int
}

func NewCFBReader(r io.Reader) (*CFBReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return &CFBReader{r: cr, line: 1}, nil
}

// Next returns the next record or io.EOF. Parse errors carry the line
// number.
func (c *CFBReader) Next() (Record, error) {
	row, err := c.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("read row: %w", err)
	}
	c.line++
	rec, err := ParseRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("line %d: %w", c.line, err)
	}
	return rec, nil
}
