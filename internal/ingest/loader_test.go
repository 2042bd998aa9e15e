package ingest

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordArgs(r Record) []any {
	return []any{
		r.RefNo, r.Amount, r.Date, r.ContributorName, r.RecipientName, r.RecipientID,
		r.CFBRecipientID, r.Election, r.OfficeCD, r.CanClass, r.Committee, r.Filing,
		r.Schedule, r.CCode, r.Borough, r.City, r.State, r.ZIP, r.Occupation, r.EmployerName,
	}
}

// toDriverArgs wraps each value in an equalArg so times compare with Equal.
func toDriverArgs(values []any) []driver.Value {
	out := make([]driver.Value, len(values))
	for i, v := range values {
		out[i] = equalArg{v}
	}
	return out
}

type equalArg struct{ want any }

var _ sqlmock.Argument = equalArg{}

func (a equalArg) Match(v driver.Value) bool {
	if t, ok := a.want.(time.Time); ok {
		got, ok := v.(time.Time)
		return ok && got.Equal(t)
	}
	return v == a.want
}

func TestContributionLoaderCopiesAndMerges(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	records := []Record{
		{RefNo: "R1", Amount: 25000, Date: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), ContributorName: "Doe, John", RecipientName: "Smith, Jane", RecipientID: "1"},
		{RefNo: "R2", Amount: 500, Date: time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC), ContributorName: "Roe, Rita", RecipientName: "Unknown, Person"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("create temp table contributions_staging").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "contributions_staging" ("refno", "amount"`))
	for _, r := range records {
		prep.ExpectExec().WithArgs(toDriverArgs(recordArgs(r))...).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("insert into contributions (")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inserted, err := NewContributionLoader(db, zerolog.Nop()).Load(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContributionLoaderRollsBackOnMergeFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := Record{RefNo: "R1", Amount: 100}
	mock.ExpectBegin()
	mock.ExpectExec("create temp table contributions_staging").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare("COPY")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("insert into contributions").WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err = NewContributionLoader(db, zerolog.Nop()).Load(context.Background(), []Record{rec})
	assert.ErrorContains(t, err, "merge contributions")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContributionLoaderEmptyBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	n, err := NewContributionLoader(db, zerolog.Nop()).Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
