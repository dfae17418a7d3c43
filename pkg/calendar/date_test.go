package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DateSuite struct {
	suite.Suite
}

func TestDateSuite(t *testing.T) {
	suite.Run(t, new(DateSuite))
}

func (s *DateSuite) TestRoundTrip() {
	for _, in := range []string{
		"2024-12-31", // year boundary
		"2025-01-01",
		"2024-03-10", // US spring-forward
		"2024-03-31", // EU spring-forward
		"2024-11-03", // US fall-back
		"2024-02-29",
	} {
		s.Run(in, func() {
			d, err := Parse(in)
			s.Require().NoError(err)
			s.Equal(in, d.String())
		})
	}
}

func (s *DateSuite) TestRoundTripAcrossZones() {
	orig := time.Local
	defer func() { time.Local = orig }()

	for _, zone := range []string{"America/New_York", "Pacific/Kiritimati", "Pacific/Pago_Pago", "UTC"} {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			s.T().Skipf("zoneinfo unavailable: %v", err)
		}
		time.Local = loc
		s.Run(zone, func() {
			d, err := Parse("2024-03-10")
			s.Require().NoError(err)
			s.Equal("2024-03-10", d.String())
		})
	}
}

func (s *DateSuite) TestParseTimestampKeepsDatePart() {
	d, err := Parse("2024-06-10T23:30:00-07:00")
	s.Require().NoError(err)
	s.Equal("2024-06-10", d.String())

	d, err = Parse("2024-06-10T00:00:00.000Z")
	s.Require().NoError(err)
	s.Equal("2024-06-10", d.String())
}

func (s *DateSuite) TestParseRejectsMalformed() {
	for _, in := range []string{"", "2024-6-1", "2024-02-30", "tomorrow", "2024/06/10"} {
		s.Run(in, func() {
			_, err := Parse(in)
			s.Error(err)
		})
	}
}

func (s *DateSuite) TestParseOptional() {
	d, err := ParseOptional("   ")
	s.Require().NoError(err)
	s.True(d.IsZero())
}

func (s *DateSuite) TestOfUsesOwnComponents() {
	late := time.Date(2024, 12, 31, 23, 59, 0, 0, time.FixedZone("UTC-10", -10*3600))
	s.Equal("2024-12-31", Of(late).String())
	s.True(Of(time.Time{}).IsZero())
}

func (s *DateSuite) TestDaysBetween() {
	from := MustParse("2024-03-09")
	s.Equal(1, DaysBetween(from, MustParse("2024-03-10")))
	s.Equal(2, DaysBetween(from, MustParse("2024-03-11")))
	s.Equal(-8, DaysBetween(from, MustParse("2024-03-01")))
	s.Equal(366, DaysBetween(MustParse("2024-01-01"), MustParse("2025-01-01")))
}

func (s *DateSuite) TestDaysBetweenFarApart() {
	from := MustParse("2024-01-01")
	far := MustParse("2500-01-01")
	// 476 years with 116 leap days between 2024 and 2499.
	want := 476*365 + 116
	s.Equal(want, DaysBetween(from, far))
	s.Equal(-want, DaysBetween(far, from))
	s.Equal(far.String(), from.AddDays(want).String())
}

func (s *DateSuite) TestAddDaysCrossesMonthAndYear() {
	s.Equal("2025-01-02", MustParse("2024-12-31").AddDays(2).String())
	s.Equal("2024-02-29", MustParse("2024-03-01").AddDays(-1).String())
}

func (s *DateSuite) TestComparisons() {
	a, b := MustParse("2024-06-09"), MustParse("2024-06-10")
	s.True(a.Before(b))
	s.True(b.After(a))
	s.True(a.Equal(MustParse("2024-06-09")))
	s.Equal(-1, a.Compare(b))
}

func TestDisplayNeverFails(t *testing.T) {
	assert.Equal(t, InvalidDate, Display(Date{}, "02/01/2006"))
	assert.Equal(t, "10/06/2024", Display(MustParse("2024-06-10"), "02/01/2006"))
	assert.Equal(t, InvalidDate, Reformat("garbage", "02/01/2006"))
	assert.Equal(t, InvalidDate, Reformat("", "02/01/2006"))
	assert.Equal(t, "Jun 10, 2024", Reformat("2024-06-10", "Jan 2, 2006"))
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Due Date `json:"nextDue"`
	}

	b, err := json.Marshal(payload{Due: MustParse("2024-06-10")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nextDue":"2024-06-10"}`, string(b))

	b, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nextDue":null}`, string(b))

	var out payload
	require.NoError(t, json.Unmarshal([]byte(`{"nextDue":"2024-12-31"}`), &out))
	assert.Equal(t, "2024-12-31", out.Due.String())

	require.NoError(t, json.Unmarshal([]byte(`{"nextDue":""}`), &out))
	assert.True(t, out.Due.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"nextDue":"31/12/2024"}`), &out))
}

func TestDateSQL(t *testing.T) {
	v, err := MustParse("2024-06-10").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-10", d.String())

	require.NoError(t, d.Scan([]byte("2024-12-31")))
	assert.Equal(t, "2024-12-31", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
