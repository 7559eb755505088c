// Package domain models the Johns Hopkins CSSE county-level COVID-19
// confirmed-case time series and the derivations built from it.
//
// # Data Source
//
// The input is the "time_series_covid_19_confirmed_US.csv" file published in
// the CSSEGISandData/COVID-19 repository. It is a wide table: one row per U.S.
// county (plus a few "Out of <State>" and "Unassigned" rows per state) and one
// column per reporting day.
//
// # Column Conventions
//
// Identity columns, in file order:
//
//	UID, iso2, iso3, code3, FIPS, Admin2, Province_State, Country_Region,
//	Lat, Long_, Combined_Key
//
// Only Admin2 (exposed as County), Province_State and Combined_Key survive
// loading; the rest are dropped. Combined_Key is the display name used in
// chart titles and file names, e.g. "Los Angeles, California, US".
//
// Every remaining column is a date in M/D/YY form ("1/22/20", "12/3/20")
// holding the cumulative confirmed count as of that day. Columns are already
// chronological in the source.
//
// # Date Keys
//
// Date keys are rewritten to a year-month-day form by [NormalizeDate]:
//
//	"1/22/20"  →  "2020-01-22"
//	"3/1/20"   →  "2020-03-1"
//
// The month is zero-padded, the day is not. Only the "20" and "21" year
// suffixes are recognized since the dataset starts on 1/22/20. Unpadded days
// still parse with the "2006-01-2" layout, see [ParseSeriesDate].
//
// # Daily New Cases
//
// [DeriveDeltas] turns cumulative counts into day-over-day differences. The
// absolute value is taken, so a downward correction of the cumulative total
// shows up as a positive spike instead of a negative count. Each delta is
// keyed by the later of the two dates.
package domain
