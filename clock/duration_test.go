package clock_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"go.wallclock.dev/clock"
)

type hms struct {
	H    int64
	M, S uint8
}

func components(d clock.Duration) hms { return hms{d.Hours(), d.Minutes(), d.Seconds()} }

func TestDurationOf(t *testing.T) {
	for _, total := range []int64{0, 1, 59, 60, 61, 3599, 3600, 3661, 86399, 86400, 90061, 1 << 40, math.MaxInt64} {
		d, err := clock.DurationOf(total)
		if err != nil {
			t.Fatalf("DurationOf(%d): %v", total, err)
		}
		if got := d.TotalSeconds(); got != total {
			t.Errorf("DurationOf(%d).TotalSeconds() = %d", total, got)
		}
		c := components(d)
		if c.M > 59 || c.S > 59 {
			t.Errorf("DurationOf(%d) = %+v, components out of range", total, c)
		}
		if got := c.H*3600 + int64(c.M)*60 + int64(c.S); got != total {
			t.Errorf("DurationOf(%d) = %+v, which sums to %d", total, c, got)
		}
	}

	if _, err := clock.DurationOf(-1); !errors.Is(err, clock.ErrOutOfRange) {
		t.Errorf("DurationOf(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestNewDuration(t *testing.T) {
	for _, test := range []struct {
		args []int64
		want hms
		err  error
	}{
		{args: []int64{0}, want: hms{}},
		{args: []int64{2}, want: hms{2, 0, 0}},
		{args: []int64{2, 45}, want: hms{2, 45, 0}},
		{args: []int64{100, 59, 59}, want: hms{100, 59, 59}},
		{args: []int64{-1}, err: clock.ErrOutOfRange},
		{args: []int64{0, -1}, err: clock.ErrOutOfRange},
		{args: []int64{0, 60}, err: clock.ErrOutOfRange},
		{args: []int64{0, 0, 60}, err: clock.ErrOutOfRange},
		{args: []int64{math.MaxInt64 / 3600, 59, 59}, err: clock.ErrOutOfRange},
		{args: []int64{math.MaxInt64}, err: clock.ErrOutOfRange},
		{args: []int64{1, 2, 3, 4}, err: clock.ErrOutOfRange},
	} {
		d, err := clock.NewDuration(test.args[0], test.args[1:]...)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("NewDuration%v error = %v, want %v", test.args, err, test.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewDuration%v: %v", test.args, err)
			continue
		}
		if diff := cmp.Diff(test.want, components(d)); diff != "" {
			t.Errorf("NewDuration%v mismatch (-want +got):\n%s", test.args, diff)
		}
	}
}

func TestParseDuration(t *testing.T) {
	for _, test := range []struct {
		in, want string
		err      error
	}{
		{in: "2:45:10", want: "2:45:10"},
		{in: "0:00:00", want: "0:00:00"},
		{in: "02:05:09", want: "2:05:09"},
		{in: "100:00:00", want: "100:00:00"},
		{in: "1:60:00", err: clock.ErrOutOfRange},
		{in: "1:00:60", err: clock.ErrOutOfRange},
		{in: "9999999999999999:00:00", err: clock.ErrOutOfRange},
		{in: "2:45", err: clock.ErrParse},
		{in: "2:45:10:00", err: clock.ErrParse},
		{in: "x:00:00", err: clock.ErrParse},
		{in: "-2:00:00", err: clock.ErrParse},
		{in: "", err: clock.ErrParse},
	} {
		got, err := clock.ParseDuration(test.in)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Errorf("ParseDuration(%q) error = %v, want %v", test.in, err, test.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDuration(%q): %v", test.in, err)
		} else if got.String() != test.want {
			t.Errorf("ParseDuration(%q) = %s, want %s", test.in, got, test.want)
		}
	}
}

func TestBetween(t *testing.T) {
	d := clock.Between(mustTime(t, "23:00:00"), mustTime(t, "01:00:00"))
	if diff := cmp.Diff(hms{22, 0, 0}, components(d)); diff != "" {
		t.Errorf("Between(23:00:00, 01:00:00) mismatch (-want +got):\n%s", diff)
	}

	times := sampleTimes()
	for _, a := range times {
		for _, b := range times {
			ab, ba := clock.Between(a, b), clock.Between(b, a)
			if ab != ba {
				t.Fatalf("Between(%s, %s) = %s, Between(%s, %s) = %s", a, b, ab, b, a, ba)
			}
			if ab.TotalSeconds() >= 24*3600 {
				t.Fatalf("Between(%s, %s) = %s, want less than 24h", a, b, ab)
			}
			if got := a.Since(b); got != ab {
				t.Fatalf("%s.Since(%s) = %s, want %s", a, b, got, ab)
			}
			// The later time is reached from the earlier by adding the distance.
			lo, hi := a, b
			if a.After(b) {
				lo, hi = b, a
			}
			if got := lo.Plus(ab); got != hi {
				t.Fatalf("%s + Between = %s, want %s", lo, got, hi)
			}
		}
	}
}

func TestDurationSub(t *testing.T) {
	_, err := clock.MustDuration(0, 0, 1).Sub(clock.MustDuration(0, 0, 2))
	if !errors.Is(err, clock.ErrOutOfRange) {
		t.Errorf("0:00:01 - 0:00:02 error = %v, want ErrOutOfRange", err)
	}

	got, err := clock.MustDuration(1).Sub(clock.Second)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "0:59:59" {
		t.Errorf("1:00:00 - 0:00:01 = %s, want 0:59:59", got)
	}

	got, err = clock.Hour.Sub(clock.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("1:00:00 - 1:00:00 = %s, want 0:00:00", got)
	}
}

func TestDurationAddPlus(t *testing.T) {
	durations := []clock.Duration{
		{},
		clock.Second,
		clock.Minute,
		clock.Hour,
		clock.MustDuration(0, 59, 59),
		clock.MustDuration(2, 45, 10),
		clock.MustDuration(23, 30, 45),
		clock.MustDuration(1000, 1, 1),
	}
	for _, d := range durations {
		for _, e := range durations {
			sum := d.Add(e)
			if sum.TotalSeconds() != d.TotalSeconds()+e.TotalSeconds() {
				t.Errorf("%s + %s = %s", d, e, sum)
			}
			if got := d.Plus(e); got != sum {
				t.Errorf("%s.Plus(%s) = %s, want %s", d, e, got, sum)
			}
			if got := clock.PlusDurations(d, e); got != sum {
				t.Errorf("PlusDurations(%s, %s) = %s, want %s", d, e, got, sum)
			}
			back, err := sum.Sub(e)
			if err != nil || back != d {
				t.Errorf("(%s + %s) - %s = %s, %v", d, e, e, back, err)
			}
		}
	}

	if got := clock.MustDuration(0, 59, 59).Plus(clock.Second).String(); got != "1:00:00" {
		t.Errorf("0:59:59 + 0:00:01 = %s, want 1:00:00", got)
	}
}

func TestDurationOrder(t *testing.T) {
	a := clock.MustDuration(1)
	b := clock.MustDuration(0, 59, 59)
	if !a.After(b) || !b.Before(a) || a.Compare(b) != 1 || b.Compare(a) != -1 {
		t.Errorf("ordering of %s and %s is wrong", a, b)
	}
	if !a.Equal(clock.Hour) || a.Compare(clock.Hour) != 0 {
		t.Errorf("%s != %s", a, clock.Hour)
	}
	if !clock.MustDuration(25).After(clock.MustDuration(24, 59, 59)) {
		t.Errorf("25:00:00 not after 24:59:59")
	}
}

func TestDurationString(t *testing.T) {
	for d, want := range map[clock.Duration]string{
		{}:                          "0:00:00",
		clock.Second:                "0:00:01",
		clock.MustDuration(31, 5):   "31:05:00",
		clock.MustDuration(2, 4, 9): "2:04:09",
	} {
		if got := d.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestDurationStd(t *testing.T) {
	if got, want := clock.MustDuration(1, 30).Std(), 90*time.Minute; got != want {
		t.Errorf("Std() = %v, want %v", got, want)
	}
	huge, _ := clock.DurationOf(math.MaxInt64)
	if got := huge.Std(); got != math.MaxInt64 {
		t.Errorf("Std() of huge duration = %v, want saturation", got)
	}
}
